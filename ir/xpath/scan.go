package xpath

import (
	"errors"
	"fmt"
	"strings"
)

type scanner struct {
	src    string
	pos    int
	params bool
	nParam int
}

func (sc *scanner) eof() bool {
	return sc.pos >= len(sc.src)
}

func (sc *scanner) peek() byte {
	if sc.eof() {
		return 0
	}
	return sc.src[sc.pos]
}

func (sc *scanner) skipSpace() {
	for !sc.eof() && (sc.src[sc.pos] == ' ' || sc.src[sc.pos] == '\t') {
		sc.pos++
	}
}

func (sc *scanner) ident() (string, error) {
	start := sc.pos
	for !sc.eof() {
		c := sc.src[sc.pos]
		if c == '/' || c == '[' || c == ']' || c == '=' || c == ' ' || c == '\t' || c == '@' || c == '\'' || c == '"' {
			break
		}
		sc.pos++
	}
	id := sc.src[start:sc.pos]
	if !IsIdent(id) {
		if id == "" {
			return "", errors.New("expected name")
		}
		return "", fmt.Errorf("invalid name %q", id)
	}
	return id, nil
}

func (sc *scanner) step() (Step, error) {
	var s Step
	if sc.peek() == '*' {
		sc.pos++
		s.Name = "*"
	} else {
		name, err := sc.ident()
		if err != nil {
			return s, err
		}
		s.Name = name
	}
	for sc.peek() == '[' {
		sc.pos++
		pr, err := sc.pred()
		if err != nil {
			return s, err
		}
		s.Preds = append(s.Preds, pr)
	}
	return s, nil
}

func (sc *scanner) pred() (Pred, error) {
	var pr Pred
	sc.skipSpace()
	if sc.peek() == '@' {
		pr.Attr = true
		sc.pos++
	}
	key, err := sc.ident()
	if err != nil {
		return pr, err
	}
	pr.Key = key
	sc.skipSpace()
	if sc.peek() != '=' {
		return pr, errors.New("expected '='")
	}
	sc.pos++
	sc.skipSpace()
	switch q := sc.peek(); q {
	case '\'', '"':
		end := strings.IndexByte(sc.src[sc.pos+1:], q)
		if end == -1 {
			return pr, fmt.Errorf("unterminated literal")
		}
		pr.Value = sc.src[sc.pos+1 : sc.pos+1+end]
		sc.pos += end + 2
	case '?':
		if !sc.params {
			return pr, errors.New("placeholder outside template")
		}
		sc.nParam++
		pr.param = sc.nParam
		sc.pos++
	default:
		return pr, errors.New("expected quoted literal")
	}
	sc.skipSpace()
	if sc.peek() != ']' {
		return pr, errors.New("expected ']'")
	}
	sc.pos++
	return pr, nil
}
