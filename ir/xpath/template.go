package xpath

import (
	"fmt"
	"strconv"
)

// Template is a path with '?' placeholders in predicate literal position.
type Template struct {
	path   *Path
	nParam int
}

// MustTemplate is like ParseTemplate but panics on error. It is meant for
// package level template variables.
func MustTemplate(v string) *Template {
	t, err := ParseTemplate(v)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTemplate parses template text.
func ParseTemplate(v string) (*Template, error) {
	sc := &scanner{src: v, params: true}
	p, err := parseWith(sc)
	if err != nil {
		return nil, err
	}
	return &Template{path: p, nParam: sc.nParam}, nil
}

func parseWith(sc *scanner) (*Path, error) {
	p := &Path{}
	if sc.peek() == '/' {
		p.Abs = true
		sc.pos++
	}
	for {
		step, err := sc.step()
		if err != nil {
			return nil, fmt.Errorf("%w: %q at offset %d: %w", ErrMalformedPath, sc.src, sc.pos, err)
		}
		p.Steps = append(p.Steps, step)
		if sc.eof() {
			return p, nil
		}
		if sc.peek() != '/' {
			return nil, fmt.Errorf("%w: %q at offset %d: expected '/'", ErrMalformedPath, sc.src, sc.pos)
		}
		sc.pos++
	}
}

// NumParams returns the number of placeholders.
func (t *Template) NumParams() int {
	return t.nParam
}

func (t *Template) String() string {
	return t.path.String()
}

// Path fills the placeholders, in order, with args.
//
// Supported argument types are string, the signed and unsigned integer
// kinds and fmt.Stringer. Integers are written in base 10 without padding,
// which must match the text the value was stored with.
func (t *Template) Path(args ...any) (*Path, error) {
	if len(args) != t.nParam {
		return nil, fmt.Errorf("%w: template %s takes %d values, got %d", ErrMalformedPath, t, t.nParam, len(args))
	}
	res := t.path.Append()
	for i := range res.Steps {
		s := &res.Steps[i]
		for j := range s.Preds {
			pr := &s.Preds[j]
			if pr.param == 0 {
				continue
			}
			v, err := literal(args[pr.param-1])
			if err != nil {
				return nil, fmt.Errorf("%w: template %s value %d: %w", ErrMalformedPath, t, pr.param, err)
			}
			if !CanQuote(v) {
				return nil, fmt.Errorf("%w: template %s value %d %q contains both quote characters", ErrMalformedPath, t, pr.param, v)
			}
			pr.Value = v
			pr.param = 0
		}
	}
	return res, nil
}

// MustPath is like Path but panics on error.
func (t *Template) MustPath(args ...any) *Path {
	p, err := t.Path(args...)
	if err != nil {
		panic(err)
	}
	return p
}

func literal(a any) (string, error) {
	switch x := a.(type) {
	case string:
		return x, nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", a)
	}
}
