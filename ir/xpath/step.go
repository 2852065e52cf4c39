package xpath

import (
	"strings"
)

// Pred is an equality predicate inside a step.
//
// When Attr is set the predicate compares the attribute Key, otherwise it
// compares the text of a leaf child named Key.
type Pred struct {
	Attr  bool
	Key   string
	Value string

	param int // 1-based template parameter index, 0 for literals
}

// Step selects children by tag name and predicates.
type Step struct {
	Name  string // tag name or "*"
	Preds []Pred
}

// AttrEq returns a predicate @key='value'.
func AttrEq(key, value string) Pred {
	return Pred{Attr: true, Key: key, Value: value}
}

// ChildEq returns a predicate key='value'.
func ChildEq(key, value string) Pred {
	return Pred{Key: key, Value: value}
}

// S builds a step.
func S(name string, preds ...Pred) Step {
	return Step{Name: name, Preds: preds}
}

// Wild reports whether the step matches any tag.
func (s Step) Wild() bool {
	return s.Name == "*"
}

func (s Step) String() string {
	b := &strings.Builder{}
	s.write(b)
	return b.String()
}

func (s Step) write(b *strings.Builder) {
	b.WriteString(s.Name)
	for i := range s.Preds {
		p := &s.Preds[i]
		b.WriteByte('[')
		if p.Attr {
			b.WriteByte('@')
		}
		b.WriteString(p.Key)
		b.WriteString("=")
		if p.param != 0 {
			b.WriteByte('?')
		} else {
			b.WriteString(quote(p.Value))
		}
		b.WriteByte(']')
	}
}

func (s Step) equal(o Step) bool {
	if s.Name != o.Name || len(s.Preds) != len(o.Preds) {
		return false
	}
	for i := range s.Preds {
		a, b := s.Preds[i], o.Preds[i]
		if a.Attr != b.Attr || a.Key != b.Key || a.Value != b.Value {
			return false
		}
	}
	return true
}

func (s Step) clone() Step {
	res := Step{Name: s.Name}
	if len(s.Preds) != 0 {
		res.Preds = make([]Pred, len(s.Preds))
		copy(res.Preds, s.Preds)
	}
	return res
}

// IsIdent reports whether v can be used as a tag, attribute or child name
// in a path.
func IsIdent(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && (c == '-' || c == '.' || '0' <= c && c <= '9'):
		default:
			return false
		}
	}
	return true
}

// CanQuote reports whether v can be written as a predicate literal.
func CanQuote(v string) bool {
	return !(strings.ContainsRune(v, '\'') && strings.ContainsRune(v, '"'))
}

func quote(v string) string {
	if strings.ContainsRune(v, '\'') {
		return `"` + v + `"`
	}
	return "'" + v + "'"
}
