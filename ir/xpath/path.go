package xpath

import (
	"fmt"
	"strings"
)

// Path is a parsed path expression.
//
// Paths are values: methods returning a Path never modify the receiver.
type Path struct {
	Abs   bool   // starts at the root rather than at a context node
	Steps []Step // evaluated left to right
}

// New returns a path made of steps.
func New(abs bool, steps ...Step) *Path {
	return &Path{Abs: abs, Steps: steps}
}

// String returns the path text. Parse(p.String()) gives back an equal path.
//
// Examples:
//   - New(true, S("github"), S("repos")) → "/github/repos"
//   - New(false, S("commit", ChildEq("sha", "ab"))) → "commit[sha='ab']"
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	b := &strings.Builder{}
	for i := range p.Steps {
		if i > 0 || p.Abs {
			b.WriteByte('/')
		}
		p.Steps[i].write(b)
	}
	return b.String()
}

// Len returns the number of steps.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Steps)
}

// Last returns the final step of the path.
func (p *Path) Last() (Step, bool) {
	if p.Len() == 0 {
		return Step{}, false
	}
	return p.Steps[len(p.Steps)-1], true
}

// Parent returns the path without its last step, or nil for a path of one
// step or less.
//
// Examples:
//   - "/a/b[@x='1']/c" → "/a/b[@x='1']"
//   - "/a" → nil
func (p *Path) Parent() *Path {
	if p.Len() <= 1 {
		return nil
	}
	res := &Path{Abs: p.Abs, Steps: make([]Step, len(p.Steps)-1)}
	for i := range res.Steps {
		res.Steps[i] = p.Steps[i].clone()
	}
	return res
}

// Append returns a new path with steps added at the end.
func (p *Path) Append(steps ...Step) *Path {
	res := &Path{}
	if p != nil {
		res.Abs = p.Abs
		res.Steps = make([]Step, 0, len(p.Steps)+len(steps))
		for i := range p.Steps {
			res.Steps = append(res.Steps, p.Steps[i].clone())
		}
	}
	for i := range steps {
		res.Steps = append(res.Steps, steps[i].clone())
	}
	return res
}

// Join returns p followed by the steps of rel. The absoluteness of rel is
// ignored.
func (p *Path) Join(rel *Path) *Path {
	if rel == nil {
		return p.Append()
	}
	return p.Append(rel.Steps...)
}

// Equal reports whether two paths have the same steps and predicates.
func (p *Path) Equal(o *Path) bool {
	if p.Len() != o.Len() {
		return false
	}
	if p.Len() == 0 {
		return true
	}
	if p.Abs != o.Abs {
		return false
	}
	for i := range p.Steps {
		if !p.Steps[i].equal(o.Steps[i]) {
			return false
		}
	}
	return true
}

// Validate checks that every name is an identifier and every literal can be
// quoted.
func (p *Path) Validate() error {
	if p.Len() == 0 {
		return fmt.Errorf("%w: empty path", ErrMalformedPath)
	}
	for i := range p.Steps {
		s := &p.Steps[i]
		if !s.Wild() && !IsIdent(s.Name) {
			return fmt.Errorf("%w: bad step name %q", ErrMalformedPath, s.Name)
		}
		for j := range s.Preds {
			pr := &s.Preds[j]
			if !IsIdent(pr.Key) {
				return fmt.Errorf("%w: bad predicate key %q", ErrMalformedPath, pr.Key)
			}
			if pr.param == 0 && !CanQuote(pr.Value) {
				return fmt.Errorf("%w: literal %q contains both quote characters", ErrMalformedPath, pr.Value)
			}
		}
	}
	return nil
}

// MustParse is like Parse but panics on error.
func MustParse(v string) *Path {
	p, err := Parse(v)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse parses path text.
//
// Examples:
//   - "/github/repos" → absolute path with 2 steps
//   - "repo[@coords='a/b']" → relative path with an attribute predicate
//   - "commit[sha = \"x'y\"]" → double quoted literal
//
// Returns an error wrapping ErrMalformedPath if the text does not parse.
func Parse(v string) (*Path, error) {
	return parseWith(&scanner{src: v})
}

func (p *Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(d []byte) error {
	q, err := Parse(string(d))
	if err != nil {
		return err
	}
	*p = *q
	return nil
}
