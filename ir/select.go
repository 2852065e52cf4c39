package ir

import (
	"fmt"

	"github.com/signadot/mkhub/debug"
	"github.com/signadot/mkhub/ir/xpath"
)

// Select returns the nodes p names, in document order.
//
// An absolute path is evaluated from y itself, so y should be the root. A
// relative path is evaluated from the children of y. Each step narrows the
// candidate set; a step that matches nothing ends the evaluation with no
// result.
func Select(y *Node, p *xpath.Path) []*Node {
	if p.Len() == 0 {
		return nil
	}
	steps := p.Steps
	var cur []*Node
	if p.Abs {
		if !matchStep(y, &steps[0]) {
			return nil
		}
		cur = []*Node{y}
		steps = steps[1:]
	} else {
		cur = []*Node{y}
	}
	for i := range steps {
		step := &steps[i]
		var next []*Node
		for _, n := range cur {
			for _, c := range n.Children {
				if matchStep(c, step) {
					next = append(next, c)
				}
			}
		}
		if debug.Resolve() {
			debug.Logf("select %s step %d %s: %d -> %d\n", p, i, step, len(cur), len(next))
		}
		if len(next) == 0 {
			return nil
		}
		cur = next
	}
	return cur
}

// SelectOne returns the only node p names. It fails with ErrNotFound when
// there is none and ErrAmbiguous when there are several.
func SelectOne(y *Node, p *xpath.Path) (*Node, error) {
	res := Select(y, p)
	switch len(res) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	case 1:
		return res[0], nil
	default:
		return nil, fmt.Errorf("%w: %s names %d nodes", ErrAmbiguous, p, len(res))
	}
}

func matchStep(n *Node, s *xpath.Step) bool {
	if n.Placeholder() {
		return false
	}
	if !s.Wild() && n.Name != s.Name {
		return false
	}
	for i := range s.Preds {
		if !matchPred(n, &s.Preds[i]) {
			return false
		}
	}
	return true
}

func matchPred(n *Node, pr *xpath.Pred) bool {
	if pr.Attr {
		v, ok := n.Attr(pr.Key)
		return ok && v == pr.Value
	}
	for _, c := range n.Children {
		if c.Name == pr.Key && c.IsLeaf() && c.Text == pr.Value {
			return true
		}
	}
	return false
}
