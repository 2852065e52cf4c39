package ir

import (
	"strconv"
	"strings"
)

// Loc locates a node by the child index taken at each level below the root.
type Loc []int

// Loc returns the location of y relative to its root.
func (y *Node) Loc() Loc {
	n := 0
	for x := y; x.Parent != nil; x = x.Parent {
		n++
	}
	res := make(Loc, n)
	for x := y; x.Parent != nil; x = x.Parent {
		n--
		res[n] = x.ParentIndex
	}
	return res
}

// Locate returns the node at loc below y, or nil if the tree has no such
// position.
func (y *Node) Locate(loc Loc) *Node {
	res := y
	for _, i := range loc {
		if i < 0 || i >= len(res.Children) {
			return nil
		}
		res = res.Children[i]
	}
	return res
}

// Path returns the positional path of y: each step is the tag followed by
// its 1-based position among same-named siblings.
//
// Examples:
//   - root "github" → "/github"
//   - second repo → "/github/repos[1]/repo[2]"
func (y *Node) Path() string {
	if y.Parent == nil {
		return "/" + y.Name
	}
	pos := 1
	for _, sib := range y.Parent.Children[:y.ParentIndex] {
		if sib.Name == y.Name {
			pos++
		}
	}
	b := &strings.Builder{}
	b.WriteString(y.Parent.Path())
	b.WriteByte('/')
	b.WriteString(y.Name)
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(pos))
	b.WriteByte(']')
	return b.String()
}

func (l Loc) String() string {
	b := &strings.Builder{}
	for _, i := range l {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}
