package ir

import (
	"fmt"
	"slices"
	"strconv"
)

// Attr is a node attribute.
type Attr struct {
	Name  string
	Value string
}

type Node struct {
	Name        string
	Kind        Kind
	Attrs       []Attr
	Children    []*Node
	Text        string
	List        bool
	Parent      *Node
	ParentIndex int
}

// NewContainer returns a container node with the given children appended.
func NewContainer(name string, children ...*Node) *Node {
	res := &Node{Name: name, Kind: ContainerKind}
	for _, c := range children {
		res.Append(c)
	}
	return res
}

// NewLeaf returns a leaf of the given scalar kind.
func NewLeaf(name string, kind Kind, text string) *Node {
	if !kind.IsLeaf() {
		panic(fmt.Sprintf("NewLeaf with kind %s", kind))
	}
	return &Node{Name: name, Kind: kind, Text: text}
}

func FromString(name, v string) *Node {
	return &Node{Name: name, Kind: StringKind, Text: v}
}

func FromInt(name string, v int64) *Node {
	return &Node{Name: name, Kind: NumberKind, Text: strconv.FormatInt(v, 10)}
}

func FromBool(name string, v bool) *Node {
	return &Node{Name: name, Kind: BoolKind, Text: strconv.FormatBool(v)}
}

// EmptyList returns the placeholder for a list-valued field with no
// elements.
func EmptyList(name string) *Node {
	return &Node{Name: name, Kind: EmptyListKind, List: true}
}

func (y *Node) WithAttr(name, value string) *Node {
	y.SetAttr(name, value)
	return y
}

func (y *Node) AsList() *Node {
	y.List = true
	return y
}

func (y *Node) IsLeaf() bool {
	return y.Kind.IsLeaf()
}

// Placeholder reports whether y only records an empty list-valued field.
func (y *Node) Placeholder() bool {
	return y.Kind == EmptyListKind
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

// CloneTo deep copies y into dst. dst keeps the parent links of y; the
// copied children point at dst.
func (y *Node) CloneTo(dst *Node) *Node {
	dst.Name = y.Name
	dst.Kind = y.Kind
	dst.Text = y.Text
	dst.List = y.List
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.Attrs = slices.Clone(y.Attrs)
	dst.Children = nil
	if len(y.Children) != 0 {
		dst.Children = make([]*Node, len(y.Children))
	}
	for i, yc := range y.Children {
		dstI := &Node{}
		yc.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Children[i] = dstI
	}
	return dst
}

// Attr returns the value of an attribute.
func (y *Node) Attr(name string) (string, bool) {
	for i := range y.Attrs {
		if y.Attrs[i].Name == name {
			return y.Attrs[i].Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, keeping the position of an existing one.
func (y *Node) SetAttr(name, value string) {
	for i := range y.Attrs {
		if y.Attrs[i].Name == name {
			y.Attrs[i].Value = value
			return
		}
	}
	y.Attrs = append(y.Attrs, Attr{Name: name, Value: value})
}

// Named returns the children called name, placeholders included, in order.
func (y *Node) Named(name string) []*Node {
	var res []*Node
	for _, c := range y.Children {
		if c.Name == name {
			res = append(res, c)
		}
	}
	return res
}

// Get returns the first child of y called name, skipping placeholders.
func Get(y *Node, name string) *Node {
	for _, c := range y.Children {
		if c.Name == name && !c.Placeholder() {
			return c
		}
	}
	return nil
}

// ChildText returns the text of the first leaf child called name.
func (y *Node) ChildText(name string) (string, bool) {
	c := Get(y, name)
	if c == nil || !c.IsLeaf() {
		return "", false
	}
	return c.Text, true
}

// Append adds c as the last child of y. A leaf receiving a child becomes a
// container.
func (y *Node) Append(c *Node) *Node {
	return y.Insert(len(y.Children), c)
}

// Insert adds c as child number i of y.
func (y *Node) Insert(i int, c *Node) *Node {
	if i < 0 || i > len(y.Children) {
		panic(fmt.Sprintf("insert index %d out of range (len %d)", i, len(y.Children)))
	}
	y.makeContainer()
	y.Children = slices.Insert(y.Children, i, c)
	y.reindex(i)
	return c
}

// RemoveAt detaches and returns child number i.
func (y *Node) RemoveAt(i int) *Node {
	c := y.Children[i]
	y.Children = slices.Delete(y.Children, i, i+1)
	y.reindex(i)
	c.Parent = nil
	c.ParentIndex = 0
	return c
}

// Remove detaches c from y. It reports whether c was a child of y.
func (y *Node) Remove(c *Node) bool {
	if c.Parent != y || c.ParentIndex >= len(y.Children) || y.Children[c.ParentIndex] != c {
		return false
	}
	y.RemoveAt(c.ParentIndex)
	return true
}

// SetText turns y into a leaf of the given kind.
func (y *Node) SetText(kind Kind, text string) {
	if !kind.IsLeaf() {
		panic(fmt.Sprintf("SetText with kind %s", kind))
	}
	for _, c := range y.Children {
		c.Parent = nil
	}
	y.Children = nil
	y.Kind = kind
	y.Text = text
}

// ReplaceChildren drops all children of y and adopts cs.
func (y *Node) ReplaceChildren(cs []*Node) {
	for _, c := range y.Children {
		c.Parent = nil
	}
	y.Children = nil
	y.makeContainer()
	for _, c := range cs {
		y.Append(c)
	}
}

func (y *Node) makeContainer() {
	if y.Kind != ContainerKind {
		y.Kind = ContainerKind
		y.Text = ""
	}
}

func (y *Node) reindex(from int) {
	for i := from; i < len(y.Children); i++ {
		c := y.Children[i]
		c.Parent = y
		c.ParentIndex = i
	}
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Children {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}
