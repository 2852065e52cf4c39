package store

import "github.com/signadot/mkhub/ir"

// Ref locates a node in the snapshot it was resolved against.
type Ref struct {
	node    *ir.Node
	version int64
}

// Version returns the store version the ref belongs to.
func (r Ref) Version() int64 {
	return r.version
}

// Valid reports whether r locates a node at all.
func (r Ref) Valid() bool {
	return r.node != nil
}

// Loc returns the index path of the node from the root.
func (r Ref) Loc() ir.Loc {
	if r.node == nil {
		return nil
	}
	return r.node.Loc()
}

// Path returns the positional path of the node.
func (r Ref) Path() string {
	if r.node == nil {
		return ""
	}
	return r.node.Path()
}

func (r Ref) String() string {
	return r.Path()
}

func refs(nodes []*ir.Node, version int64) []Ref {
	res := make([]Ref, len(nodes))
	for i, n := range nodes {
		res[i] = Ref{node: n, version: version}
	}
	return res
}
