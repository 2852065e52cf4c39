package store

import (
	"errors"
	"fmt"

	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
)

// Tx is a mutation in progress. Its tree is private to the writer until
// the transaction commits. A Tx must not be used after the function it was
// passed to returns.
type Tx struct {
	root    *ir.Node
	version int64
	touched []*ir.Node
	done    bool
}

// Root returns the working root. Callers changing nodes directly should
// report them with Changed.
func (tx *Tx) Root() *ir.Node {
	tx.check()
	return tx.root
}

// Resolve returns refs into the working tree.
func (tx *Tx) Resolve(p *xpath.Path) ([]Ref, error) {
	tx.check()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return refs(ir.Select(tx.root, p), tx.version), nil
}

// Get returns a ref to the only node p names in the working tree.
func (tx *Tx) Get(p *xpath.Path) (Ref, error) {
	tx.check()
	if err := p.Validate(); err != nil {
		return Ref{}, err
	}
	n, err := ir.SelectOne(tx.root, p)
	if err != nil {
		return Ref{}, err
	}
	return Ref{node: n, version: tx.version}, nil
}

// Node returns the working node r locates.
func (tx *Tx) Node(r Ref) (*ir.Node, error) {
	r, err := tx.rebase(r)
	if err != nil {
		return nil, err
	}
	return r.node, nil
}

// Changed records n as modified for watch notifications.
func (tx *Tx) Changed(n *ir.Node) {
	tx.touched = append(tx.touched, n)
}

// CreateChild appends the detached node child under parent.
func (tx *Tx) CreateChild(parent Ref, child *ir.Node) (Ref, error) {
	p, err := tx.rebase(parent)
	if err != nil {
		return Ref{}, err
	}
	if child == nil {
		return Ref{}, errors.New("nil child")
	}
	if child.Parent != nil {
		return Ref{}, fmt.Errorf("child %q is already attached", child.Name)
	}
	if p.node.IsLeaf() {
		return Ref{}, fmt.Errorf("cannot add child %q to leaf %s", child.Name, p.node.Path())
	}
	p.node.Append(child)
	tx.Changed(child)
	return Ref{node: child, version: tx.version}, nil
}

// RemoveChild detaches child from parent.
func (tx *Tx) RemoveChild(parent, child Ref) error {
	p, err := tx.rebase(parent)
	if err != nil {
		return err
	}
	c, err := tx.rebase(child)
	if err != nil {
		return err
	}
	if !p.node.Remove(c.node) {
		return fmt.Errorf("%w: %s is not a child of %s", ir.ErrNotFound, c.node.Path(), p.node.Path())
	}
	tx.Changed(p.node)
	return nil
}

// rebase maps a ref from this transaction, or from the snapshot it
// started from, onto the working tree.
func (tx *Tx) rebase(r Ref) (Ref, error) {
	tx.check()
	if !r.Valid() {
		return Ref{}, fmt.Errorf("%w: empty ref", ir.ErrNotFound)
	}
	switch r.version {
	case tx.version:
		if r.node.Root() != tx.root {
			return Ref{}, fmt.Errorf("%w: ref %s belongs to another transaction", ErrStaleRef, r)
		}
		return r, nil
	case tx.version - 1:
		n := tx.root.Locate(r.node.Loc())
		if n == nil {
			return Ref{}, fmt.Errorf("%w: ref %s", ErrStaleRef, r)
		}
		return Ref{node: n, version: tx.version}, nil
	default:
		return Ref{}, fmt.Errorf("%w: ref %s from version %d, store at %d", ErrStaleRef, r, r.version, tx.version-1)
	}
}

func (tx *Tx) paths() []string {
	var res []string
	seen := map[string]bool{}
	for _, n := range tx.touched {
		if n.Root() != tx.root {
			continue
		}
		p := n.Path()
		if seen[p] {
			continue
		}
		seen[p] = true
		res = append(res, p)
	}
	if len(res) == 0 {
		res = append(res, tx.root.Path())
	}
	return res
}

func (tx *Tx) check() {
	if tx.done {
		panic("store: transaction used after commit")
	}
}
