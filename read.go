package mkhub

import (
	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
	"github.com/signadot/mkhub/jsonview"
	"github.com/signadot/mkhub/store"
)

// Read returns the JSON projection of the only node p names.
func Read(st *store.Store, p *xpath.Path) ([]byte, error) {
	var res []byte
	err := st.ViewOne(p, func(n *ir.Node) error {
		d, err := jsonview.ToJSON(n)
		res = d
		return err
	})
	return res, err
}

// ReadValue is like Read but returns plain Go values.
func ReadValue(st *store.Store, p *xpath.Path) (any, error) {
	var res any
	err := st.ViewOne(p, func(n *ir.Node) error {
		res = jsonview.ToValue(n)
		return nil
	})
	return res, err
}

// ReadMap is like ReadValue for a container node.
func ReadMap(st *store.Store, p *xpath.Path) (map[string]any, error) {
	var res map[string]any
	err := st.ViewOne(p, func(n *ir.Node) error {
		res = jsonview.ToMap(n)
		return nil
	})
	return res, err
}

// List returns the projections of every node p names, in document order,
// from one snapshot.
func List(st *store.Store, p *xpath.Path) ([]any, error) {
	var res []any
	err := st.View(p, func(nodes []*ir.Node) error {
		res = make([]any, len(nodes))
		for i, n := range nodes {
			res[i] = jsonview.ToValue(n)
		}
		return nil
	})
	return res, err
}
