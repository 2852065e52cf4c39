package mkhub

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/mkhub/debug"
	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
	"github.com/signadot/mkhub/jsonview"
	"github.com/signadot/mkhub/store"
)

// Patch merges the JSON object data into the only node p names.
//
// data is converted before the store is touched, so a conversion error
// leaves the store unchanged, as does a path naming no node.
func Patch(st *store.Store, p *xpath.Path, data []byte) error {
	frag, err := jsonview.FromObject("patch", data)
	if err != nil {
		return err
	}
	return patchNode(st, p, frag)
}

// PatchValue is like Patch for a decoded object.
func PatchValue(st *store.Store, p *xpath.Path, v map[string]any) error {
	nodes, err := jsonview.FromValue("patch", v)
	if err != nil {
		return err
	}
	if len(nodes) != 1 {
		return fmt.Errorf("%w: expected an object", jsonview.ErrConversion)
	}
	return patchNode(st, p, nodes[0])
}

func patchNode(st *store.Store, p *xpath.Path, frag *ir.Node) error {
	return st.MutateOne(p, func(n *ir.Node) error {
		var before *ir.Node
		if debug.Patch() {
			before = n.Clone()
		}
		Merge(n, frag)
		if debug.Patch() {
			d, err := jsonview.DiffNodes(before, n)
			if err != nil {
				return err
			}
			debug.Logf("patch %s\n%s", p, d)
		}
		return nil
	})
}

// Merge merges the children of src into dst. src is not modified.
//
// For each tag of src, in order: a tag dst lacks is appended; a tag naming
// exactly one non-list container on both sides is merged recursively; any
// other tag has all its dst children replaced, in place, by copies of the
// src ones. A dst leaf becomes a container first.
func Merge(dst, src *ir.Node) {
	if dst.Kind != ir.ContainerKind {
		dst.ReplaceChildren(nil)
	}
	for _, name := range tagNames(src) {
		news := src.Named(name)
		olds := dst.Named(name)
		switch {
		case len(olds) == 0:
			for _, c := range news {
				dst.Append(c.Clone())
			}
		case mergeable(olds, news):
			Merge(olds[0], news[0])
		default:
			at := olds[0].ParentIndex
			for i := len(olds) - 1; i >= 0; i-- {
				dst.RemoveAt(olds[i].ParentIndex)
			}
			for i, c := range news {
				dst.Insert(at+i, c.Clone())
			}
		}
	}
}

func mergeable(olds, news []*ir.Node) bool {
	if len(olds) != 1 || len(news) != 1 {
		return false
	}
	o, n := olds[0], news[0]
	return !o.List && !n.List && o.Kind == ir.ContainerKind && n.Kind == ir.ContainerKind
}

func tagNames(y *ir.Node) []string {
	var res []string
	seen := map[string]bool{}
	for _, c := range y.Children {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		res = append(res, c.Name)
	}
	return res
}

// attrsKey names the member that carries the attributes of a container
// through JSON Patch operations. JSON text cannot address it by accident.
const attrsKey = "\x00attrs"

// PatchOps applies RFC 6902 JSON Patch operations to the projection of the
// only node p names and stores the result in its place. The node keeps its
// name and attributes. Object fields come back in the order the JSON Patch
// library writes them, which is not the tree order.
//
// Containers below the node keep their attributes wherever the operations
// move them: while the operations run, each such container has an extra
// member holding them. A test operation comparing a whole container with
// attributes must therefore fail, and copying one is an error since it
// would duplicate its identity. Leaves lose their attributes.
func PatchOps(st *store.Store, p *xpath.Path, ops []byte) error {
	jp, err := jsonpatch.DecodePatch(ops)
	if err != nil {
		return fmt.Errorf("%w: %w", jsonview.ErrConversion, err)
	}
	return st.MutateOne(p, func(n *ir.Node) error {
		var saved [][]ir.Attr
		doc, err := jsonview.MarshalOrdered(jsonview.OrderedFunc(n, func(c *ir.Node, o jsonview.Object) jsonview.Object {
			if c == n || len(c.Attrs) == 0 {
				return o
			}
			saved = append(saved, c.Attrs)
			return append(o, jsonview.Field{Name: attrsKey, Value: json.Number(strconv.Itoa(len(saved) - 1))})
		}))
		if err != nil {
			return err
		}
		out, err := jp.Apply(doc)
		if err != nil {
			return fmt.Errorf("json patch on %s: %w", p, err)
		}
		nodes, err := jsonview.FromJSON(n.Name, out)
		if err != nil {
			return err
		}
		if len(nodes) != 1 || nodes[0].List {
			return fmt.Errorf("%w: json patch on %s did not give a single value", jsonview.ErrConversion, p)
		}
		res := nodes[0]
		if err := restoreAttrs(res, saved, make([]bool, len(saved))); err != nil {
			return fmt.Errorf("json patch on %s: %w", p, err)
		}
		if res.IsLeaf() {
			n.SetText(res.Kind, res.Text)
			return nil
		}
		n.ReplaceChildren(res.Children)
		return nil
	})
}

// restoreAttrs moves the attributes recorded under attrsKey back onto
// their containers.
func restoreAttrs(y *ir.Node, saved [][]ir.Attr, used []bool) error {
	for _, c := range y.Named(attrsKey) {
		i, err := strconv.Atoi(c.Text)
		if c.Kind != ir.NumberKind || err != nil || i < 0 || i >= len(saved) {
			return fmt.Errorf("%w: attribute member of %s was modified", jsonview.ErrConversion, y.Name)
		}
		if used[i] {
			return fmt.Errorf("%w: %s copied with its attributes", jsonview.ErrConversion, y.Name)
		}
		used[i] = true
		y.Remove(c)
		y.Attrs = slices.Clone(saved[i])
	}
	for _, c := range y.Children {
		if err := restoreAttrs(c, saved, used); err != nil {
			return err
		}
	}
	return nil
}
