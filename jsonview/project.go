package jsonview

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/signadot/mkhub/ir"
)

// Ordered projects y to an ordered value: Object, []any, string,
// json.Number or bool.
func Ordered(y *ir.Node) any {
	return OrderedFunc(y, nil)
}

// OrderedFunc is like Ordered. When mark is not nil every container in y,
// y included, is passed to it with its projection and the returned object
// is used in its place.
func OrderedFunc(y *ir.Node, mark func(*ir.Node, Object) Object) any {
	switch y.Kind {
	case ir.StringKind:
		return y.Text
	case ir.NumberKind:
		return json.Number(y.Text)
	case ir.BoolKind:
		return y.Text == "true"
	case ir.EmptyListKind:
		return []any{}
	}
	type group struct {
		name    string
		members []*ir.Node
	}
	var (
		groups []*group
		byName = make(map[string]*group, len(y.Children))
	)
	for _, c := range y.Children {
		g := byName[c.Name]
		if g == nil {
			g = &group{name: c.Name}
			byName[c.Name] = g
			groups = append(groups, g)
		}
		g.members = append(g.members, c)
	}
	res := make(Object, 0, len(groups))
	for _, g := range groups {
		if len(g.members) == 1 && !g.members[0].List {
			res = append(res, Field{Name: g.name, Value: OrderedFunc(g.members[0], mark)})
			continue
		}
		list := make([]any, 0, len(g.members))
		for _, m := range g.members {
			if m.Placeholder() {
				continue
			}
			list = append(list, OrderedFunc(m, mark))
		}
		res = append(res, Field{Name: g.name, Value: list})
	}
	if mark != nil {
		res = mark(y, res)
	}
	return res
}

// ToValue projects y to plain Go values: map[string]any, []any, string,
// int64 or float64, and bool.
func ToValue(y *ir.Node) any {
	return plain(Ordered(y))
}

// ToMap projects a container node to a map. It returns nil for leaves.
func ToMap(y *ir.Node) map[string]any {
	m, _ := ToValue(y).(map[string]any)
	return m
}

func plain(v any) any {
	switch x := v.(type) {
	case Object:
		res := make(map[string]any, len(x))
		for i := range x {
			res[x[i].Name] = plain(x[i].Value)
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = plain(x[i])
		}
		return res
	case json.Number:
		return number(string(x))
	default:
		return v
	}
}

func number(v string) any {
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}

// ToJSON returns the compact JSON text of y, fields in tree order.
func ToJSON(y *ir.Node) ([]byte, error) {
	return MarshalOrdered(Ordered(y))
}

// MarshalOrdered returns the compact JSON text of an ordered value as
// returned by Ordered.
func MarshalOrdered(v any) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToJSONIndent is like ToJSON with two space indentation.
func ToJSONIndent(y *ir.Node) ([]byte, error) {
	d, err := ToJSON(y)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	if err := json.Indent(buf, d, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
