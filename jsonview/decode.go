package jsonview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/mkhub/ir"
)

// FromJSON parses JSON text into detached nodes called name.
//
// An object gives one container, a scalar one leaf, an array one list
// element per non-null entry (or a single empty list placeholder) and null
// gives no node at all. Object field order is kept.
func FromJSON(name string, data []byte) ([]*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrConversion)
	}
	return fromOrdered(name, v)
}

// FromObject parses a JSON object into a detached container called name.
func FromObject(name string, data []byte) (*ir.Node, error) {
	nodes, err := FromJSON(name, data)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 || nodes[0].Kind != ir.ContainerKind || nodes[0].List {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrConversion)
	}
	return nodes[0], nil
}

// FromValue converts a Go value into detached nodes called name, with the
// same rules as FromJSON. Map keys are taken in sorted order.
func FromValue(name string, v any) ([]*ir.Node, error) {
	o, err := ordered(v)
	if err != nil {
		return nil, err
	}
	return fromOrdered(name, o)
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '{':
			obj := Object{}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", kt)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			list := []any{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", x)
		}
	default:
		return tok, nil
	}
}

func fromOrdered(name string, v any) ([]*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []*ir.Node{ir.FromString(name, x)}, nil
	case json.Number:
		return []*ir.Node{ir.NewLeaf(name, ir.NumberKind, canonical(x.String()))}, nil
	case bool:
		return []*ir.Node{ir.FromBool(name, x)}, nil
	case Object:
		res := ir.NewContainer(name)
		for i := range x {
			f := &x[i]
			cs, err := fromOrdered(f.Name, f.Value)
			if err != nil {
				return nil, err
			}
			for _, c := range cs {
				res.Append(c)
			}
		}
		return []*ir.Node{res}, nil
	case []any:
		var res []*ir.Node
		for i := range x {
			if _, ok := x[i].([]any); ok {
				return nil, fmt.Errorf("%w: field %q: array inside array", ErrConversion, name)
			}
			cs, err := fromOrdered(name, x[i])
			if err != nil {
				return nil, err
			}
			for _, c := range cs {
				res = append(res, c.AsList())
			}
		}
		if len(res) == 0 {
			res = append(res, ir.EmptyList(name))
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: field %q: unsupported value %T", ErrConversion, name, v)
	}
}

// ordered normalises Go values to the ordered representation.
func ordered(v any) (any, error) {
	switch x := v.(type) {
	case nil, string, bool, json.Number:
		return x, nil
	case Object:
		res := make(Object, len(x))
		for i := range x {
			ov, err := ordered(x[i].Value)
			if err != nil {
				return nil, err
			}
			res[i] = Field{Name: x[i].Name, Value: ov}
		}
		return res, nil
	case map[string]any:
		res := make(Object, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			ov, err := ordered(x[k])
			if err != nil {
				return nil, err
			}
			res = append(res, Field{Name: k, Value: ov})
		}
		return res, nil
	case []any:
		res := make([]any, len(x))
		for i := range x {
			ov, err := ordered(x[i])
			if err != nil {
				return nil, err
			}
			res[i] = ov
		}
		return res, nil
	case []string:
		res := make([]any, len(x))
		for i := range x {
			res[i] = x[i]
		}
		return res, nil
	case int:
		return json.Number(strconv.Itoa(x)), nil
	case int64:
		return json.Number(strconv.FormatInt(x, 10)), nil
	case int32:
		return json.Number(strconv.FormatInt(int64(x), 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(x, 10)), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: non finite number %v", ErrConversion, x)
		}
		return json.Number(strconv.FormatFloat(x, 'g', -1, 64)), nil
	case float32:
		return ordered(float64(x))
	default:
		return reflected(reflect.ValueOf(v))
	}
}

// reflected handles the Go shapes of JSON values ordered does not list:
// maps with string keys, slices, arrays, named scalars and pointers.
func reflected(rv reflect.Value) (any, error) {
	switch rv.Kind() {
	case reflect.Invalid:
		return nil, nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return ordered(rv.Elem().Interface())
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return json.Number(strconv.FormatInt(rv.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return json.Number(strconv.FormatUint(rv.Uint(), 10)), nil
	case reflect.Float32, reflect.Float64:
		return ordered(rv.Float())
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return nil, nil
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(a.String(), b.String())
		})
		res := make(Object, 0, len(keys))
		for _, k := range keys {
			ov, err := ordered(rv.MapIndex(k).Interface())
			if err != nil {
				return nil, err
			}
			res = append(res, Field{Name: k.String(), Value: ov})
		}
		return res, nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		res := make([]any, rv.Len())
		for i := range res {
			ov, err := ordered(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			res[i] = ov
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: unsupported value %s", ErrConversion, rv.Type())
}

// canonical rewrites JSON number text so that equal integral values have
// equal text: 1e3 and 1000.0 both become 1000. Integral values that do
// not fit a float64 exactly keep their text.
func canonical(v string) string {
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	if f == math.Trunc(f) {
		if math.Abs(f) <= 1<<53 {
			return strconv.FormatInt(int64(f), 10)
		}
		return v
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
