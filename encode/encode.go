package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/printer"

	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/jsonview"
)

type EncState struct {
	depth, indent int
	format        Format
	colors        *Colors
}

// Encode writes the projection of node to w followed by a newline.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	return EncodeValue(jsonview.Ordered(node), w, opts...)
}

// EncodeValue is like Encode for a value that is already projected. Plain
// maps are written with sorted keys.
func EncodeValue(v any, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if es.colors == nil {
		es.colors = &Colors{Default: colorDefault}
	}
	buf := bytes.NewBuffer(nil)
	var err error
	switch es.format {
	case JSONFormat:
		err = es.writeJSON(buf, v)
		buf.WriteByte('\n')
	case YAMLFormat:
		err = es.writeYAML(buf, v)
	default:
		err = fmt.Errorf("unsupported format %s", es.format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// MustString encodes v, panicking on error. It is meant for tests and
// debug output.
func MustString(v any, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := EncodeValue(v, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}

func (es *EncState) writeJSON(buf *bytes.Buffer, v any) error {
	c := es.colors
	switch x := v.(type) {
	case nil:
		buf.WriteString(c.Color(BoolColor, "null"))
	case jsonview.Object:
		if len(x) == 0 {
			buf.WriteString(c.Color(SepColor, "{}"))
			return nil
		}
		buf.WriteString(c.Color(SepColor, "{"))
		es.depth++
		for i := range x {
			if i > 0 {
				buf.WriteString(c.Color(SepColor, ","))
			}
			es.newline(buf)
			buf.WriteString(c.Color(FieldColor, quote(x[i].Name)))
			buf.WriteString(c.Color(SepColor, ":") + " ")
			if err := es.writeJSON(buf, x[i].Value); err != nil {
				return err
			}
		}
		es.depth--
		es.newline(buf)
		buf.WriteString(c.Color(SepColor, "}"))
	case map[string]any:
		obj := make(jsonview.Object, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			obj = append(obj, jsonview.Field{Name: k, Value: x[k]})
		}
		return es.writeJSON(buf, obj)
	case []map[string]any:
		list := make([]any, len(x))
		for i := range x {
			list[i] = x[i]
		}
		return es.writeJSON(buf, list)
	case []any:
		if len(x) == 0 {
			buf.WriteString(c.Color(SepColor, "[]"))
			return nil
		}
		buf.WriteString(c.Color(SepColor, "["))
		es.depth++
		for i := range x {
			if i > 0 {
				buf.WriteString(c.Color(SepColor, ","))
			}
			es.newline(buf)
			if err := es.writeJSON(buf, x[i]); err != nil {
				return err
			}
		}
		es.depth--
		es.newline(buf)
		buf.WriteString(c.Color(SepColor, "]"))
	case string:
		buf.WriteString(c.Color(StringColor, quote(x)))
	case json.Number:
		buf.WriteString(c.Color(NumberColor, string(x)))
	case int64:
		buf.WriteString(c.Color(NumberColor, strconv.FormatInt(x, 10)))
	case int:
		buf.WriteString(c.Color(NumberColor, strconv.Itoa(x)))
	case float64:
		buf.WriteString(c.Color(NumberColor, strconv.FormatFloat(x, 'f', -1, 64)))
	case bool:
		buf.WriteString(c.Color(BoolColor, strconv.FormatBool(x)))
	default:
		return fmt.Errorf("cannot encode %T", v)
	}
	return nil
}

func (es *EncState) newline(buf *bytes.Buffer) {
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", es.depth*es.indent))
}

func (es *EncState) writeYAML(buf *bytes.Buffer, v any) error {
	d, err := jsonview.MarshalYAML(yamlOrdered(v))
	if err != nil {
		return err
	}
	field, _ := es.colors.escapes(FieldColor)
	if field == "" {
		buf.Write(d)
		return nil
	}
	p := printer.Printer{
		MapKey: es.property(FieldColor),
		String: es.property(StringColor),
		Number: es.property(NumberColor),
		Bool:   es.property(BoolColor),
	}
	buf.WriteString(p.PrintTokens(lexer.Tokenize(string(d))))
	buf.WriteByte('\n')
	return nil
}

func (es *EncState) property(a ColorAttr) func() *printer.Property {
	pre, suf := es.colors.escapes(a)
	return func() *printer.Property {
		return &printer.Property{Prefix: pre, Suffix: suf}
	}
}

// yamlOrdered turns plain maps into objects with sorted keys so the YAML
// output does not depend on map iteration order.
func yamlOrdered(v any) any {
	switch x := v.(type) {
	case map[string]any:
		obj := make(jsonview.Object, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			obj = append(obj, jsonview.Field{Name: k, Value: yamlOrdered(x[k])})
		}
		return obj
	case []map[string]any:
		list := make([]any, len(x))
		for i := range x {
			list[i] = yamlOrdered(x[i])
		}
		return list
	case []any:
		list := make([]any, len(x))
		for i := range x {
			list[i] = yamlOrdered(x[i])
		}
		return list
	case jsonview.Object:
		obj := make(jsonview.Object, len(x))
		for i := range x {
			obj[i] = jsonview.Field{Name: x[i].Name, Value: yamlOrdered(x[i].Value)}
		}
		return obj
	default:
		return v
	}
}

func quote(s string) string {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
