package jsonview

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is one member of an Object.
type Field struct {
	Name  string
	Value any
}

// Object is a JSON object that keeps its field order.
type Object []Field

// Get returns the value of the field called name.
func (o Object) Get(name string) (any, bool) {
	for i := range o {
		if o[i].Name == name {
			return o[i].Value, true
		}
	}
	return nil, false
}

// set replaces the value of an existing field or appends a new one.
func (o *Object) set(name string, v any) {
	for i := range *o {
		if (*o)[i].Name == name {
			(*o)[i].Value = v
			return
		}
	}
	*o = append(*o, Field{Name: name, Value: v})
}

func (o Object) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeJSON writes ordered values compactly, without HTML escaping.
func writeJSON(buf *bytes.Buffer, v any) error {
	switch x := v.(type) {
	case Object:
		buf.WriteByte('{')
		for i := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeScalar(buf, x[i].Name); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, x[i].Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, x[i]); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case json.Number:
		if !json.Valid([]byte(x)) {
			return fmt.Errorf("%w: invalid number text %q", ErrConversion, string(x))
		}
		buf.WriteString(string(x))
		return nil
	default:
		return writeScalar(buf, v)
	}
}

func writeScalar(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
