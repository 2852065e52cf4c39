package jsonview

import (
	"encoding/json"

	"github.com/goccy/go-yaml"

	"github.com/signadot/mkhub/ir"
)

// ToYAML renders the projection of y as YAML, keeping field order.
func ToYAML(y *ir.Node) ([]byte, error) {
	return MarshalYAML(Ordered(y))
}

// MarshalYAML renders an ordered value, as returned by Ordered, as YAML.
func MarshalYAML(v any) ([]byte, error) {
	return yaml.Marshal(yamlValue(v))
}

func yamlValue(v any) any {
	switch x := v.(type) {
	case Object:
		res := make(yaml.MapSlice, len(x))
		for i := range x {
			res[i] = yaml.MapItem{Key: x[i].Name, Value: yamlValue(x[i].Value)}
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = yamlValue(x[i])
		}
		return res
	case json.Number:
		return number(string(x))
	default:
		return v
	}
}
