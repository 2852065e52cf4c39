package encode

import "fmt"

// Format is an output format.
type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
)

func (f Format) String() string {
	switch f {
	case JSONFormat:
		return "json"
	case YAMLFormat:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses "json", "yaml" or "yml".
func ParseFormat(v string) (Format, error) {
	switch v {
	case "json":
		return JSONFormat, nil
	case "yaml", "yml":
		return YAMLFormat, nil
	}
	return 0, fmt.Errorf("unknown format %q", v)
}

type EncodeOption func(*EncState)

func EncodeFormat(f Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// EncodeColors colours the output with c. A nil c leaves it plain.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.colors = c }
}
