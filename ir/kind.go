package ir

import "fmt"

// Kind says whether a node is a container or a leaf, and for leaves which
// JSON scalar type the text stands for.
type Kind int

const (
	ContainerKind Kind = iota
	StringKind
	NumberKind
	BoolKind
	// EmptyListKind marks a list-valued field with no elements.
	EmptyListKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		ContainerKind: "Container",
		StringKind:    "String",
		NumberKind:    "Number",
		BoolKind:      "Bool",
		EmptyListKind: "EmptyList",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Container": ContainerKind,
		"String":    StringKind,
		"Number":    NumberKind,
		"Bool":      BoolKind,
		"EmptyList": EmptyListKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

// IsLeaf reports whether nodes of this kind hold text.
func (k Kind) IsLeaf() bool {
	switch k {
	case StringKind, NumberKind, BoolKind:
		return true
	default:
		return false
	}
}
