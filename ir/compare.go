package ir

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// IdentityType is the semantic type of an identity field. It decides how
// two stored identity texts are ordered.
type IdentityType int

const (
	TextIdentity IdentityType = iota
	IntIdentity
)

// CompareText orders identity texts as strings.
func CompareText(a, b string) int {
	return strings.Compare(a, b)
}

// CompareInt orders identity numbers numerically, so 2 sorts before 10.
func CompareInt(a, b int64) int {
	return cmp.Compare(a, b)
}

// CompareIdentity compares two stored identity texts under t. Integer
// identities that do not parse are an error rather than falling back to
// string order.
func CompareIdentity(t IdentityType, a, b string) (int, error) {
	switch t {
	case TextIdentity:
		return CompareText(a, b), nil
	case IntIdentity:
		ia, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("integer identity %q: %w", a, err)
		}
		ib, err := strconv.ParseInt(b, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("integer identity %q: %w", b, err)
		}
		return CompareInt(ia, ib), nil
	}
	return 0, fmt.Errorf("unknown identity type %d", t)
}

// Equal reports whether two subtrees have the same names, kinds, text,
// attributes, list marks and children.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Name != b.Name || a.Kind != b.Kind || a.Text != b.Text || a.List != b.List {
		return false
	}
	if len(a.Attrs) != len(b.Attrs) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Attrs {
		if a.Attrs[i] != b.Attrs[i] {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
