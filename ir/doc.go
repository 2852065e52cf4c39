// Package ir provides the tree nodes the document store is made of.
//
// # Overview
//
// Every simulated resource lives in one tree. A Node has a tag Name,
// ordered Attrs used for identity (a repository's coords, say), ordered
// Children and, for leaves, Text.
//
// A node is either a container or a leaf:
//
//   - ContainerKind: children, no text
//   - StringKind, NumberKind, BoolKind: text, no children
//   - EmptyListKind: a placeholder recording a list-valued field with no
//     elements
//
// The leaf kind is only a hint for the JSON projection; Text always holds
// the canonical string form and path predicates compare Text as a string.
//
// Children are ordered and order is significant: repeated tags encode lists
// (the commits of a repository, the labels of an issue). A child with List
// set belongs to a list-valued field even when it is the only one.
//
// # Navigation
//
// Nodes keep Parent and ParentIndex links. Loc gives the index path of a
// node from its root and Locate follows one back, which is how the store
// finds the same position in a copied tree. Select evaluates an
// xpath.Path:
//
//	nodes := ir.Select(root, xpath.MustParse("/github/repos/repo[@coords='alice/demo']"))
//
// # Ordering
//
// CompareIdentity orders stored identity values by their semantic type so
// integer identities are never ordered as strings.
//
// # Related Packages
//
//   - github.com/signadot/mkhub/ir/xpath - path expressions
//   - github.com/signadot/mkhub/jsonview - JSON projection of nodes
//   - github.com/signadot/mkhub/store - the shared, guarded tree
package ir
