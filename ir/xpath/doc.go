// Package xpath provides the path expressions used to address nodes in the
// document tree.
//
// A path is a sequence of steps separated by '/'. Each step names a child tag
// (or '*' for any tag) and may carry equality predicates on attributes or on
// leaf children:
//
//	/github/repos/repo[@coords='alice/demo']/git/commits/commit[sha='deadbeef']
//
// A leading '/' makes the path absolute: its first step must match the root
// node itself. Otherwise the path is relative to the children of a context
// node.
//
// Predicate literals are compared as plain strings. There is no escaping
// inside literals; a literal is quoted with whichever of ' or " it does not
// contain. Values containing both cannot be written as a path and are
// rejected with ErrMalformedPath.
//
// # Templates
//
// Identity values should not be pasted into path text. A Template is parsed
// once with '?' placeholders in literal position and filled with typed values:
//
//	commitT := xpath.MustTemplate("/github/repos/repo[@coords=?]/git/commits/commit[sha=?]")
//	p, err := commitT.Path(coords, sha)
//
// # Related Packages
//
//   - github.com/signadot/mkhub/ir - node selection over a path
package xpath
