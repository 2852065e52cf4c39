// Package jsonview projects document tree nodes to JSON values and parses
// JSON values into detached tree fragments.
//
// A container node projects to an object with one field per distinct child
// tag, in order of first appearance. A tag that repeats, or whose children
// are marked as list elements, projects to an array. Leaves project to
// scalars according to their kind. Attributes are not projected.
//
// The projection is schema free, so its shape follows the data: adding a
// second child with a tag that used to appear once turns that field from a
// scalar into an array on the next read.
//
// Parsing is the inverse: object fields become children, arrays become
// repeated children marked as list elements, nulls are dropped and scalars
// become leaves holding their canonical text. For any object without nested
// arrays or nulls,
//
//	ToJSON(FromJSON(name, o)) == o
//
// field for field, with array order preserved.
package jsonview
