package xpath

import "errors"

// ErrMalformedPath reports path text, or a value interpolated into a
// template, that does not fit the path grammar.
var ErrMalformedPath = errors.New("malformed path")
