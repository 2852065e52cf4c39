package jsonview

import "errors"

// ErrConversion reports a value that has no tree representation, such as
// an array directly inside an array or a field name that paths cannot
// address.
var ErrConversion = errors.New("conversion error")
