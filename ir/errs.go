package ir

import (
	"errors"
)

var (
	// ErrNotFound is returned when a path expected to name one node names
	// none.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned when a path expected to name one node names
	// several. It means a resource was created without enforcing its
	// identity and is a defect, not a condition to recover from.
	ErrAmbiguous = errors.New("ambiguous resolution")
)
