package github

import (
	"errors"

	"github.com/signadot/mkhub/ir"
)

var (
	// ErrExists is returned when creating a resource whose identity is
	// already taken.
	ErrExists = errors.New("already exists")
	// ErrNotFound is ir.ErrNotFound, repeated here for callers of this
	// package.
	ErrNotFound = ir.ErrNotFound
	// ErrInvalid reports an identity value that cannot name a resource.
	ErrInvalid = errors.New("invalid identity")
)
