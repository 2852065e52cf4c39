package store

import "errors"

// ErrStaleRef is returned when a Ref from an older snapshot is used.
var ErrStaleRef = errors.New("stale node reference")
