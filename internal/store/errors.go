package store

import "errors"

// Sentinel errors returned by the local page store. Callers should match
// against these values with [errors.Is].
var (
	// ErrReadFile is returned when a page or registry file cannot be read
	// from the storage directory.
	ErrReadFile = errors.New("cannot read storage file")

	// ErrWriteFile is returned when a page or registry file cannot be
	// written to the storage directory.
	ErrWriteFile = errors.New("cannot write storage file")
)
