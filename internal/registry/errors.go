package registry

import "errors"

// Sentinel errors returned by the password registry. Callers should match
// against these values with [errors.Is].
var (
	// ErrPageExists is returned by Append when the page already has a
	// password record. Reassigning a password is the explicit Update
	// operation, never an implicit overwrite.
	ErrPageExists = errors.New("page already has a password record")

	// ErrPageNotFound is returned by Update when the page has no password
	// record to replace.
	ErrPageNotFound = errors.New("page has no password record")

	// ErrMalformedRegistry is returned when the decrypted registry
	// contains a line that cannot be parsed into a record.
	ErrMalformedRegistry = errors.New("malformed registry record")
)
