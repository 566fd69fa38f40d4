package crypto

import "errors"

// Sentinel errors returned by the crypto package. Callers should match
// against these values with [errors.Is].
var (
	// ErrKeyFile is returned when the key file cannot be read or written.
	// Key-file I/O failures are fatal for the calling operation and are
	// never retried.
	ErrKeyFile = errors.New("key file unreadable or unwritable")

	// ErrBadKeyLength is returned when loaded or supplied key material is
	// not exactly KeySize bytes long.
	ErrBadKeyLength = errors.New("invalid key length")

	// ErrIntegrity is returned when a ciphertext blob is malformed, was
	// produced under a different key, or has been tampered with. It is a
	// hard failure: decryption never returns partial or garbage plaintext,
	// and retrying cannot fix a corrupted blob or mismatched key.
	ErrIntegrity = errors.New("ciphertext integrity check failed")

	// ErrPasswordTooLong is returned when a password exceeds the maximum
	// accepted length. The cap bounds the input of the deliberately slow
	// key derivation.
	ErrPasswordTooLong = errors.New("password length must not exceed 1024")
)
