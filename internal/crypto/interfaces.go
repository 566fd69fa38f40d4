package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mocks.go -package=mock

// Cipher performs authenticated symmetric encryption of byte payloads.
// It is stateless: the key is borrowed from the [KeyStore] on every call
// and never retained.
//
// Both operations treat a zero-length payload as a passthrough: empty
// plaintext encrypts to an empty blob and an empty blob decrypts to empty
// plaintext, without ever reaching the AEAD.
type Cipher interface {
	// Encrypt seals plaintext under key and returns a self-describing
	// blob (version ‖ nonce ‖ ciphertext). key must be KeySize bytes.
	Encrypt(plaintext, key []byte) ([]byte, error)

	// Decrypt opens a blob produced by Encrypt. Returns an error wrapping
	// [ErrIntegrity] if the blob is malformed, was sealed under a
	// different key, or has been tampered with.
	Decrypt(blob, key []byte) ([]byte, error)
}

// Hasher derives and verifies salted page-password hashes.
//
// The canonical stored form is salt ‖ derivedHash: 64 hex characters of
// salt (SHA-256 digest of 60 random bytes) followed by 128 hex characters
// of a PBKDF2-HMAC-SHA512 derivation (100 000 iterations, 64-byte key).
type Hasher interface {
	// Hash salts and derives the canonical 192-character stored string
	// for password. Returns [ErrPasswordTooLong] if password exceeds the
	// maximum accepted length.
	Hash(password string) (string, error)

	// Verify recomputes the derivation for providedPassword against the
	// salt embedded in stored and reports whether they match. The
	// comparison is constant-time with respect to password content.
	// Returns [ErrPasswordTooLong] if providedPassword exceeds the
	// maximum accepted length. A malformed stored string verifies false.
	Verify(providedPassword, stored string) (bool, error)
}
