// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Voronov

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/avoronov/notevault/models"
)

// passwordHasher is the PBKDF2-HMAC-SHA512 implementation of [Hasher].
// The parameters are stored in the struct so they can be adjusted per
// deployment target; the defaults match the historical on-disk format of
// existing registries and must not change for data already written.
type passwordHasher struct {
	iterations     int
	saltInputBytes int
	derivedKeyLen  int
	maxPasswordLen int
}

// NewPasswordHasher constructs a [Hasher] with the registry's canonical
// parameters:
//   - salt: SHA-256 hex digest of 60 random bytes (64 characters)
//   - derivation: PBKDF2-HMAC-SHA512, 100 000 iterations, 64-byte key
//   - password length cap: 1024 characters
func NewPasswordHasher() Hasher {
	return &passwordHasher{
		iterations:     100_000,
		saltInputBytes: 60,
		derivedKeyLen:  64,
		maxPasswordLen: 1024,
	}
}

// Hash implements [Hasher].
func (h *passwordHasher) Hash(password string) (string, error) {
	if len(password) > h.maxPasswordLen {
		return "", ErrPasswordTooLong
	}

	raw := make([]byte, h.saltInputBytes)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	digest := sha256.Sum256(raw)
	salt := hex.EncodeToString(digest[:])

	// The salt's ASCII bytes, not the raw digest, feed the KDF. That is
	// what existing registries contain, so it is part of the format.
	derived := pbkdf2.Key([]byte(password), []byte(salt), h.iterations, h.derivedKeyLen, sha512.New)

	return salt + hex.EncodeToString(derived), nil
}

// Verify implements [Hasher]. The password length is capped before the
// derivation runs so oversized input cannot turn the deliberately slow
// KDF into a denial-of-service lever.
func (h *passwordHasher) Verify(providedPassword, stored string) (bool, error) {
	if len(providedPassword) > h.maxPasswordLen {
		return false, ErrPasswordTooLong
	}
	if len(stored) < models.SaltHexLen {
		return false, nil
	}

	salt, want := stored[:models.SaltHexLen], stored[models.SaltHexLen:]
	derived := hex.EncodeToString(pbkdf2.Key([]byte(providedPassword), []byte(salt), h.iterations, h.derivedKeyLen, sha512.New))

	return subtle.ConstantTimeCompare([]byte(derived), []byte(want)) == 1, nil
}
