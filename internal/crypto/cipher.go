// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Voronov

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// blobVersion is the format version prepended to every encrypted blob so
// the scheme can evolve without breaking stored pages.
const blobVersion byte = 0x01

// aeadCipher is the AES-256-GCM implementation of [Cipher]. Blob layout:
//
//	version (1 byte) ‖ nonce (12 bytes) ‖ ciphertext+tag
type aeadCipher struct{}

// NewCipher constructs the default AES-256-GCM [Cipher].
func NewCipher() Cipher {
	return &aeadCipher{}
}

// Encrypt implements [Cipher]. A zero-length plaintext is returned
// unchanged without touching the AEAD.
func (c *aeadCipher) Encrypt(plaintext, key []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return plaintext, nil
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	blob := make([]byte, 0, 1+len(nonce)+len(plaintext)+gcm.Overhead())
	blob = append(blob, blobVersion)
	blob = append(blob, nonce...)
	blob = gcm.Seal(blob, nonce, plaintext, nil)

	return blob, nil
}

// Decrypt implements [Cipher]. A zero-length blob is returned unchanged.
// Any malformed, foreign-key or tampered blob fails with an error wrapping
// [ErrIntegrity].
func (c *aeadCipher) Decrypt(blob, key []byte) ([]byte, error) {
	if len(blob) == 0 {
		return blob, nil
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < 1+nonceSize {
		return nil, fmt.Errorf("%w: blob too short", ErrIntegrity)
	}
	if blob[0] != blobVersion {
		return nil, fmt.Errorf("%w: unknown blob version %d", ErrIntegrity, blob[0])
	}

	nonce, ciphertext := blob[1:1+nonceSize], blob[1+nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// Auth-tag mismatch: tampered data or wrong key. Hard failure,
		// never return partial plaintext.
		return nil, fmt.Errorf("%w: %v", ErrIntegrity, err)
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrBadKeyLength, len(key), KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
