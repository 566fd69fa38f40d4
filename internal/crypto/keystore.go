// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Voronov

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/avoronov/notevault/internal/logger"
)

// KeySize is the length in bytes of the symmetric key used for all page
// encryption. 32 bytes selects AES-256 for the AEAD.
const KeySize = 32

// KeyStore owns the single symmetric key of a deployment. The key lives in
// a raw file at a fixed path (no header, no versioning); it is generated on
// first use and cached in memory for the process lifetime.
//
// The cache is guarded by a mutex so concurrent first use performs exactly
// one load-or-create. Create-if-absent on disk uses O_EXCL, so two racing
// processes cannot both write a key for the same path: the loser of the
// race re-reads the winner's file.
type KeyStore struct {
	path   string
	logger *logger.Logger

	mu  sync.Mutex
	key []byte
}

// NewKeyStore returns a KeyStore bound to the key file at path. No I/O
// happens until the first call to Key.
func NewKeyStore(path string, log *logger.Logger) *KeyStore {
	return &KeyStore{path: path, logger: log}
}

// Key returns the deployment key, loading or creating the key file on
// first use. Subsequent calls return the identical cached bytes. I/O
// failures wrap [ErrKeyFile] and are fatal for the caller.
func (s *KeyStore) Key() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != nil {
		return s.key, nil
	}

	key, err := s.loadOrCreate()
	if err != nil {
		return nil, err
	}

	s.key = key
	return s.key, nil
}

func (s *KeyStore) loadOrCreate() ([]byte, error) {
	key, err := os.ReadFile(s.path)
	if err == nil {
		if len(key) != KeySize {
			return nil, fmt.Errorf("%w: key file %s holds %d bytes, want %d", ErrBadKeyLength, s.path, len(key), KeySize)
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: read %s: %v", ErrKeyFile, s.path, err)
	}

	s.logger.Info().Str("path", s.path).Msg("key file absent, generating new key")

	key = make([]byte, KeySize)
	if _, err = io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			// Another process won the create race; its key is canonical.
			return s.readExisting()
		}
		return nil, fmt.Errorf("%w: create %s: %v", ErrKeyFile, s.path, err)
	}

	if _, err = f.Write(key); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: write %s: %v", ErrKeyFile, s.path, err)
	}
	if err = f.Close(); err != nil {
		return nil, fmt.Errorf("%w: close %s: %v", ErrKeyFile, s.path, err)
	}

	return key, nil
}

func (s *KeyStore) readExisting() ([]byte, error) {
	key, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrKeyFile, s.path, err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key file %s holds %d bytes, want %d", ErrBadKeyLength, s.path, len(key), KeySize)
	}
	return key, nil
}
