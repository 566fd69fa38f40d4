// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Voronov

// Package registry maintains the encrypted table mapping page identifiers
// to their password verification data.
//
// At rest the registry is a single authenticated cipher blob whose
// plaintext is newline-delimited "pageID<TAB>canonical" records, where
// canonical is the 192-character salt-plus-derived-hash stored string. An
// absent or empty blob means an empty registry.
package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/avoronov/notevault/internal/crypto"
	"github.com/avoronov/notevault/internal/logger"
	"github.com/avoronov/notevault/models"
)

// Registry owns the password table for the lifetime of each
// read-decrypt-mutate-encrypt-write cycle. A single mutex is held for the
// whole cycle, so overlapping mutations serialize instead of interleaving
// and clobbering each other's records.
type Registry struct {
	fileName string

	keys   *crypto.KeyStore
	cipher crypto.Cipher
	hasher crypto.Hasher
	blobs  BlobStore
	logger *logger.Logger

	mu sync.Mutex
}

// New constructs a Registry stored under fileName in blobs.
func New(fileName string, keys *crypto.KeyStore, cipher crypto.Cipher, hasher crypto.Hasher, blobs BlobStore, log *logger.Logger) *Registry {
	return &Registry{
		fileName: fileName,
		keys:     keys,
		cipher:   cipher,
		hasher:   hasher,
		blobs:    blobs,
		logger:   log,
	}
}

// Load decrypts and parses the registry. A registry blob that does not
// exist yet, or decrypts to nothing, yields an empty record list.
func (r *Registry) Load() ([]models.PasswordRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadLocked()
}

// Append hashes plainPassword and adds a record for pageID. Returns
// [ErrPageExists] if the page already has one; reassignment goes through
// Update instead.
func (r *Registry) Append(pageID, plainPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadLocked()
	if err != nil {
		return err
	}

	for _, rec := range records {
		if rec.PageID == pageID {
			return fmt.Errorf("%w: %s", ErrPageExists, pageID)
		}
	}

	canonical, err := r.hasher.Hash(plainPassword)
	if err != nil {
		return fmt.Errorf("hash password for %s: %w", pageID, err)
	}

	records = append(records, models.PasswordRecord{PageID: pageID, Canonical: canonical})
	if err = r.saveLocked(records); err != nil {
		return err
	}

	r.logger.Info().Str("page", pageID).Msg("password record appended")
	return nil
}

// Update replaces the password record of an existing page in place.
// Returns [ErrPageNotFound] if the page has no record yet.
func (r *Registry) Update(pageID, plainPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadLocked()
	if err != nil {
		return err
	}

	idx := -1
	for i, rec := range records {
		if rec.PageID == pageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPageNotFound, pageID)
	}

	canonical, err := r.hasher.Hash(plainPassword)
	if err != nil {
		return fmt.Errorf("hash password for %s: %w", pageID, err)
	}

	records[idx].Canonical = canonical
	if err = r.saveLocked(records); err != nil {
		return err
	}

	r.logger.Info().Str("page", pageID).Msg("password record updated")
	return nil
}

// Lookup returns the canonical stored string for pageID and whether a
// record exists.
func (r *Registry) Lookup(pageID string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadLocked()
	if err != nil {
		return "", false, err
	}

	for _, rec := range records {
		if rec.PageID == pageID {
			return rec.Canonical, true, nil
		}
	}
	return "", false, nil
}

// VerifyPage reports whether plainPassword unlocks pageID. A page without
// a record is unprotected and verifies true.
func (r *Registry) VerifyPage(pageID, plainPassword string) (bool, error) {
	canonical, found, err := r.Lookup(pageID)
	if err != nil {
		return false, err
	}
	if !found {
		return true, nil
	}

	return r.hasher.Verify(plainPassword, canonical)
}

func (r *Registry) loadLocked() ([]models.PasswordRecord, error) {
	blob, err := r.blobs.Read(r.fileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.PasswordRecord{}, nil
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}

	key, err := r.keys.Key()
	if err != nil {
		return nil, err
	}

	plain, err := r.cipher.Decrypt(blob, key)
	if err != nil {
		return nil, fmt.Errorf("decrypt registry: %w", err)
	}

	return parseRecords(plain)
}

func (r *Registry) saveLocked(records []models.PasswordRecord) error {
	key, err := r.keys.Key()
	if err != nil {
		return err
	}

	blob, err := r.cipher.Encrypt(serializeRecords(records), key)
	if err != nil {
		return fmt.Errorf("encrypt registry: %w", err)
	}

	if err = r.blobs.WriteAtomic(r.fileName, blob); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}

func parseRecords(plain []byte) ([]models.PasswordRecord, error) {
	records := []models.PasswordRecord{}

	for _, line := range strings.Split(string(plain), "\n") {
		// Registries written by older tool versions carry \r remnants.
		line = strings.TrimRight(line, "\r ")
		if line == "" {
			continue
		}

		pageID, canonical, found := strings.Cut(line, "\t")
		if !found || pageID == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedRegistry, line)
		}

		records = append(records, models.PasswordRecord{PageID: pageID, Canonical: canonical})
	}

	return records, nil
}

func serializeRecords(records []models.PasswordRecord) []byte {
	var b strings.Builder
	for _, rec := range records {
		b.WriteString(rec.PageID)
		b.WriteByte('\t')
		b.WriteString(rec.Canonical)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
