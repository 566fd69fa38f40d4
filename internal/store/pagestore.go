// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Voronov

// Package store persists encrypted page files and the registry blob in the
// local storage directory. All writes are atomic: content lands in a
// uniquely named temp file which is fsynced and then renamed over the
// target, so readers and crashed writers never observe a half-written
// file.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/avoronov/notevault/internal/logger"
)

// PageStore is a flat-file store rooted at a single directory. File names
// are logical page names; nested paths are not supported.
type PageStore struct {
	dir    string
	logger *logger.Logger
}

// NewPageStore creates the storage directory if needed and returns a store
// rooted at dir.
func NewPageStore(dir string, log *logger.Logger) (*PageStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create storage dir %s: %v", ErrWriteFile, dir, err)
	}
	return &PageStore{dir: dir, logger: log}, nil
}

// Path returns the absolute location of the named file inside the store.
func (s *PageStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Read returns the content of the named file. The returned error wraps
// both [ErrReadFile] and the underlying cause, so a missing file still
// matches [fs.ErrNotExist] via [errors.Is].
func (s *PageStore) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, name, err)
	}
	return data, nil
}

// Exists reports whether the named file is present in the store.
func (s *PageStore) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// WriteAtomic replaces the named file with data. The content goes to a
// temp file first (unique suffix, same directory so the rename stays on
// one filesystem), is fsynced, and is then renamed over the target.
func (s *PageStore) WriteAtomic(name string, data []byte) error {
	tmp := s.Path(fmt.Sprintf(".%s.%s.tmp", name, uuid.NewString()))

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %v", ErrWriteFile, name, err)
	}

	if _, err = f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: write temp for %s: %v", ErrWriteFile, name, err)
	}
	if err = f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: sync temp for %s: %v", ErrWriteFile, name, err)
	}
	if err = f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: close temp for %s: %v", ErrWriteFile, name, err)
	}

	if err = os.Rename(tmp, s.Path(name)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: rename temp over %s: %v", ErrWriteFile, name, err)
	}

	return nil
}

// Remove deletes the named file. Removing an absent file is not an error.
func (s *PageStore) Remove(name string) error {
	if err := os.Remove(s.Path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove %s: %v", ErrWriteFile, name, err)
	}
	return nil
}

// List returns the names of all regular files in the store, sorted,
// excluding in-flight temp files.
func (s *PageStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", ErrReadFile, s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	return names, nil
}
