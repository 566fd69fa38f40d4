// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Voronov

// Package service wires the secure-storage core into the operations the
// surrounding application consumes: encrypt/decrypt pages, manage page
// passwords, and keep local files mirrored to the remote object store.
package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/avoronov/notevault/internal/config"
	"github.com/avoronov/notevault/internal/crypto"
	"github.com/avoronov/notevault/internal/logger"
	"github.com/avoronov/notevault/internal/registry"
	"github.com/avoronov/notevault/internal/remote"
	"github.com/avoronov/notevault/internal/store"
	"github.com/avoronov/notevault/models"
)

type pageService struct {
	keys     *crypto.KeyStore
	cipher   crypto.Cipher
	hasher   crypto.Hasher
	registry *registry.Registry
	local    *store.PageStore
	remote   remote.ObjectStore
	retrier  *remote.Retrier
	uploader *Uploader
	logger   *logger.Logger

	registryFile   string
	notesFolder    string
	passwordFolder string

	preloadOnce sync.Once
	preloadErr  error
}

// NewPageService assembles the [PageService] from its collaborators. The
// registry and the key store share the same local page store and key
// file, so one vault directory holds everything.
func NewPageService(
	cfg *config.StructuredConfig,
	keys *crypto.KeyStore,
	cipher crypto.Cipher,
	hasher crypto.Hasher,
	reg *registry.Registry,
	local *store.PageStore,
	objects remote.ObjectStore,
	retrier *remote.Retrier,
	log *logger.Logger,
) PageService {
	return &pageService{
		keys:           keys,
		cipher:         cipher,
		hasher:         hasher,
		registry:       reg,
		local:          local,
		remote:         objects,
		retrier:        retrier,
		uploader:       NewUploader(objects, retrier, log.GetChildLogger()),
		logger:         log,
		registryFile:   cfg.App.RegistryFile,
		notesFolder:    cfg.Remote.NotesFolder,
		passwordFolder: cfg.Remote.PasswordFolder,
	}
}

// EncryptPage implements [PageService].
func (s *pageService) EncryptPage(plain []byte) ([]byte, error) {
	key, err := s.keys.Key()
	if err != nil {
		return nil, err
	}
	return s.cipher.Encrypt(plain, key)
}

// DecryptPage implements [PageService].
func (s *pageService) DecryptPage(blob []byte) ([]byte, error) {
	key, err := s.keys.Key()
	if err != nil {
		return nil, err
	}
	return s.cipher.Decrypt(blob, key)
}

// HashPagePassword implements [PageService].
func (s *pageService) HashPagePassword(password string) (string, error) {
	return s.hasher.Hash(password)
}

// VerifyPagePassword implements [PageService].
func (s *pageService) VerifyPagePassword(pageID, password string) (bool, error) {
	return s.registry.VerifyPage(pageID, password)
}

// RegistryAppend implements [PageService]. After the record lands in the
// local encrypted registry the updated blob is scheduled for mirroring.
func (s *pageService) RegistryAppend(ctx context.Context, pageID, password string) error {
	if err := s.registry.Append(pageID, password); err != nil {
		return err
	}
	return s.mirrorRegistry(ctx)
}

// RegistryUpdate implements [PageService].
func (s *pageService) RegistryUpdate(ctx context.Context, pageID, password string) error {
	if err := s.registry.Update(pageID, password); err != nil {
		return err
	}
	return s.mirrorRegistry(ctx)
}

// RegistryLookup implements [PageService].
func (s *pageService) RegistryLookup(pageID string) (string, bool, error) {
	return s.registry.Lookup(pageID)
}

// EnsureRegistry implements [PageService]. The remote fetch happens once
// per process; later calls return the recorded outcome.
func (s *pageService) EnsureRegistry(ctx context.Context) error {
	s.preloadOnce.Do(func() {
		blob, err := remote.DoResult(ctx, s.retrier, func() ([]byte, error) {
			return s.remote.Get(ctx, s.registryFile, s.passwordFolder)
		})
		if err != nil {
			if errors.Is(err, remote.ErrNotFound) {
				s.logger.Warn().Msg("registry does not exist remotely, creating new file")
				s.preloadErr = s.local.WriteAtomic(s.registryFile, []byte{})
				return
			}
			s.preloadErr = fmt.Errorf("fetch registry: %w", err)
			return
		}

		s.preloadErr = s.local.WriteAtomic(s.registryFile, blob)
	})

	return s.preloadErr
}

// CreatePage implements [PageService]. An empty password leaves the page
// unprotected.
func (s *pageService) CreatePage(ctx context.Context, name, password string) error {
	if s.local.Exists(name) {
		return fmt.Errorf("page %s already exists locally", name)
	}

	if password != "" {
		if err := s.RegistryAppend(ctx, name, password); err != nil {
			return err
		}
	}

	return s.SavePage(ctx, name, []byte{})
}

// OpenPage implements [PageService]. The password is verified before any
// content is decrypted; a page cached locally is preferred over a remote
// fetch.
func (s *pageService) OpenPage(ctx context.Context, name, password string) ([]byte, error) {
	ok, err := s.registry.VerifyPage(name, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: page %s", ErrWrongPassword, name)
	}

	blob, err := s.local.Read(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}

		blob, err = remote.DoResult(ctx, s.retrier, func() ([]byte, error) {
			return s.remote.Get(ctx, name, s.notesFolder)
		})
		if err != nil {
			if errors.Is(err, remote.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrPageNotFound, name)
			}
			return nil, fmt.Errorf("fetch page %s: %w", name, err)
		}

		if err = s.local.WriteAtomic(name, blob); err != nil {
			return nil, err
		}
	}

	return s.DecryptPage(blob)
}

// SavePage implements [PageService].
func (s *pageService) SavePage(ctx context.Context, name string, plain []byte) error {
	blob, err := s.EncryptPage(plain)
	if err != nil {
		return err
	}

	if err = s.local.WriteAtomic(name, blob); err != nil {
		return err
	}

	s.uploader.Schedule(ctx, models.Page{Name: name, Folder: s.notesFolder, Data: blob})
	return nil
}

// DeletePage implements [PageService]. Any pending upload of the page is
// awaited first so the delete cannot be overtaken by a stale upload.
func (s *pageService) DeletePage(ctx context.Context, name string) error {
	if t := s.uploader.Pending(name, s.notesFolder); t != nil {
		_ = t.Wait()
	}

	if err := s.local.Remove(name); err != nil {
		return err
	}

	err := s.retrier.Do(ctx, func() error {
		return s.remote.Delete(ctx, name, s.notesFolder)
	})
	if err != nil && !errors.Is(err, remote.ErrNotFound) {
		return fmt.Errorf("delete page %s remotely: %w", name, err)
	}

	s.logger.Info().Str("page", name).Msg("page deleted")
	return nil
}

// ListPages implements [PageService]. The registry file itself is not a
// page and is filtered out.
func (s *pageService) ListPages() ([]string, error) {
	names, err := s.local.List()
	if err != nil {
		return nil, err
	}

	pages := names[:0]
	for _, name := range names {
		if name != s.registryFile {
			pages = append(pages, name)
		}
	}
	return pages, nil
}

// Close implements [PageService].
func (s *pageService) Close() {
	s.uploader.Close()
}

// mirrorRegistry schedules an upload of the current local registry blob.
// Registry uploads are ordered like page uploads, behind any still
// running mirror of the registry itself.
func (s *pageService) mirrorRegistry(ctx context.Context) error {
	blob, err := s.local.Read(s.registryFile)
	if err != nil {
		return fmt.Errorf("read registry for mirroring: %w", err)
	}

	s.uploader.Schedule(ctx, models.Page{Name: s.registryFile, Folder: s.passwordFolder, Data: blob})
	return nil
}
