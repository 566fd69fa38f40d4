package service

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mocks.go -package=mock

// PageService is the surface the surrounding application consumes: page
// encryption, password hashing and verification, registry maintenance and
// mirrored persistence. Implementations own the ordering of background
// uploads; callers never race a page against its own previous upload.
type PageService interface {
	// EncryptPage seals plaintext page content under the vault key.
	EncryptPage(plain []byte) ([]byte, error)

	// DecryptPage opens an encrypted page blob.
	DecryptPage(blob []byte) ([]byte, error)

	// HashPagePassword derives the canonical stored string for password.
	HashPagePassword(password string) (string, error)

	// VerifyPagePassword reports whether password unlocks pageID. An
	// unprotected page verifies true.
	VerifyPagePassword(pageID, password string) (bool, error)

	// RegistryAppend records a password for a page that has none yet.
	RegistryAppend(ctx context.Context, pageID, password string) error

	// RegistryUpdate replaces the password of an already protected page.
	RegistryUpdate(ctx context.Context, pageID, password string) error

	// RegistryLookup returns the canonical stored string for pageID and
	// whether the page is protected.
	RegistryLookup(pageID string) (string, bool, error)

	// EnsureRegistry pulls the registry blob from the remote store once
	// per process, creating an empty local registry when none exists
	// remotely yet.
	EnsureRegistry(ctx context.Context) error

	// CreatePage creates an empty page, optionally protected by password
	// (empty string means unprotected), and mirrors it remotely.
	CreatePage(ctx context.Context, name, password string) error

	// OpenPage returns the decrypted content of a page, fetching it from
	// the remote store when it is not cached locally. password is checked
	// against the registry first.
	OpenPage(ctx context.Context, name, password string) ([]byte, error)

	// SavePage encrypts plain, persists it locally with an atomic write,
	// and schedules the mirrored upload behind any still-running upload
	// of the same page.
	SavePage(ctx context.Context, name string, plain []byte) error

	// DeletePage removes the page locally and remotely. Pending uploads
	// of the page are awaited first.
	DeletePage(ctx context.Context, name string) error

	// ListPages returns the locally known page names.
	ListPages() ([]string, error)

	// Close drains all in-flight background uploads.
	Close()
}
