package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avoronov/notevault/internal/config"
	"github.com/avoronov/notevault/internal/crypto"
	"github.com/avoronov/notevault/internal/logger"
	"github.com/avoronov/notevault/internal/mock"
	"github.com/avoronov/notevault/internal/registry"
	"github.com/avoronov/notevault/internal/remote"
	"github.com/avoronov/notevault/internal/store"
)

type pagesFixture struct {
	svc     PageService
	objects *mock.MockObjectStore
	local   *store.PageStore
	keys    *crypto.KeyStore
	cipher  crypto.Cipher
}

func newPagesFixture(t *testing.T) *pagesFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	objects := mock.NewMockObjectStore(ctrl)

	dir := t.TempDir()
	cfg := &config.StructuredConfig{
		App: config.App{
			KeyPath:      filepath.Join(dir, "key.key"),
			StorageDir:   filepath.Join(dir, "Storage"),
			RegistryFile: "password.txt",
		},
		Remote: config.Remote{
			Address:        "files.example.com",
			RequestTimeout: time.Second,
			NotesFolder:    "Notes",
			PasswordFolder: "Password",
		},
		Retry: config.Retry{MaxAttempts: 3, BaseSlot: time.Millisecond},
	}

	log := logger.Nop()
	keys := crypto.NewKeyStore(cfg.App.KeyPath, log)
	cipher := crypto.NewCipher()
	hasher := crypto.NewPasswordHasher()

	local, err := store.NewPageStore(cfg.App.StorageDir, log)
	require.NoError(t, err)

	reg := registry.New(cfg.App.RegistryFile, keys, cipher, hasher, local, log)
	retrier := remote.NewRetrier(cfg.Retry.MaxAttempts, cfg.Retry.BaseSlot, log)

	svc := NewPageService(cfg, keys, cipher, hasher, reg, local, objects, retrier, log)
	t.Cleanup(svc.Close)

	return &pagesFixture{svc: svc, objects: objects, local: local, keys: keys, cipher: cipher}
}

func TestPageService_EncryptDecryptRoundTrip(t *testing.T) {
	f := newPagesFixture(t)

	blob, err := f.svc.EncryptPage([]byte("note content"))
	require.NoError(t, err)
	require.NotEqual(t, []byte("note content"), blob)

	plain, err := f.svc.DecryptPage(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("note content"), plain)
}

func TestPageService_HashAndVerifyPagePassword(t *testing.T) {
	f := newPagesFixture(t)

	stored, err := f.svc.HashPagePassword("pw")
	require.NoError(t, err)
	assert.Len(t, stored, 192)
}

func TestPageService_EnsureRegistry_CreatesEmptyWhenAbsentRemotely(t *testing.T) {
	f := newPagesFixture(t)

	f.objects.EXPECT().
		Get(gomock.Any(), "password.txt", "Password").
		Return(nil, remote.ErrNotFound).
		Times(1)

	require.NoError(t, f.svc.EnsureRegistry(context.Background()))

	// The fetch must happen once per process: a second call hits the
	// recorded outcome, not the remote store.
	require.NoError(t, f.svc.EnsureRegistry(context.Background()))

	blob, err := f.local.Read("password.txt")
	require.NoError(t, err)
	assert.Empty(t, blob)
}

func TestPageService_EnsureRegistry_PullsExistingBlob(t *testing.T) {
	f := newPagesFixture(t)

	// Craft a remote registry blob under the fixture's own key.
	key, err := f.keys.Key()
	require.NoError(t, err)
	canonical, err := crypto.NewPasswordHasher().Hash("pw")
	require.NoError(t, err)
	blob, err := f.cipher.Encrypt([]byte("a.txt\t"+canonical+"\n"), key)
	require.NoError(t, err)

	f.objects.EXPECT().
		Get(gomock.Any(), "password.txt", "Password").
		Return(blob, nil).
		Times(1)

	require.NoError(t, f.svc.EnsureRegistry(context.Background()))

	ok, err := f.svc.VerifyPagePassword("a.txt", "pw")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.VerifyPagePassword("a.txt", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPageService_SaveThenOpenPage(t *testing.T) {
	f := newPagesFixture(t)

	f.objects.EXPECT().
		Put(gomock.Any(), "page.txt", "Notes", gomock.Any()).
		Return(nil).
		Times(1)

	require.NoError(t, f.svc.SavePage(context.Background(), "page.txt", []byte("line one\n")))
	f.svc.Close()

	plain, err := f.svc.OpenPage(context.Background(), "page.txt", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("line one\n"), plain)
}

func TestPageService_OpenPage_FetchesFromRemoteWhenNotCached(t *testing.T) {
	f := newPagesFixture(t)

	blob, err := f.svc.EncryptPage([]byte("remote content"))
	require.NoError(t, err)

	f.objects.EXPECT().
		Get(gomock.Any(), "page.txt", "Notes").
		Return(blob, nil).
		Times(1)

	plain, err := f.svc.OpenPage(context.Background(), "page.txt", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("remote content"), plain)

	// Now cached locally: no further remote calls expected.
	plain, err = f.svc.OpenPage(context.Background(), "page.txt", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("remote content"), plain)
}

func TestPageService_OpenPage_MissingEverywhere(t *testing.T) {
	f := newPagesFixture(t)

	f.objects.EXPECT().
		Get(gomock.Any(), "ghost.txt", "Notes").
		Return(nil, remote.ErrNotFound).
		Times(1)

	_, err := f.svc.OpenPage(context.Background(), "ghost.txt", "")
	require.ErrorIs(t, err, ErrPageNotFound)
}

func TestPageService_CreateProtectedPage(t *testing.T) {
	f := newPagesFixture(t)

	f.objects.EXPECT().
		Put(gomock.Any(), "password.txt", "Password", gomock.Any()).
		Return(nil).
		Times(1)
	f.objects.EXPECT().
		Put(gomock.Any(), "secret.txt", "Notes", gomock.Any()).
		Return(nil).
		Times(1)

	require.NoError(t, f.svc.CreatePage(context.Background(), "secret.txt", "hunter2"))
	f.svc.Close()

	// Wrong password is rejected before any decryption happens.
	_, err := f.svc.OpenPage(context.Background(), "secret.txt", "wrong")
	require.ErrorIs(t, err, ErrWrongPassword)

	plain, err := f.svc.OpenPage(context.Background(), "secret.txt", "hunter2")
	require.NoError(t, err)
	assert.Empty(t, plain)
}

func TestPageService_RegistryAppendRejectsDuplicate(t *testing.T) {
	f := newPagesFixture(t)

	f.objects.EXPECT().
		Put(gomock.Any(), "password.txt", "Password", gomock.Any()).
		Return(nil).
		AnyTimes()

	ctx := context.Background()
	require.NoError(t, f.svc.RegistryAppend(ctx, "a.txt", "pw"))
	require.ErrorIs(t, f.svc.RegistryAppend(ctx, "a.txt", "other"), registry.ErrPageExists)

	// Reassignment is the explicit update operation.
	require.NoError(t, f.svc.RegistryUpdate(ctx, "a.txt", "other"))

	ok, err := f.svc.VerifyPagePassword("a.txt", "other")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPageService_DeletePage(t *testing.T) {
	f := newPagesFixture(t)

	f.objects.EXPECT().
		Put(gomock.Any(), "page.txt", "Notes", gomock.Any()).
		Return(nil).
		Times(1)
	f.objects.EXPECT().
		Delete(gomock.Any(), "page.txt", "Notes").
		Return(nil).
		Times(1)

	ctx := context.Background()
	require.NoError(t, f.svc.SavePage(ctx, "page.txt", []byte("data")))
	require.NoError(t, f.svc.DeletePage(ctx, "page.txt"))

	assert.False(t, f.local.Exists("page.txt"))
}

func TestPageService_ListPagesExcludesRegistry(t *testing.T) {
	f := newPagesFixture(t)

	f.objects.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ctx := context.Background()
	require.NoError(t, f.svc.SavePage(ctx, "b.txt", []byte("b")))
	require.NoError(t, f.svc.SavePage(ctx, "a.txt", []byte("a")))
	require.NoError(t, f.svc.RegistryAppend(ctx, "a.txt", "pw"))
	f.svc.Close()

	pages, err := f.svc.ListPages()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, pages)
}
