package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/notevault/internal/logger"
)

func newTestStore(t *testing.T) *PageStore {
	t.Helper()

	s, err := NewPageStore(filepath.Join(t.TempDir(), "Storage"), logger.Nop())
	require.NoError(t, err)
	return s
}

func TestPageStore_WriteAtomicThenRead(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteAtomic("page.txt", []byte("encrypted content")))

	got, err := s.Read("page.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("encrypted content"), got)
}

func TestPageStore_WriteAtomicOverwritesExisting(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteAtomic("page.txt", []byte("old")))
	require.NoError(t, s.WriteAtomic("page.txt", []byte("new")))

	got, err := s.Read("page.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestPageStore_WriteAtomicLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteAtomic("page.txt", []byte("data")))

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "page.txt", entries[0].Name())
}

func TestPageStore_ReadMissingFile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Read("absent.txt")
	require.ErrorIs(t, err, ErrReadFile)
	require.True(t, errors.Is(err, fs.ErrNotExist), "missing file should match fs.ErrNotExist")
}

func TestPageStore_RemoveIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteAtomic("page.txt", []byte("data")))
	require.NoError(t, s.Remove("page.txt"))
	require.NoError(t, s.Remove("page.txt"))
	assert.False(t, s.Exists("page.txt"))
}

func TestPageStore_ListSkipsTempAndHiddenFiles(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteAtomic("b.txt", []byte("b")))
	require.NoError(t, s.WriteAtomic("a.txt", []byte("a")))
	require.NoError(t, os.WriteFile(s.Path(".a.txt.123.tmp"), []byte("stale"), 0o600))

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, names)
}
