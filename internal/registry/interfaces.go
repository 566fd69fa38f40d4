package registry

//go:generate mockgen -source=interfaces.go -destination=../mock/blob_store_mock.go -package=mock

// BlobStore persists the encrypted registry blob. The local page store
// satisfies it; writes must be atomic so a crash mid-save can never leave
// a truncated registry behind.
type BlobStore interface {
	// Read returns the blob, or an error matching [io/fs.ErrNotExist]
	// when no registry has been written yet.
	Read(name string) ([]byte, error)

	// WriteAtomic atomically replaces the blob with data.
	WriteAtomic(name string, data []byte) error
}
