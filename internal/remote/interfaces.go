package remote

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/object_store_mock.go -package=mock

// ObjectStore is the abstract remote collaborator used for durability and
// sync of encrypted pages and the password registry. Implementations know
// nothing about notes or passwords; they move opaque bytes.
//
// Failures are either classified (*Error with a transient or fatal Kind),
// [ErrNotFound] for missing objects, or plain wrapped errors when the
// backend response cannot be classified.
type ObjectStore interface {
	// Put stores data under name inside folder, overwriting any existing
	// object of that name.
	Put(ctx context.Context, name, folder string, data []byte) error

	// Get returns the content of the named object, or an error wrapping
	// [ErrNotFound] if it does not exist.
	Get(ctx context.Context, name, folder string) ([]byte, error)

	// Delete removes the named object, or returns an error wrapping
	// [ErrNotFound] if it does not exist.
	Delete(ctx context.Context, name, folder string) error
}
