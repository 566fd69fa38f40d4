package models

// Page represents a single note page: a named flat-text document that is
// encrypted at rest and mirrored to the remote object store.
type Page struct {
	// Name is the page file name, unique within its folder
	// (e.g. "groceries.txt").
	Name string

	// Folder is the remote folder the page is mirrored into
	// (e.g. "Notes").
	Folder string

	// Data holds the page content. Whether it is plaintext or an
	// encrypted blob depends on where the Page travels: the page
	// service hands plaintext to callers and ciphertext to storage.
	Data []byte
}
