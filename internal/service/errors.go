package service

import "errors"

var (
	// ErrWrongPassword is returned by OpenPage when the supplied password
	// does not unlock a protected page.
	ErrWrongPassword = errors.New("wrong password")

	// ErrPageNotFound is returned when a page exists neither locally nor
	// in the remote store.
	ErrPageNotFound = errors.New("page not found")
)
