package remote

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get and Delete when the named object does not
// exist in the remote store. Callers should match it with [errors.Is].
var ErrNotFound = errors.New("remote object not found")

// Kind classifies a remote failure for retry policy purposes.
type Kind int

const (
	// KindTransient marks overload/unavailability failures that are worth
	// retrying with backoff.
	KindTransient Kind = iota + 1

	// KindFatal marks quota, permission and validation failures that no
	// amount of retrying will fix.
	KindFatal
)

// Error is a classified remote failure. Failures the adapter cannot
// classify are returned as plain wrapped errors instead, and the retrier
// propagates them after a single attempt.
type Error struct {
	// Kind decides the retry policy for this failure.
	Kind Kind

	// Status is the HTTP status code that produced the failure, or 0 when
	// the failure did not come from an HTTP response.
	Status int

	// Reason is the machine-readable reason extracted from the remote
	// error payload, empty when none was present.
	Reason string
}

func (e *Error) Error() string {
	kind := "transient"
	if e.Kind == KindFatal {
		kind = "fatal"
	}
	if e.Reason != "" {
		return fmt.Sprintf("remote %s error: %s (http %d)", kind, e.Reason, e.Status)
	}
	return fmt.Sprintf("remote %s error: http %d", kind, e.Status)
}

// Transient reports whether err is a classified transient remote failure.
func Transient(err error) bool {
	var rerr *Error
	return errors.As(err, &rerr) && rerr.Kind == KindTransient
}

// Fatal reports whether err is a classified fatal remote failure.
func Fatal(err error) bool {
	var rerr *Error
	return errors.As(err, &rerr) && rerr.Kind == KindFatal
}
