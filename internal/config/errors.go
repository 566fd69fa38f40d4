package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid local file layout settings
	// (for example, an empty key path or storage directory).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidRemoteConfigs indicates invalid remote object-store
	// settings (for example, missing address or zero request timeout).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidRetryConfigs indicates an invalid retry policy
	// (for example, a non-positive attempt cap or slot duration).
	ErrInvalidRetryConfigs = errors.New("invalid retry configuration")
)
