// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Voronov

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.KeyPath == "" || cfg.App.StorageDir == "" || cfg.App.RegistryFile == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Remote.Address == "" || cfg.Remote.RequestTimeout <= 0 ||
		cfg.Remote.NotesFolder == "" || cfg.Remote.PasswordFolder == "" {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Retry.MaxAttempts <= 0 || cfg.Retry.BaseSlot <= 0 {
		return ErrInvalidRetryConfigs
	}

	return nil
}
