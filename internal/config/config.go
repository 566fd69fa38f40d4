// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Voronov

// Package config assembles the notevault configuration from environment
// variables, command-line flags and an optional JSON file. Sources are
// merged in that order of precedence and the result is validated before
// the application starts.
package config

import "time"

// StructuredConfig is the top-level configuration container for
// notevault. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds local file layout settings: key file, storage directory
	// and registry file name.
	App App `envPrefix:"APP_"`

	// Remote holds the object-store endpoint and folder layout used for
	// mirroring pages and the registry.
	Remote Remote `envPrefix:"REMOTE_"`

	// Retry holds the upload retry policy.
	Retry Retry `envPrefix:"RETRY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged under the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG" json:"-"`
}

// App holds the local file layout of the vault.
type App struct {
	// KeyPath is the location of the raw symmetric key file.
	// Env: APP_KEY_PATH
	KeyPath string `env:"KEY_PATH" json:"key_path"`

	// StorageDir is the directory holding encrypted page files and the
	// registry blob.
	// Env: APP_STORAGE_DIR
	StorageDir string `env:"STORAGE_DIR" json:"storage_dir"`

	// RegistryFile is the name of the encrypted password registry file
	// inside StorageDir.
	// Env: APP_REGISTRY_FILE
	RegistryFile string `env:"REGISTRY_FILE" json:"registry_file"`
}

// Remote holds settings for the remote object-store collaborator.
type Remote struct {
	// Address is the base URL of the remote file API
	// (e.g. "https://files.example.com").
	// Env: REMOTE_ADDRESS
	Address string `env:"ADDRESS" json:"address"`

	// RequestTimeout is the per-request timeout for remote calls
	// (e.g. "30s").
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" json:"request_timeout"`

	// NotesFolder is the remote folder pages are mirrored into.
	// Env: REMOTE_NOTES_FOLDER
	NotesFolder string `env:"NOTES_FOLDER" json:"notes_folder"`

	// PasswordFolder is the remote folder holding the registry blob.
	// Env: REMOTE_PASSWORD_FOLDER
	PasswordFolder string `env:"PASSWORD_FOLDER" json:"password_folder"`
}

// Retry holds the upload retry policy applied to remote operations.
type Retry struct {
	// MaxAttempts caps the number of tries for a single remote operation.
	// Env: RETRY_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS" json:"max_attempts"`

	// BaseSlot is the backoff slot duration: before retry n the wait is a
	// random number of slots in [0, 2^n - 1].
	// Env: RETRY_BASE_SLOT
	BaseSlot time.Duration `env:"BASE_SLOT" json:"base_slot"`
}

// GetConfig builds the merged, validated configuration from all sources.
// Precedence from highest to lowest: environment, flags, JSON file,
// built-in defaults.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
