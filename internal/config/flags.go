package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-key key file path
//	-storage local storage directory for pages and the registry
//	-registry registry file name inside the storage directory
//	-remote-address base URL of the remote file API
//	-request-timeout remote request timeout (e.g., "30s", "1m")
//	-notes-folder remote folder for page files
//	-password-folder remote folder for the registry blob
//	-retry-max-attempts upload retry attempt cap
//	-retry-base-slot backoff slot duration (e.g., "100ms")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var keyPath string
	var storageDir string
	var registryFile string
	var remoteAddress string
	var requestTimeout time.Duration
	var notesFolder string
	var passwordFolder string
	var retryMaxAttempts int
	var retryBaseSlot time.Duration
	var jsonConfigPath string

	flag.StringVar(&keyPath, "key", "", "Key file path")
	flag.StringVar(&storageDir, "storage", "", "Local storage directory")
	flag.StringVar(&registryFile, "registry", "", "Registry file name")
	flag.StringVar(&remoteAddress, "remote-address", "", "Remote file API base URL")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 30s, 1m)")
	flag.StringVar(&notesFolder, "notes-folder", "", "Remote folder for pages")
	flag.StringVar(&passwordFolder, "password-folder", "", "Remote folder for the registry")
	flag.IntVar(&retryMaxAttempts, "retry-max-attempts", 0, "Upload retry attempt cap")
	flag.DurationVar(&retryBaseSlot, "retry-base-slot", 0, "Backoff slot duration (e.g., 100ms)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			KeyPath:      keyPath,
			StorageDir:   storageDir,
			RegistryFile: registryFile,
		},
		Remote: Remote{
			Address:        remoteAddress,
			RequestTimeout: requestTimeout,
			NotesFolder:    notesFolder,
			PasswordFolder: passwordFolder,
		},
		Retry: Retry{
			MaxAttempts: retryMaxAttempts,
			BaseSlot:    retryBaseSlot,
		},
		JSONFilePath: jsonConfigPath,
	}
}
