package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonConfig mirrors [StructuredConfig] with JSON-friendly duration fields.
type jsonConfig struct {
	App struct {
		KeyPath      string `json:"key_path"`
		StorageDir   string `json:"storage_dir"`
		RegistryFile string `json:"registry_file"`
	} `json:"app"`
	Remote struct {
		Address        string   `json:"address"`
		RequestTimeout Duration `json:"request_timeout"`
		NotesFolder    string   `json:"notes_folder"`
		PasswordFolder string   `json:"password_folder"`
	} `json:"remote"`
	Retry struct {
		MaxAttempts int      `json:"max_attempts"`
		BaseSlot    Duration `json:"base_slot"`
	} `json:"retry"`
}

// Duration is a time.Duration that unmarshals from JSON strings like
// "30s" or "100ms" as well as from bare nanosecond numbers.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler for [Duration].
func (d *Duration) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		parsed, perr := time.ParseDuration(asString)
		if perr != nil {
			return fmt.Errorf("parse duration %q: %w", asString, perr)
		}
		*d = Duration(parsed)
		return nil
	}

	var asNumber int64
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return fmt.Errorf("duration must be a string or a number: %w", err)
	}
	*d = Duration(asNumber)
	return nil
}

// parseJSON reads the JSON config file at path and converts it into a
// [StructuredConfig] suitable for merging.
func parseJSON(path string) (*StructuredConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json config %s: %w", path, err)
	}

	var jc jsonConfig
	if err = json.Unmarshal(raw, &jc); err != nil {
		return nil, fmt.Errorf("parse json config %s: %w", path, err)
	}

	return &StructuredConfig{
		App: App{
			KeyPath:      jc.App.KeyPath,
			StorageDir:   jc.App.StorageDir,
			RegistryFile: jc.App.RegistryFile,
		},
		Remote: Remote{
			Address:        jc.Remote.Address,
			RequestTimeout: time.Duration(jc.Remote.RequestTimeout),
			NotesFolder:    jc.Remote.NotesFolder,
			PasswordFolder: jc.Remote.PasswordFolder,
		},
		Retry: Retry{
			MaxAttempts: jc.Retry.MaxAttempts,
			BaseSlot:    time.Duration(jc.Retry.BaseSlot),
		},
	}, nil
}
