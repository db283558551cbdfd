package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docvault-cli/internal/core/domain"
)

// SettingsStore loads and saves application settings as a TOML file.
// Values missing from the file keep their defaults, so a partial
// config overriding a single key is valid.
type SettingsStore struct {
	filePath string
}

// NewSettingsStore creates a TOML-based settings store.
// If configPath is empty, defaults to ~/.docvault/config.toml.
func NewSettingsStore(configPath string) (*SettingsStore, error) {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".docvault", "config.toml")
	}

	return &SettingsStore{filePath: configPath}, nil
}

// Load reads settings from disk, layered over the defaults. A missing
// file is not an error; the defaults are returned unchanged.
func (s *SettingsStore) Load() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("read config %s: %w", s.filePath, err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("%w: parse config %s: %w", domain.ErrInvalidInput, s.filePath, err)
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("config %s: %w", s.filePath, err)
	}

	return settings, nil
}

// Save persists settings to disk, creating the config directory if
// needed.
func (s *SettingsStore) Save(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	// Write with restricted permissions, the file may hold API keys.
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write config %s: %w", s.filePath, err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}
