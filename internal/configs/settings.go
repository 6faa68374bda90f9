package configs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Environment variables that relocate the config and data directories.
const (
	ConfigDirEnv = "OIDCRYPT_CONFIG_DIR"
	DataDirEnv   = "OIDCRYPT_DATA_DIR"
)

// Settings holds the resolved directories. Tests replace OidcryptSettings.
type Settings struct {
	ConfigDir string
	DataDir   string
}

var OidcryptSettings *Settings

func init() {
	s, err := DefaultSettings()
	if err != nil {
		log.Fatalf("error resolving oidcrypt directories: %s", err)
	}
	OidcryptSettings = s
}

// DefaultSettings resolves the directories from the environment:
// $OIDCRYPT_CONFIG_DIR or the user config dir, and $OIDCRYPT_DATA_DIR or
// $XDG_DATA_HOME/oidcrypt (~/.local/share/oidcrypt when unset).
func DefaultSettings() (*Settings, error) {
	s := &Settings{
		ConfigDir: os.Getenv(ConfigDirEnv),
		DataDir:   os.Getenv(DataDirEnv),
	}

	if s.ConfigDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("config directory: %w", err)
		}
		s.ConfigDir = filepath.Join(configDir, "oidcrypt")
	}

	if s.DataDir == "" {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("home directory: %w", err)
			}
			dataDir = filepath.Join(homeDir, ".local", "share")
		}
		s.DataDir = filepath.Join(dataDir, "oidcrypt")
	}
	return s, nil
}

// ConfigPath is the location of config.toml.
func (s *Settings) ConfigPath() string {
	return filepath.Join(s.ConfigDir, "config.toml")
}
