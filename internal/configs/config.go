package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
)

const (
	BackendFile    = "file"
	BackendKeyring = "keyring"

	DefaultKeyringService = "oidcrypt"
	DefaultCertPath       = "/etc/ssl/certs/ca-certificates.crt"
	DefaultRetryMax       = 2
	DefaultTimeoutSeconds = 30
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	HTTP    HTTPConfig    `toml:"http"`
	Audit   AuditConfig   `toml:"audit"`
}

type StorageConfig struct {
	Backend        string `toml:"backend"`
	Dir            string `toml:"dir"`
	KeyringService string `toml:"keyring_service"`
}

type HTTPConfig struct {
	CertPath       string `toml:"cert_path"`
	RetryMax       *int   `toml:"retry_max"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type AuditConfig struct {
	Enabled *bool  `toml:"enabled"`
	Path    string `toml:"path"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = filepath.Join(OidcryptSettings.DataDir, "accounts")
	}
	if c.Storage.KeyringService == "" {
		c.Storage.KeyringService = DefaultKeyringService
	}
	if c.HTTP.CertPath == "" {
		c.HTTP.CertPath = DefaultCertPath
	}
	if c.HTTP.RetryMax == nil {
		n := DefaultRetryMax
		c.HTTP.RetryMax = &n
	}
	if c.HTTP.TimeoutSeconds == 0 {
		c.HTTP.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Audit.Enabled == nil {
		on := true
		c.Audit.Enabled = &on
	}
	if c.Audit.Path == "" {
		c.Audit.Path = filepath.Join(OidcryptSettings.DataDir, "audit.jsonl")
	}
}

// Validate reports the first invalid value as ErrInvalidConfig.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendKeyring:
	default:
		return fmt.Errorf("%w: storage.backend must be %q or %q, got %q",
			kerrors.ErrInvalidConfig, BackendFile, BackendKeyring, c.Storage.Backend)
	}
	if c.HTTP.RetryMax != nil && *c.HTTP.RetryMax < 0 {
		return fmt.Errorf("%w: http.retry_max must not be negative", kerrors.ErrInvalidConfig)
	}
	if c.HTTP.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: http.timeout_seconds must not be negative", kerrors.ErrInvalidConfig)
	}
	return nil
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// Retries returns http.retry_max, or the default when unset.
func (c *Config) Retries() int {
	if c.HTTP.RetryMax == nil {
		return DefaultRetryMax
	}
	return *c.HTTP.RetryMax
}

// AuditEnabled reports whether audit.enabled is on. Unset means on.
func (c *Config) AuditEnabled() bool {
	return c.Audit.Enabled == nil || *c.Audit.Enabled
}

// LoadConfig loads the configuration file, filling defaults. A missing file
// yields DefaultConfig.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(OidcryptSettings.ConfigPath())
}

// LoadConfigFrom is LoadConfig for an explicit path.
func LoadConfigFrom(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}

	undecoded, err := LoadTOML(path, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidConfig, path, err)
	}
	if len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown keys in %s: %s",
			kerrors.ErrInvalidConfig, path, strings.Join(undecoded, ", "))
	}

	config.applyDefaults()
	config.Storage.Dir = expandHome(config.Storage.Dir)
	config.HTTP.CertPath = expandHome(config.HTTP.CertPath)
	config.Audit.Path = expandHome(config.Audit.Path)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes config to the configuration file.
func SaveConfig(config *Config) error {
	return SaveConfigTo(OidcryptSettings.ConfigPath(), config)
}

// SaveConfigTo is SaveConfig for an explicit path.
func SaveConfigTo(path string, config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
