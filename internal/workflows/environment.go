package workflows

import (
	"fmt"

	"github.com/oidcrypt/oidcrypt/internal/audit"
	"github.com/oidcrypt/oidcrypt/internal/configs"
	"github.com/oidcrypt/oidcrypt/internal/envelope"
	"github.com/oidcrypt/oidcrypt/internal/store"
)

// environment is the loaded configuration and the store it selects.
type environment struct {
	config *configs.Config
	store  store.Store
}

// openStore builds the store selected by cfg. Tests replace it.
var openStore = func(cfg *configs.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case configs.BackendKeyring:
		return store.NewKeyringStore(cfg.Storage.KeyringService)
	default:
		return store.NewFileStore(cfg.Storage.Dir)
	}
}

// loadEnvironment loads the config, points the audit trail at the configured
// file and opens the store.
func loadEnvironment() (*environment, error) {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cfg.AuditEnabled() {
		audit.Configure(cfg.Audit.Path)
	} else {
		audit.Configure("")
	}

	s, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Storage.Backend, err)
	}
	return &environment{config: cfg, store: s}, nil
}

// open reads the envelope stored under name and decrypts it. The caller owns
// the plaintext.
func (e *environment) open(name string, password []byte) (*envelope.Envelope, []byte, error) {
	text, err := e.store.Read(name)
	if err != nil {
		return nil, nil, err
	}
	parsed, err := envelope.Parse(text)
	if err != nil {
		return nil, nil, err
	}
	plaintext, err := parsed.Decrypt(password)
	if err != nil {
		return nil, nil, err
	}
	return parsed, plaintext, nil
}

// backupLocation describes where Store.Backup put the copy of name.
func (e *environment) backupLocation(name string) string {
	if fs, ok := e.store.(*store.FileStore); ok {
		return fs.BackupPath(name)
	}
	return e.config.Storage.KeyringService + ":" + name + store.BackupSuffix
}
