package workflows

import (
	"context"
	"fmt"

	"github.com/oidcrypt/oidcrypt/internal/audit"
	"github.com/oidcrypt/oidcrypt/internal/crypt"
	"github.com/oidcrypt/oidcrypt/internal/envelope"
	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
	"github.com/oidcrypt/oidcrypt/internal/store"
	"github.com/oidcrypt/oidcrypt/internal/version"
)

// MigrateOptions configures the migrate workflow.
type MigrateOptions struct {
	Name     string
	Password []byte

	// DryRun checks that the account can be migrated without writing anything.
	DryRun bool
}

// MigrateResult contains the outcome of a migrate operation.
type MigrateResult struct {
	Name string

	// FromFormat and FromVersion describe the envelope before migration.
	FromFormat  envelope.Format
	FromVersion string

	// Migrated is false when the account already used the current format
	// or when DryRun was set.
	Migrated bool

	// BackupLocation is where the previous envelope was copied.
	BackupLocation string

	DryRun bool
}

// MigrateAccount re-encrypts a legacy account in the current format.
//
// The password is verified by decrypting the old envelope before anything is
// written. The old envelope is copied to the account's backup slot first, so
// a failed write leaves a recoverable copy.
//
// Returns ErrAccountNotFound if nothing is stored under Name.
// Returns ErrDecryptFailed for a wrong password.
func MigrateAccount(ctx context.Context, opts MigrateOptions) (*MigrateResult, error) {
	if err := store.ValidateName(opts.Name); err != nil {
		return nil, err
	}
	if len(opts.Password) == 0 {
		return nil, fmt.Errorf("%w: password", kerrors.ErrNilArgument)
	}

	env, err := loadEnvironment()
	if err != nil {
		return nil, err
	}

	text, err := env.store.Read(opts.Name)
	if err != nil {
		return nil, err
	}
	parsed, err := envelope.Parse(text)
	if err != nil {
		return nil, err
	}

	result := &MigrateResult{
		Name:       opts.Name,
		FromFormat: parsed.Format,
		DryRun:     opts.DryRun,
	}
	if parsed.Version != nil {
		result.FromVersion = parsed.Version.String()
	}

	plaintext, err := parsed.Decrypt(opts.Password)
	if err != nil {
		return nil, err
	}
	defer crypt.Wipe(plaintext)

	if parsed.Format == envelope.FormatCurrent || opts.DryRun {
		return result, nil
	}

	updated, err := envelope.Encode(plaintext, opts.Password)
	if err != nil {
		return nil, err
	}
	if err := env.store.Backup(opts.Name); err != nil {
		return nil, fmt.Errorf("backing up %s: %w", opts.Name, err)
	}
	result.BackupLocation = env.backupLocation(opts.Name)

	if err := env.store.Write(opts.Name, updated+"\n", true); err != nil {
		return nil, err
	}
	result.Migrated = true

	entry := audit.NewEntry(audit.OpMigrate)
	entry.Account = opts.Name
	entry.Backend = env.config.Storage.Backend
	entry.FromFormat = parsed.Format.String()
	entry.Format = envelope.FormatCurrent.String()
	entry.Version = version.Current
	entry.BackupPath = result.BackupLocation
	audit.Log(entry)

	return result, nil
}
