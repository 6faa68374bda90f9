package workflows

import (
	"context"
	"fmt"

	"github.com/oidcrypt/oidcrypt/internal/audit"
	"github.com/oidcrypt/oidcrypt/internal/envelope"
	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
	"github.com/oidcrypt/oidcrypt/internal/store"
	"github.com/oidcrypt/oidcrypt/internal/version"
)

// AddAccountOptions configures the add workflow.
type AddAccountOptions struct {
	// Name is the account name used as the storage key.
	Name string

	// Config is the plaintext account configuration.
	Config []byte

	// Password encrypts the envelope.
	Password []byte

	// Force overwrites an existing account.
	Force bool
}

// AddAccountResult contains the outcome of an add operation.
type AddAccountResult struct {
	Name    string
	Backend string
	Version string
}

// AddAccount encrypts an account configuration and stores the envelope.
//
// Returns ErrInvalidAccountName for names that cannot be stored.
// Returns ErrAccountExists if the account exists and Force is not set.
func AddAccount(ctx context.Context, opts AddAccountOptions) (*AddAccountResult, error) {
	if err := store.ValidateName(opts.Name); err != nil {
		return nil, err
	}
	if len(opts.Config) == 0 {
		return nil, fmt.Errorf("%w: account configuration", kerrors.ErrNilArgument)
	}
	if len(opts.Password) == 0 {
		return nil, fmt.Errorf("%w: password", kerrors.ErrNilArgument)
	}

	env, err := loadEnvironment()
	if err != nil {
		return nil, err
	}

	text, err := envelope.Encode(opts.Config, opts.Password)
	if err != nil {
		return nil, err
	}
	if err := env.store.Write(opts.Name, text+"\n", opts.Force); err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpAdd)
	entry.Account = opts.Name
	entry.Backend = env.config.Storage.Backend
	entry.Format = envelope.FormatCurrent.String()
	entry.Version = version.Current
	entry.Forced = opts.Force
	audit.Log(entry)

	return &AddAccountResult{
		Name:    opts.Name,
		Backend: env.config.Storage.Backend,
		Version: version.Current,
	}, nil
}

// PrintAccountOptions configures the print workflow.
type PrintAccountOptions struct {
	Name     string
	Password []byte
}

// PrintAccountResult contains a decrypted account.
type PrintAccountResult struct {
	Name   string
	Config []byte

	// Format is the envelope format the account was read from.
	Format envelope.Format

	// Version is the producer version on the envelope, "" when it has none.
	Version string
}

// NeedsMigration reports whether the account is still stored in the legacy format.
func (r *PrintAccountResult) NeedsMigration() bool {
	return r.Format == envelope.FormatLegacy
}

// PrintAccount reads and decrypts an account.
//
// Returns ErrAccountNotFound if nothing is stored under Name.
// Returns ErrDecryptFailed for a wrong password or corrupted envelope.
func PrintAccount(ctx context.Context, opts PrintAccountOptions) (*PrintAccountResult, error) {
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

	parsed, plaintext, err := env.open(opts.Name, opts.Password)
	if err != nil {
		return nil, err
	}

	result := &PrintAccountResult{
		Name:   opts.Name,
		Config: plaintext,
		Format: parsed.Format,
	}
	if parsed.Version != nil {
		result.Version = parsed.Version.String()
	}

	entry := audit.NewEntry(audit.OpPrint)
	entry.Account = opts.Name
	entry.Format = parsed.Format.String()
	entry.Version = result.Version
	audit.Log(entry)

	return result, nil
}

// RemoveAccountOptions configures the remove workflow.
type RemoveAccountOptions struct {
	Name string
}

// RemoveAccountResult contains the outcome of a remove operation.
type RemoveAccountResult struct {
	Name string
}

// RemoveAccount deletes an account and its backup.
//
// Returns ErrAccountNotFound if nothing is stored under Name.
func RemoveAccount(ctx context.Context, opts RemoveAccountOptions) (*RemoveAccountResult, error) {
	if err := store.ValidateName(opts.Name); err != nil {
		return nil, err
	}

	env, err := loadEnvironment()
	if err != nil {
		return nil, err
	}
	if err := env.store.Remove(opts.Name); err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpRemove)
	entry.Account = opts.Name
	entry.Backend = env.config.Storage.Backend
	audit.Log(entry)

	return &RemoveAccountResult{Name: opts.Name}, nil
}
