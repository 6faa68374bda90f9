package store

import (
	"fmt"
	"regexp"
	"strings"

	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
)

// BackupSuffix is appended to an account name to address its backup slot.
const BackupSuffix = ".bak"

// Store persists envelope text by account name.
type Store interface {
	// Read returns the envelope stored for name.
	Read(name string) (string, error)
	// Write stores data under name. Without force an existing account is
	// left untouched and ErrAccountExists is returned.
	Write(name, data string, force bool) error
	// Remove deletes the account and its backup.
	Remove(name string) error
	// List returns the stored account names in sorted order.
	List() ([]string, error)
	// Backup copies the current envelope of name into its backup slot,
	// replacing any previous backup.
	Backup(name string) error
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateName checks that name can be used as a storage key on every backend.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) || strings.HasSuffix(name, BackupSuffix) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidAccountName, name)
	}
	return nil
}

func isBackupKey(key string) bool {
	return strings.HasSuffix(key, BackupSuffix)
}
