package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
)

// FileStore keeps one file per account in Dir.
type FileStore struct {
	Dir string
}

// NewFileStore returns a FileStore rooted at dir, creating it with mode 0700.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: store directory", kerrors.ErrNilArgument)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.Dir, name)
}

func (s *FileStore) Read(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", kerrors.ErrAccountNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read account %s: %w", name, err)
	}
	return string(data), nil
}

func (s *FileStore) Write(name, data string, force bool) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	return writeFile(s.path(name), data, flags, name)
}

func writeFile(path, data string, flags int, name string) error {
	f, err := os.OpenFile(path, flags, 0600)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", kerrors.ErrAccountExists, name)
	}
	if err != nil {
		return fmt.Errorf("failed to write account %s: %w", name, err)
	}
	if _, err := f.WriteString(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write account %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write account %s: %w", name, err)
	}
	// O_CREATE only applies the mode to new files.
	return os.Chmod(path, 0600)
}

func (s *FileStore) Remove(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	err := os.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", kerrors.ErrAccountNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to remove account %s: %w", name, err)
	}
	if err := os.Remove(s.path(name + BackupSuffix)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove backup of %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if !e.Type().IsRegular() || isBackupKey(e.Name()) || ValidateName(e.Name()) != nil {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) Backup(name string) error {
	data, err := s.Read(name)
	if err != nil {
		return err
	}
	return writeFile(s.path(name+BackupSuffix), data, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, name)
}

// BackupPath returns where the backup of name is written.
func (s *FileStore) BackupPath(name string) string {
	return s.path(name + BackupSuffix)
}
