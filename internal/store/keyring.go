package store

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/99designs/keyring"
	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
)

// DefaultKeyringService is the keyring service name used when none is configured.
const DefaultKeyringService = "oidcrypt"

// KeyringStore keeps accounts as items in the OS keyring.
type KeyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore opens the OS keyring under service.
func NewKeyringStore(service string) (*KeyringStore, error) {
	if service == "" {
		service = DefaultKeyringService
	}
	return OpenKeyringStore(keyring.Config{ServiceName: service})
}

// OpenKeyringStore opens a keyring with an explicit configuration.
func OpenKeyringStore(cfg keyring.Config) (*KeyringStore, error) {
	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return &KeyringStore{ring: ring}, nil
}

func (s *KeyringStore) Read(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return s.get(name)
}

func (s *KeyringStore) get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("%w: %s", kerrors.ErrAccountNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s from keyring: %w", key, err)
	}
	return string(item.Data), nil
}

func (s *KeyringStore) Write(name, data string, force bool) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if !force {
		if _, err := s.ring.Get(name); err == nil {
			return fmt.Errorf("%w: %s", kerrors.ErrAccountExists, name)
		} else if !errors.Is(err, keyring.ErrKeyNotFound) {
			return fmt.Errorf("failed to check keyring for %s: %w", name, err)
		}
	}
	return s.set(name, data)
}

func (s *KeyringStore) set(key, data string) error {
	err := s.ring.Set(keyring.Item{
		Key:         key,
		Data:        []byte(data),
		Label:       "oidcrypt account " + key,
		Description: "encrypted account configuration",
	})
	if err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", key, err)
	}
	return nil
}

func (s *KeyringStore) Remove(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	err := s.ring.Remove(name)
	if isNotFound(err) {
		return fmt.Errorf("%w: %s", kerrors.ErrAccountNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to remove %s from keyring: %w", name, err)
	}
	if err := s.ring.Remove(name + BackupSuffix); err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to remove backup of %s from keyring: %w", name, err)
	}
	return nil
}

func (s *KeyringStore) List() ([]string, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys from keyring: %w", err)
	}
	names := []string{}
	for _, k := range keys {
		if isBackupKey(k) || ValidateName(k) != nil {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}

func (s *KeyringStore) Backup(name string) error {
	data, err := s.Read(name)
	if err != nil {
		return err
	}
	return s.set(name+BackupSuffix, data)
}

// The file backend reports a missing item on Remove as a plain fs error.
func isNotFound(err error) bool {
	return errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, fs.ErrNotExist)
}
