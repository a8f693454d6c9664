package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringService is the service name entries are filed under in the OS keychain
const KeyringService = "promptpanel"

// KeyringStore is a KeyValueStore backed by the OS keychain
type KeyringStore struct {
	Service string
}

var _ KeyValueStore = KeyringStore{}

// NewKeyringStore returns a keychain store using KeyringService
func NewKeyringStore() KeyringStore {
	return KeyringStore{Service: KeyringService}
}

// Get returns the secret stored under key
func (k KeyringStore) Get(key string) (string, bool, error) {
	v, err := keyring.Get(k.Service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read keychain: %w", err)
	}
	return v, true, nil
}

// Set stores value under key
func (k KeyringStore) Set(key, value string) error {
	if err := keyring.Set(k.Service, key, value); err != nil {
		return fmt.Errorf("failed to write keychain: %w", err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (k KeyringStore) Delete(key string) error {
	if err := keyring.Delete(k.Service, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete from keychain: %w", err)
	}
	return nil
}
