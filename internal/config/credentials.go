package config

import "fmt"

// CredentialKey is the fixed name the API key is stored under
const CredentialKey = "APIKey"

// CredentialStore persists a single API key in a KeyValueStore.
// The value is opaque and never validated.
type CredentialStore struct {
	kv   KeyValueStore
	name string
}

// NewCredentialStore returns a store keeping the API key in kv
func NewCredentialStore(kv KeyValueStore) *CredentialStore {
	return &CredentialStore{kv: kv, name: CredentialKey}
}

// OpenCredentialStore returns the store selected by cfg.CredentialBackend
func OpenCredentialStore(cfg Config) (*CredentialStore, error) {
	switch cfg.CredentialBackend {
	case "", BackendPrefs:
		prefs, err := DefaultPreferences()
		if err != nil {
			return nil, err
		}
		return NewCredentialStore(prefs), nil
	case BackendKeyring:
		return NewCredentialStore(NewKeyringStore()), nil
	default:
		return nil, fmt.Errorf("unknown credential backend %q (use %q or %q)",
			cfg.CredentialBackend, BackendPrefs, BackendKeyring)
	}
}

// Save stores value, replacing any previous key
func (s *CredentialStore) Save(value string) error {
	return s.kv.Set(s.name, value)
}

// Load returns the stored key, or "" if none is stored
func (s *CredentialStore) Load() (string, error) {
	v, ok, err := s.kv.Get(s.name)
	if err != nil || !ok {
		return "", err
	}
	return v, nil
}

// Delete removes the stored key
func (s *CredentialStore) Delete() error {
	return s.kv.Delete(s.name)
}

// MaskSecret hides all but the last four characters of a key
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	runes := []rune(secret)
	if len(runes) <= 4 {
		return "****"
	}
	return "****" + string(runes[len(runes)-4:])
}
