package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// KeyValueStore is a user-scoped persistent string namespace
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Preferences is a KeyValueStore backed by a JSON file.
// Every mutation is written to disk immediately.
type Preferences struct {
	mu   sync.Mutex
	path string
}

var _ KeyValueStore = (*Preferences)(nil)

// NewPreferences returns a store backed by the file at path
func NewPreferences(path string) *Preferences {
	return &Preferences{path: path}
}

// DefaultPreferences returns the store at ~/.promptpanel/prefs.json
func DefaultPreferences() (*Preferences, error) {
	path, err := GetPrefsPath()
	if err != nil {
		return nil, err
	}
	return NewPreferences(path), nil
}

// Get returns the value stored under key
func (p *Preferences) Get(key string) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	values, err := p.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key.
// A corrupt file is replaced rather than blocking the write.
func (p *Preferences) Set(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	values, err := p.readForUpdate()
	if err != nil {
		return err
	}
	values[key] = value
	return p.write(values)
}

// Delete removes key. Deleting an absent key is not an error.
// A corrupt file is reset to an empty namespace.
func (p *Preferences) Delete(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	values, err := p.read()
	if errors.Is(err, errCorruptPreferences) {
		return p.write(map[string]string{})
	}
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return p.write(values)
}

var errCorruptPreferences = errors.New("preferences file is corrupt")

func (p *Preferences) read() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	if len(data) == 0 {
		return values, nil
	}

	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w: %w", errCorruptPreferences, err)
	}

	return values, nil
}

// readForUpdate is read, but starts from an empty namespace when the file does not parse
func (p *Preferences) readForUpdate() (map[string]string, error) {
	values, err := p.read()
	if errors.Is(err, errCorruptPreferences) {
		return make(map[string]string), nil
	}
	return values, err
}

func (p *Preferences) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	// 0o600: the API key is stored unencrypted
	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".prefs-*.json")
	if err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}

	if err := os.Rename(tmpPath, p.path); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}

	return nil
}
