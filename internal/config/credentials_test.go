package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestPreferences_SetGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	prefs := NewPreferences(path)

	if _, ok, err := prefs.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
	}

	if err := prefs.Set("a", "1"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := prefs.Set("b", "2"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	v, ok, err := prefs.Get("a")
	if err != nil || !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v, %v", v, ok, err)
	}

	if err := prefs.Delete("a"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := prefs.Get("a"); ok {
		t.Error("a should be gone")
	}
	if v, _, _ := prefs.Get("b"); v != "2" {
		t.Errorf("b = %q, deleting a must not touch b", v)
	}

	if err := prefs.Delete("never-set"); err != nil {
		t.Errorf("Delete of absent key returned %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("prefs file missing: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("prefs mode = %o, want 600", info.Mode().Perm())
	}
}

func TestPreferences_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	if err := NewPreferences(path).Set(CredentialKey, "sk-persist"); err != nil {
		t.Fatal(err)
	}

	v, ok, err := NewPreferences(path).Get(CredentialKey)
	if err != nil || !ok || v != "sk-persist" {
		t.Errorf("Get() = %q, %v, %v", v, ok, err)
	}
}

func TestPreferences_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{oops"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := NewPreferences(path).Get("x"); err == nil {
		t.Error("expected parse error")
	}
}

func TestPreferences_CorruptFileRecovers(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CredentialStore) error
		wantValue string
	}{
		{
			name:      "save replaces corrupt file",
			mutate:    func(s *CredentialStore) error { return s.Save("sk-fresh") },
			wantValue: "sk-fresh",
		},
		{
			name:      "delete resets corrupt file",
			mutate:    func(s *CredentialStore) error { return s.Delete() },
			wantValue: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "prefs.json")
			if err := os.WriteFile(path, []byte("{oops"), 0o600); err != nil {
				t.Fatal(err)
			}

			store := NewCredentialStore(NewPreferences(path))
			if err := tt.mutate(store); err != nil {
				t.Fatalf("mutation on corrupt file: %v", err)
			}

			v, err := store.Load()
			if err != nil {
				t.Fatalf("Load() after recovery: %v", err)
			}
			if v != tt.wantValue {
				t.Errorf("Load() = %q, want %q", v, tt.wantValue)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Mode().Perm() != 0o600 {
				t.Errorf("prefs mode = %o, want 600", info.Mode().Perm())
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 1 {
				t.Errorf("dir has %d entries, want only prefs.json", len(entries))
			}
		})
	}
}

func testCredentialRoundTrip(t *testing.T, store *CredentialStore) {
	t.Helper()

	if v, err := store.Load(); err != nil || v != "" {
		t.Fatalf("Load() on empty store = %q, %v", v, err)
	}

	if err := store.Save("sk-test"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if v, err := store.Load(); err != nil || v != "sk-test" {
		t.Errorf("Load() after Save = %q, %v", v, err)
	}

	if err := store.Save("sk-other"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if v, _ := store.Load(); v != "sk-other" {
		t.Errorf("Load() after overwrite = %q", v)
	}

	if err := store.Delete(); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if v, err := store.Load(); err != nil || v != "" {
		t.Errorf("Load() after Delete = %q, %v", v, err)
	}

	if err := store.Delete(); err != nil {
		t.Errorf("second Delete() error: %v", err)
	}
}

func TestCredentialStore_Prefs(t *testing.T) {
	store := NewCredentialStore(NewPreferences(filepath.Join(t.TempDir(), "prefs.json")))
	if store.name != CredentialKey {
		t.Errorf("name = %s, want %s", store.name, CredentialKey)
	}
	testCredentialRoundTrip(t, store)
}

func TestCredentialStore_Keyring(t *testing.T) {
	keyring.MockInit()
	testCredentialRoundTrip(t, NewCredentialStore(NewKeyringStore()))
}

func TestOpenCredentialStore(t *testing.T) {
	home := setTempHome(t)
	keyring.MockInit()

	prefsStore, err := OpenCredentialStore(DefaultConfig())
	if err != nil {
		t.Fatalf("OpenCredentialStore(prefs) error: %v", err)
	}
	if err := prefsStore.Save("sk-file"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(home, ".promptpanel", "prefs.json")); err != nil {
		t.Errorf("prefs backend should write prefs.json: %v", err)
	}

	cfg := DefaultConfig()
	cfg.CredentialBackend = BackendKeyring
	krStore, err := OpenCredentialStore(cfg)
	if err != nil {
		t.Fatalf("OpenCredentialStore(keyring) error: %v", err)
	}
	if v, _ := krStore.Load(); v != "" {
		t.Errorf("keyring backend must not see prefs value, got %q", v)
	}

	cfg.CredentialBackend = "vault"
	if _, err := OpenCredentialStore(cfg); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestMaskSecret(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"abc":             "****",
		"sk-test":         "****test",
		"sk-abcdefgh1234": "****1234",
	}
	for in, want := range tests {
		if got := MaskSecret(in); got != want {
			t.Errorf("MaskSecret(%q) = %q, want %q", in, got, want)
		}
	}
}
