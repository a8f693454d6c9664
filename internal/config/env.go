package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override config.json
const (
	EnvModel             = "PROMPTPANEL_MODEL"
	EnvEndpoint          = "PROMPTPANEL_ENDPOINT"
	EnvTimeout           = "PROMPTPANEL_TIMEOUT"
	EnvVerbose           = "PROMPTPANEL_VERBOSE"
	EnvCredentialBackend = "PROMPTPANEL_CREDENTIAL_BACKEND"
	// EnvAPIKey is only consulted by one-shot queries when the store is empty.
	EnvAPIKey = "OPENAI_API_KEY"
)

// loadDotEnv reads .env from the working directory and the config dir.
// Variables already set in the process environment win.
func loadDotEnv() {
	files := []string{".env"}
	if dir, err := GetConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, ".env"))
	}

	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

func applyEnv(cfg *Config) {
	loadDotEnv()

	if v := os.Getenv(EnvModel); v != "" {
		cfg.DefaultModel = v
	}
	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Verbose = b
		}
	}
	if v := os.Getenv(EnvCredentialBackend); v != "" {
		cfg.CredentialBackend = strings.ToLower(v)
	}
}

// EnvAPIKeyValue returns OPENAI_API_KEY after .env files are loaded
func EnvAPIKeyValue() string {
	loadDotEnv()
	return strings.TrimSpace(os.Getenv(EnvAPIKey))
}
