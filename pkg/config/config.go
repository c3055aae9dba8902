// Package config provides configuration management for the ledger.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendRemote = "remote"
	BackendMemory = "memory"
)

// Config represents the application configuration.
type Config struct {
	Store  StoreConfig
	Export ExportConfig
	Server ServerConfig
	Debug  bool
}

// StoreConfig represents record store configuration.
type StoreConfig struct {
	Backend    string
	DataDir    string
	DBPath     string
	BoltPath   string
	APIURL     string
	APITimeout time.Duration
}

// ExportConfig represents CSV export and vocabulary configuration.
type ExportConfig struct {
	Dir            string
	CategoriesFile string
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	// Load .env file
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	timeout, err := parseInt64Env("KAIKEI_API_TIMEOUT", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid KAIKEI_API_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid KAIKEI_API_TIMEOUT: must be positive, got %d", timeout)
	}

	backend := strings.ToLower(getEnvOrDefault("KAIKEI_BACKEND", BackendSQLite))
	if !ValidBackend(backend) {
		return nil, fmt.Errorf("invalid KAIKEI_BACKEND: %s (expected sqlite, bolt, remote or memory)", backend)
	}

	config := &Config{
		Store: StoreConfig{
			Backend:    backend,
			DataDir:    getEnvOrDefault("KAIKEI_DATA_DIR", "./data"),
			DBPath:     os.Getenv("KAIKEI_DB_PATH"),
			BoltPath:   os.Getenv("KAIKEI_BOLT_PATH"),
			APIURL:     getEnvOrDefault("KAIKEI_API_URL", "http://localhost:8080"),
			APITimeout: time.Duration(timeout) * time.Second,
		},
		Export: ExportConfig{
			Dir:            os.Getenv("KAIKEI_EXPORT_DIR"),
			CategoriesFile: os.Getenv("KAIKEI_CATEGORIES_FILE"),
		},
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8080"),
			AllowedOrigins: splitList(getEnvOrDefault("KAIKEI_ALLOWED_ORIGINS", "*")),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// ValidBackend reports whether name is a known store backend.
func ValidBackend(name string) bool {
	switch name {
	case BackendSQLite, BackendBolt, BackendRemote, BackendMemory:
		return true
	}
	return false
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) == 0 {
			continue
		}

		var value string
		switch path[0] {
		case "store":
			if len(path) < 2 {
				continue
			}
			switch path[1] {
			case "backend":
				value = c.Store.Backend
			case "dataDir":
				value = c.Store.DataDir
			case "dbPath":
				value = c.Store.DBPath
			case "boltPath":
				value = c.Store.BoltPath
			case "apiUrl":
				value = c.Store.APIURL
			}
		case "export":
			if len(path) < 2 {
				continue
			}
			switch path[1] {
			case "dir":
				value = c.Export.Dir
			case "categoriesFile":
				value = c.Export.CategoriesFile
			}
		case "server":
			if len(path) < 2 {
				continue
			}
			switch path[1] {
			case "port":
				value = c.Server.Port
			}
		}

		if value == "" {
			missing = append(missing, strings.Join(path, "."))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseInt64Env parses an int64 from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseInt64Env(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}

	return parsed, nil
}

// splitList splits a comma-separated list, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
