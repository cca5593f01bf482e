// Package config reads process configuration from the environment.
package config

import "os"

// Default namespace prefix for collection keys in the store. Matches the
// layout written by earlier releases, so existing data files keep working.
const DefaultNamespace = "mochinios_"

// Config holds process-wide settings.
type Config struct {
	// DBPath is the sqlite file backing the store.
	DBPath string

	// Namespace prefixes every collection key.
	Namespace string

	// LogLevel: debug, info, warn, error.
	LogLevel string

	// Development enables pretty log output.
	Development bool
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		DBPath:      getEnv("MOCHINI_DB_PATH", "mochini.db"),
		Namespace:   getEnv("MOCHINI_NAMESPACE", DefaultNamespace),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
