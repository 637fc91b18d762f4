package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config carries everything the process needs, resolved once at
// startup. Components receive the relevant paths at construction; no
// package reads the environment on its own.
type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// Report output directories, one per artifact type
	GraphsDir  string
	ReportsDir string

	// Intent extraction
	GeminiModel string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/despesas.db"),
		GraphsDir:    getEnv("GRAPHS_DIR", "./graphs"),
		ReportsDir:   getEnv("REPORTS_DIR", "./excel_reports"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	}
	if c.GraphsDir == "" {
		errors = append(errors, "graphs directory cannot be empty")
	}
	if c.ReportsDir == "" {
		errors = append(errors, "reports directory cannot be empty")
	}
	if c.GeminiModel == "" {
		errors = append(errors, "Gemini model name cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// EnsureDirs creates the artifact output directories. Called once at
// process start; the generators assume the directories exist.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.GraphsDir, c.ReportsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
