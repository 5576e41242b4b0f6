// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Data   DataConfig
	Store  StoreConfig
	Seed   SeedConfig
	Server ServerConfig
	Export ExportConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds the on-disk data location.
type DataConfig struct {
	BasePath string
}

// StoreConfig selects the tag store backend.
type StoreConfig struct {
	Backend string // badger or sqlite
}

// SeedConfig controls the sample data written to an empty store.
type SeedConfig struct {
	Count int
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port                string        // Server port (default: 3333)
	ReadTimeout         time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout        time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout         time.Duration // HTTP idle timeout (default: 60s)
	AllowedOrigins      []string      // CORS origins (default: *)
	CreateRatePerMinute int           // Tag creations per client IP per minute (default: 60)
}

// ExportConfig holds the S3-compatible bucket that exports may be uploaded to.
// Uploads are disabled while Endpoint is empty.
type ExportConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether an upload target is configured.
func (e ExportConfig) Enabled() bool {
	return e.Endpoint != ""
}

// BadgerPath is where the Badger backend keeps its files.
func (c *Config) BadgerPath() string {
	return filepath.Join(c.Data.BasePath, "db")
}

// SQLitePath is the SQLite backend's database file.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.Data.BasePath, "tags.sqlite")
}

// LoadConfig loads configuration for the process from os.Args.
func LoadConfig() (*Config, error) {
	return Load(flag.NewFlagSet(os.Args[0], flag.ExitOnError), os.Args[1:])
}

// Load loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := fs.String("data-path", "", "Base path for tag data")
	storeBackend := fs.String("store-backend", "", "Tag store backend (badger, sqlite)")
	seedCount := fs.String("seed-count", "", "Sample tags written to an empty store (default: 100)")

	// Server flags
	serverPort := fs.String("port", "", "Server port (default: 3333)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	allowedOrigins := fs.String("allowed-origins", "", "Comma separated CORS origins (default: *)")
	createRate := fs.String("create-rate", "", "Tag creations per client per minute (default: 60)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(getConfigValue(*storeBackend, "STORE_BACKEND", BackendBadger)),
		},
		Seed: SeedConfig{
			Count: getIntConfigValue(*seedCount, "SEED_COUNT", 100),
		},
		Server: ServerConfig{
			Port:                getConfigValue(*serverPort, "SERVER_PORT", "3333"),
			AllowedOrigins:      splitList(getConfigValue(*allowedOrigins, "ALLOWED_ORIGINS", "*")),
			CreateRatePerMinute: getIntConfigValue(*createRate, "CREATE_RATE_PER_MINUTE", 60),
		},
		Export: ExportConfig{
			Endpoint:  getConfigValue("", "EXPORT_S3_ENDPOINT", ""),
			AccessKey: getConfigValue("", "EXPORT_S3_ACCESS_KEY", ""),
			SecretKey: getConfigValue("", "EXPORT_S3_SECRET_KEY", ""),
			Bucket:    getConfigValue("", "EXPORT_S3_BUCKET", "tagdesk-exports"),
			UseSSL:    getBoolConfigValue("", "EXPORT_S3_USE_SSL", true),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = getDurationConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, fmt.Errorf("invalid read timeout: %w", err)
	}
	if cfg.Server.WriteTimeout, err = getDurationConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, fmt.Errorf("invalid write timeout: %w", err)
	}
	if cfg.Server.IdleTimeout, err = getDurationConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, fmt.Errorf("invalid idle timeout: %w", err)
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	switch c.Store.Backend {
	case BackendBadger, BackendSQLite:
	default:
		return fmt.Errorf("invalid store backend: %s (must be badger or sqlite)", c.Store.Backend)
	}

	if c.Seed.Count < 0 {
		return fmt.Errorf("seed count must not be negative, got %d", c.Seed.Count)
	}

	if c.Server.CreateRatePerMinute < 1 {
		return fmt.Errorf("create rate must be at least 1 per minute, got %d", c.Server.CreateRatePerMinute)
	}

	if c.Export.Enabled() && c.Export.Bucket == "" {
		return errors.New("EXPORT_S3_BUCKET is required when EXPORT_S3_ENDPOINT is set")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath defaults to ~/TagDesk/data.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "TagDesk", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

func getDurationConfigValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Real environment variables take precedence over the file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
