package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Backend names accepted in [store] backend.
const (
	BackendBolt     = "bolt"
	BackendLevelDB  = "leveldb"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
	BackendDisabled = "disabled"
)

const defaultConfigPath = "~/.localstore/config.toml"

type Config struct {
	Store   StoreConfig   `toml:"store"`
	Logging LoggingConfig `toml:"logging"`
}

type StoreConfig struct {
	Backend    string `toml:"backend" env:"LOCALSTORE_BACKEND"`
	DataDir    string `toml:"data_dir" env:"LOCALSTORE_DATA_DIR"`
	Origin     string `toml:"origin" env:"LOCALSTORE_ORIGIN"`
	QuotaBytes int    `toml:"quota_bytes" env:"LOCALSTORE_QUOTA_BYTES"`
	SyncWrites bool   `toml:"sync_writes" env:"LOCALSTORE_SYNC_WRITES"`
}

type LoggingConfig struct {
	Level  string `toml:"level" env:"LOCALSTORE_LOG_LEVEL"`
	Format string `toml:"format" env:"LOCALSTORE_LOG_FORMAT"`
}

// Defaults returns a Config with sane defaults.
func Defaults() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendBolt,
			DataDir: "~/.localstore",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads a TOML config file, then applies LOCALSTORE_* environment
// overrides. If path is empty, the default location is tried and a missing
// file falls back to defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = expandHome(defaultConfigPath)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = ""
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing env: %w", err)
	}

	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	switch {
	case c.Store.Persistent():
		if strings.TrimSpace(c.Store.DataDir) == "" {
			errs = append(errs, fmt.Errorf("store.data_dir is required for backend %q", c.Store.Backend))
		}
	case c.Store.Backend == BackendMemory, c.Store.Backend == BackendDisabled:
	default:
		errs = append(errs, fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend))
	}

	if c.Store.QuotaBytes < 0 {
		errs = append(errs, fmt.Errorf("store.quota_bytes: must not be negative, got %d", c.Store.QuotaBytes))
	}

	if err := validateLogLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if err := validateLogFormat(c.Logging.Format); err != nil {
		errs = append(errs, fmt.Errorf("logging.format: %w", err))
	}

	return errors.Join(errs...)
}

func validateLogLevel(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("unknown level %q", level)
}

func validateLogFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text", "json":
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

// Persistent reports whether the configured backend keeps data on disk.
func (s StoreConfig) Persistent() bool {
	switch s.Backend {
	case BackendBolt, BackendLevelDB, BackendSQLite:
		return true
	}
	return false
}

// ExpandHome resolves a leading ~/ to the user's home directory.
func ExpandHome(path string) string {
	return expandHome(path)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
