package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DriverLibSQL = "libsql"
	DriverSQLite = "sqlite"
)

type Config struct {
	DB    DBConfig    `toml:"database"`
	State StateConfig `toml:"state"`
	Rest  RestConfig  `toml:"rest"`
}

type DBConfig struct {
	Driver           string `toml:"driver"`            // "libsql" or "sqlite".
	ConnectionString string `toml:"connection_string"` // The entire DB connection string.
}

// StateConfig locates the device-local store holding the active session.
type StateConfig struct {
	Backend string `toml:"backend"` // "file", "sqlite" or "memory".
	Dir     string `toml:"dir"`
}

type RestConfig struct {
	DurationSeconds int `toml:"duration_seconds"`
}

// Returns the directory holding config and local state.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ironlog"), nil
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Default(dir string) *Config {
	return &Config{
		DB: DBConfig{
			Driver:           DriverSQLite,
			ConnectionString: "file:" + filepath.Join(dir, "ironlog.db"),
		},
		State: StateConfig{
			Backend: "file",
			Dir:     filepath.Join(dir, "state"),
		},
		Rest: RestConfig{DurationSeconds: 150},
	}
}

// Reads the configuration from the config file. A missing file yields the defaults.
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load reads path on top of the defaults, then applies .env and environment
// overrides:
//
//	TURSO_DATABASE_URL    remote libsql database (sets driver to libsql)
//	IRONLOG_STATE_BACKEND file | sqlite | memory
//	IRONLOG_STATE_DIR     local state directory
//	DEV_MODE=true         local ./local.db database
func Load(path string) (*Config, error) {
	cfg := Default(filepath.Dir(path))

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// .env is optional.
	_ = godotenv.Load()
	applyEnvOverrides(cfg)

	cfg.State.Dir = expandHome(cfg.State.Dir)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TURSO_DATABASE_URL"); v != "" {
		cfg.DB.Driver = DriverLibSQL
		cfg.DB.ConnectionString = v
	}
	if v := os.Getenv("IRONLOG_STATE_BACKEND"); v != "" {
		cfg.State.Backend = v
	}
	if v := os.Getenv("IRONLOG_STATE_DIR"); v != "" {
		cfg.State.Dir = v
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		cfg.DB.Driver = DriverSQLite
		cfg.DB.ConnectionString = "file:./local.db?cache=shared&mode=rwc"
	}
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverLibSQL, DriverSQLite:
	default:
		return fmt.Errorf("database.driver %q is not supported", c.DB.Driver)
	}
	if c.DB.ConnectionString == "" {
		return fmt.Errorf("database.connection_string is required")
	}
	switch c.State.Backend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("state.backend %q is not supported", c.State.Backend)
	}
	if c.State.Backend != "memory" && c.State.Dir == "" {
		return fmt.Errorf("state.dir is required")
	}
	if c.Rest.DurationSeconds <= 0 {
		return fmt.Errorf("rest.duration_seconds must be positive")
	}
	return nil
}
