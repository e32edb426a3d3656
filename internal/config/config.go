package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// FileName is the per-directory config file
const FileName = ".peregrinno.json"

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Environment variables that override file settings
const (
	EnvBackend     = "PEREGRINNO_BACKEND"
	EnvDataDir     = "PEREGRINNO_DATA_DIR"
	EnvSQLitePath  = "PEREGRINNO_SQLITE_PATH"
	EnvRedisAddr   = "PEREGRINNO_REDIS_ADDR"
	EnvRedisPrefix = "PEREGRINNO_REDIS_PREFIX"
	EnvLogLevel    = "PEREGRINNO_LOG_LEVEL"
	EnvLogFile     = "PEREGRINNO_LOG_FILE"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the full application configuration
type Config struct {
	Storage StorageConfig `json:"storage"`
	UI      UIConfig      `json:"ui"`
	Log     LogConfig     `json:"log"`
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Backend    string      `json:"backend"`
	Dir        string      `json:"dir"`
	SQLitePath string      `json:"sqlitePath,omitempty"`
	Redis      RedisConfig `json:"redis"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Addr   string `json:"addr"`
	Prefix string `json:"prefix"`
}

// UIConfig contains terminal UI settings
type UIConfig struct {
	ToastSeconds int  `json:"toastSeconds"`
	DisableMouse bool `json:"disableMouse"`
	ShowHelpBar  bool `json:"showHelpBar"`
}

// LogConfig contains logging settings. An empty File means
// peregrinno.log inside the data directory.
type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file,omitempty"`
}

// DefaultDataDir returns <user config dir>/peregrinno/data
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "peregrinno", "data")
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Dir:     DefaultDataDir(),
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "peregrinno:",
			},
		},
		UI: UIConfig{
			ToastSeconds: 3,
			ShowHelpBar:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ResolvedSQLitePath returns the database path, defaulting to the data directory
func (c *Config) ResolvedSQLitePath() string {
	if c.Storage.SQLitePath != "" {
		return c.Storage.SQLitePath
	}
	return filepath.Join(c.Storage.Dir, "peregrinno.db")
}

// ResolvedLogFile returns the log file path, defaulting to the data directory
func (c *Config) ResolvedLogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.Storage.Dir, "peregrinno.log")
}

// UserConfigPath returns <user config dir>/peregrinno/config.json
func UserConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "peregrinno", "config.json"), nil
}

// LoadConfig loads configuration with priority:
// 1. .peregrinno.json in dir (with version migration support)
// 2. the user config file
// 3. Defaults
// Environment overrides are applied separately by ApplyEnv.
func LoadConfig(dir string) (*Config, error) {
	local := filepath.Join(dir, FileName)
	if data, err := os.ReadFile(local); err == nil {
		cfg, err := ParseVersionedConfig(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
		}
		return MergeWithDefaults(cfg), nil
	}

	if userPath, err := userConfigPath(); err == nil {
		if data, err := os.ReadFile(userPath); err == nil {
			cfg, err := ParseVersionedConfig(data)
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", userPath, err)
			}
			return MergeWithDefaults(cfg), nil
		}
	}

	return DefaultConfig(), nil
}

// LoadFile loads configuration from an explicit path. The file must exist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := ParseVersionedConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return MergeWithDefaults(cfg), nil
}

// userConfigPath is a variable so tests can point it at a temp dir
var userConfigPath = UserConfigPath

// SaveConfig saves configuration to the specified path with version information
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	// Merge Storage config
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaults.Storage.Backend
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = defaults.Storage.Dir
	}
	if cfg.Storage.Redis.Addr == "" {
		cfg.Storage.Redis.Addr = defaults.Storage.Redis.Addr
	}
	if cfg.Storage.Redis.Prefix == "" {
		cfg.Storage.Redis.Prefix = defaults.Storage.Redis.Prefix
	}

	// Merge UI config
	if cfg.UI.ToastSeconds == 0 {
		cfg.UI.ToastSeconds = defaults.UI.ToastSeconds
	}

	// Merge Log config
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	return cfg
}

// LoadEnvFile loads KEY=value pairs from path into the process environment.
// A missing file is not an error. Variables already set are not overwritten.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with PEREGRINNO_* variables. getenv is usually os.Getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) *Config {
	if v := getenv(EnvBackend); v != "" {
		cfg.Storage.Backend = strings.ToLower(v)
	}
	if v := getenv(EnvDataDir); v != "" {
		cfg.Storage.Dir = v
	}
	if v := getenv(EnvSQLitePath); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		cfg.Storage.Redis.Addr = v
	}
	if v := getenv(EnvRedisPrefix); v != "" {
		cfg.Storage.Redis.Prefix = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := getenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	return cfg
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}

	if c.Storage.Backend != BackendMemory && c.Storage.Dir == "" {
		return fmt.Errorf("%w: storage.dir is required", ErrInvalidConfig)
	}
	if c.UI.ToastSeconds < 0 {
		return fmt.Errorf("%w: ui.toastSeconds must not be negative", ErrInvalidConfig)
	}

	return nil
}

// Load is a convenience function that loads config from the nearest
// directory holding FileName (or the current directory) and applies
// environment overrides
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	dir, err := FindConfigDir(cwd)
	if err != nil {
		dir = cwd
	}
	cfg, err := LoadConfig(dir)
	if err != nil {
		return nil, err
	}
	return ApplyEnv(cfg, os.Getenv), nil
}
