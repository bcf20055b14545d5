package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Config selects the task store and how to reach it.
type Config struct {
	Backend string       `toml:"backend"`
	Local   LocalConfig  `toml:"local"`
	Remote  RemoteConfig `toml:"remote"`
}

type LocalConfig struct {
	Database string `toml:"database"`
}

type RemoteConfig struct {
	Endpoint string `toml:"endpoint"`
}

// Default returns the local-store configuration used when no config
// file exists.
func Default() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		Backend: BackendLocal,
		Local: LocalConfig{
			Database: filepath.Join(homeDir, ".config", "todoq", "tasks.db"),
		},
	}
}

// Load reads the config file from the standard location and applies
// env overrides. A missing file yields the defaults.
func Load() (Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("getting home dir: %w", err)
	}
	return LoadFrom(filepath.Join(homeDir, ".config", "todoq", "config.toml"))
}

func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return Config{}, fmt.Errorf("reading config file: %w", readErr)
		}
		if _, decErr := toml.Decode(string(data), &cfg); decErr != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", decErr)
		}
	}
	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv overlays TODOQ_* variables onto a base config.
func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TODOQ_BACKEND")); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("TODOQ_DATABASE")); v != "" {
		cfg.Local.Database = v
	}
	if v := strings.TrimSpace(os.Getenv("TODOQ_ENDPOINT")); v != "" {
		cfg.Remote.Endpoint = v
	}
	return cfg
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendLocal:
		if strings.TrimSpace(c.Local.Database) == "" {
			return fmt.Errorf("config: local backend requires a database path")
		}
	case BackendRemote:
		if strings.TrimSpace(c.Remote.Endpoint) == "" {
			return fmt.Errorf("config: remote backend requires an endpoint")
		}
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	return nil
}
