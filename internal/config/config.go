// Package config loads application configuration from a YAML file with
// sensible defaults, so the app runs with no config at all.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/Mech-Kal/nasasky/internal/history"
	"github.com/Mech-Kal/nasasky/internal/nasa"
)

const (
	// APIKeyEnv overrides the configured credential when set.
	APIKeyEnv = "NASA_API_KEY"

	DefaultTimeout = 30 * time.Second
)

// Duration wraps time.Duration for YAML unmarshaling from strings like "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

type Config struct {
	API     APIConfig     `yaml:"api"`
	History HistoryConfig `yaml:"history"`
	Storage StorageConfig `yaml:"storage"`
}

type APIConfig struct {
	Key     string   `yaml:"key"`
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

type HistoryConfig struct {
	Limit int `yaml:"limit"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

// APIKey resolves the credential: environment variable, then config file,
// then NASA's demo key.
func (c *Config) APIKey() string {
	if key := os.Getenv(APIKeyEnv); key != "" {
		return key
	}
	if c.API.Key != "" {
		return c.API.Key
	}
	return nasa.DefaultAPIKey
}

// DefaultPath is the config file location when none is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "nasasky", "config.yaml")
}

// DefaultStoragePath is the database location when none is configured.
func DefaultStoragePath() string {
	return filepath.Join(xdg.DataHome, "nasasky", "nasasky.db")
}

// Load reads the config at path, or the default location when path is
// empty. A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = nasa.DefaultBaseURL
	}
	if cfg.API.Timeout.Duration == 0 {
		cfg.API.Timeout.Duration = DefaultTimeout
	}
	if cfg.History.Limit == 0 {
		cfg.History.Limit = history.DefaultLimit
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath()
	}
}

func validate(cfg *Config) error {
	if cfg.History.Limit < 1 {
		return fmt.Errorf("history.limit must be at least 1, got %d", cfg.History.Limit)
	}
	if cfg.API.Timeout.Duration <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", cfg.API.Timeout.Duration)
	}
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url scheme must be http or https, got %q", u.Scheme)
	}
	return nil
}
