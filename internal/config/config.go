// Package config loads touchline settings.
//
// Sources, highest priority first:
//  1. environment variables (TOUCHLINE_*), including a ./.env file;
//  2. the yaml file: --config, then TOUCHLINE_CONFIG, then ~/.touchline/config.yaml;
//  3. env-default tags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/abelbrown/touchline/internal/fetch"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the backend the dashboard talks to out of the box.
const DefaultBaseURL = "http://localhost:5000/api"

// Config is the application configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	UI      UIConfig      `yaml:"ui"`
	Journal JournalConfig `yaml:"journal"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig points the fetch client at the football data API.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url"            env:"TOUCHLINE_API_BASE"    env-default:"http://localhost:5000/api"`
	Timeout           time.Duration `yaml:"timeout"             env:"TOUCHLINE_API_TIMEOUT"` // 0 = transport default
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"TOUCHLINE_API_RPS"`     // 0 = unpaced
	UserAgent         string        `yaml:"user_agent"          env:"TOUCHLINE_USER_AGENT"`
}

// UIConfig holds display preferences.
type UIConfig struct {
	WindowSize int  `yaml:"window_size" env:"TOUCHLINE_WINDOW_SIZE" env-default:"3"`
	Inline     bool `yaml:"inline"      env:"TOUCHLINE_INLINE"` // render without the alternate screen
}

// JournalConfig controls the sqlite fetch journal.
type JournalConfig struct {
	Disable   bool          `yaml:"disable"   env:"TOUCHLINE_JOURNAL_DISABLE"`
	Path      string        `yaml:"path"      env:"TOUCHLINE_JOURNAL_PATH"`
	Retention time.Duration `yaml:"retention" env:"TOUCHLINE_JOURNAL_RETENTION" env-default:"168h"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `yaml:"level" env:"TOUCHLINE_LOG_LEVEL" env-default:"info"`
	Dir   string `yaml:"dir"   env:"TOUCHLINE_LOG_DIR"`
}

// DataDir is where touchline keeps its files: $TOUCHLINE_HOME or ~/.touchline.
func DataDir() string {
	if dir := os.Getenv("TOUCHLINE_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".touchline"
	}
	return filepath.Join(home, ".touchline")
}

// DefaultPath is the config file used when no path is given.
func DefaultPath() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{
		API:     APIConfig{BaseURL: DefaultBaseURL},
		UI:      UIConfig{WindowSize: 3},
		Journal: JournalConfig{Retention: 7 * 24 * time.Hour},
		Log:     LogConfig{Level: "info"},
	}
	cfg.fillPaths()
	return cfg
}

// MustLoad panics if Load fails.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load resolves the configuration. An explicit path that does not exist is an
// error; a missing default file is not.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("TOUCHLINE_CONFIG")
	}

	var cfg Config
	switch {
	case path != "":
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	case fileExists(DefaultPath()):
		if err := cleanenv.ReadConfig(DefaultPath(), &cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", DefaultPath(), err)
		}
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env: %w", err)
		}
	}

	cfg.fillPaths()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) fillPaths() {
	if c.Journal.Path == "" {
		c.Journal.Path = filepath.Join(DataDir(), "journal.db")
	}
	if c.Log.Dir == "" {
		c.Log.Dir = filepath.Join(DataDir(), "logs")
	}
}

// Validate checks values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url: %q is not an http(s) URL", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout: must not be negative")
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("api.requests_per_second: must not be negative")
	}
	if c.UI.WindowSize < 1 {
		return fmt.Errorf("ui.window_size: must be at least 1")
	}
	return nil
}

// Client is the fetch client configuration derived from the api section.
func (c *Config) Client() fetch.ClientConfig {
	return fetch.ClientConfig{
		BaseURL:           c.API.BaseURL,
		Timeout:           c.API.Timeout,
		UserAgent:         c.API.UserAgent,
		RequestsPerSecond: c.API.RequestsPerSecond,
	}
}

// Save writes c to path as yaml, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
