// Package config provides configuration loading for the corpora CLI.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	corpora "github.com/jdziat/corpora-go"
)

// Config represents the complete CLI configuration.
type Config struct {
	CacheDir     string          `yaml:"cache_dir"`
	DatasetsRoot string          `yaml:"datasets_root"`
	Offline      bool            `yaml:"offline"`
	LogLevel     string          `yaml:"log_level"`
	Download     DownloadConfig  `yaml:"download"`
	DummyData    DummyDataConfig `yaml:"dummy_data"`
}

// DownloadConfig holds download manager settings.
type DownloadConfig struct {
	MaxRetries     int    `yaml:"max_retries"`
	TimeoutMinutes int    `yaml:"timeout_minutes"`
	RetryDelayMS   int    `yaml:"retry_delay_ms"`
	UserAgent      string `yaml:"user_agent"`
}

// DummyDataConfig holds defaults for the dummy-data command.
type DummyDataConfig struct {
	AutoZip bool `yaml:"auto_zip"`
	NFirst  int  `yaml:"n_first"`
	NLast   int  `yaml:"n_last"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DatasetsRoot: "datasets",
		LogLevel:     "info",
		Download: DownloadConfig{
			MaxRetries:     corpora.DefaultMaxRetries,
			TimeoutMinutes: int(corpora.DefaultDownloadTimeout / time.Minute),
			RetryDelayMS:   int(corpora.DefaultRetryDelay / time.Millisecond),
		},
	}
}

// Load reads configuration from file and environment variables. File values
// override defaults and environment variables override the file.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := findConfigFile()
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// findConfigFile searches for the configuration file, starting in the
// current directory and walking up.
func findConfigFile() string {
	candidates := []string{
		".corpora.yaml",
		".corpora.yml",
	}

	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range candidates {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// loadFromFile reads configuration from a YAML file.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(corpora.EnvCacheDir); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv(corpora.EnvDatasetsRoot); v != "" {
		cfg.DatasetsRoot = v
	}
	if v := os.Getenv(corpora.EnvOffline); v == "true" || v == "1" {
		cfg.Offline = true
	}
	if v := os.Getenv(corpora.EnvDebug); v == "true" || v == "1" {
		cfg.LogLevel = "debug"
	}
}

// Logger builds a structured logger writing to stderr at the configured
// level.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// DownloadOptions converts the configuration into download manager options.
func (c *Config) DownloadOptions() []corpora.DownloadOption {
	opts := []corpora.DownloadOption{
		corpora.WithMaxRetries(c.Download.MaxRetries),
		corpora.WithTimeout(time.Duration(c.Download.TimeoutMinutes) * time.Minute),
		corpora.WithRetryDelay(time.Duration(c.Download.RetryDelayMS) * time.Millisecond),
		corpora.WithDownloadLogger(corpora.NewSlogAdapter(c.Logger())),
	}
	if c.CacheDir != "" {
		opts = append(opts, corpora.WithCacheDir(c.CacheDir))
	}
	if c.Download.UserAgent != "" {
		opts = append(opts, corpora.WithUserAgent(c.Download.UserAgent))
	}
	if c.Offline {
		opts = append(opts, corpora.WithOffline(true))
	}
	return opts
}
