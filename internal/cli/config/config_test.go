package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	corpora "github.com/jdziat/corpora-go"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DatasetsRoot != "datasets" {
		t.Errorf("expected default datasets root to be datasets, got %s", cfg.DatasetsRoot)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level to be info, got %s", cfg.LogLevel)
	}
	if cfg.Offline {
		t.Error("expected offline to be disabled by default")
	}
	if cfg.Download.MaxRetries != 3 {
		t.Errorf("expected default max retries to be 3, got %d", cfg.Download.MaxRetries)
	}
	if cfg.Download.TimeoutMinutes != 15 {
		t.Errorf("expected default timeout to be 15 minutes, got %d", cfg.Download.TimeoutMinutes)
	}
	if cfg.DummyData.AutoZip {
		t.Error("expected auto zip to be disabled by default")
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".corpora.yaml")

	content := `cache_dir: /tmp/corpora-cache
datasets_root: ./my-datasets
offline: true
log_level: debug
download:
  max_retries: 5
  user_agent: my-tool/2.0
dummy_data:
  auto_zip: true
  n_first: 3
  n_last: 2
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg := DefaultConfig()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}

	if cfg.CacheDir != "/tmp/corpora-cache" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.DatasetsRoot != "./my-datasets" {
		t.Errorf("DatasetsRoot = %q", cfg.DatasetsRoot)
	}
	if !cfg.Offline {
		t.Error("Offline = false, want true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Download.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.Download.MaxRetries)
	}
	if cfg.Download.UserAgent != "my-tool/2.0" {
		t.Errorf("UserAgent = %q", cfg.Download.UserAgent)
	}
	// Values the file does not mention keep their defaults.
	if cfg.Download.TimeoutMinutes != 15 {
		t.Errorf("TimeoutMinutes = %d, want 15", cfg.Download.TimeoutMinutes)
	}
	if !cfg.DummyData.AutoZip || cfg.DummyData.NFirst != 3 || cfg.DummyData.NLast != 2 {
		t.Errorf("DummyData = %+v", cfg.DummyData)
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".corpora.yaml")

	if err := os.WriteFile(configPath, []byte("datasets_root: [unclosed"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if err := loadFromFile(DefaultConfig(), configPath); err == nil {
		t.Error("loadFromFile() with invalid YAML succeeded, want error")
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	err := loadFromFile(DefaultConfig(), filepath.Join(t.TempDir(), "absent", ".corpora.yaml"))
	if err == nil {
		t.Error("loadFromFile() with missing file succeeded, want error")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	os.Setenv(corpora.EnvCacheDir, "/env/cache")
	os.Setenv(corpora.EnvDatasetsRoot, "/env/datasets")
	os.Setenv(corpora.EnvOffline, "1")
	os.Setenv(corpora.EnvDebug, "true")
	defer func() {
		os.Unsetenv(corpora.EnvCacheDir)
		os.Unsetenv(corpora.EnvDatasetsRoot)
		os.Unsetenv(corpora.EnvOffline)
		os.Unsetenv(corpora.EnvDebug)
	}()

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.CacheDir != "/env/cache" {
		t.Errorf("CacheDir = %q, want /env/cache", cfg.CacheDir)
	}
	if cfg.DatasetsRoot != "/env/datasets" {
		t.Errorf("DatasetsRoot = %q, want /env/datasets", cfg.DatasetsRoot)
	}
	if !cfg.Offline {
		t.Error("Offline = false, want true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestApplyEnvOverrides_Unset(t *testing.T) {
	os.Unsetenv(corpora.EnvCacheDir)
	os.Unsetenv(corpora.EnvDatasetsRoot)
	os.Unsetenv(corpora.EnvOffline)
	os.Unsetenv(corpora.EnvDebug)

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.CacheDir != "" || cfg.DatasetsRoot != "datasets" || cfg.Offline || cfg.LogLevel != "info" {
		t.Errorf("config changed without env vars: %+v", cfg)
	}
}

func TestLogger_Level(t *testing.T) {
	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.LogLevel = "debug"
	if !cfg.Logger().Enabled(ctx, slog.LevelDebug) {
		t.Error("debug level not enabled")
	}

	cfg.LogLevel = "error"
	if cfg.Logger().Enabled(ctx, slog.LevelWarn) {
		t.Error("warn enabled at error level")
	}

	cfg.LogLevel = ""
	if cfg.Logger().Enabled(ctx, slog.LevelDebug) {
		t.Error("debug enabled at default level")
	}
}

func TestDownloadOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheDir = t.TempDir()
	cfg.Offline = true
	cfg.LogLevel = "error"

	opts := append(cfg.DownloadOptions(), corpora.WithoutIndex())
	dm, err := corpora.NewHTTPDownloadManager(opts...)
	if err != nil {
		t.Fatalf("NewHTTPDownloadManager() error = %v", err)
	}
	defer dm.Close()

	if got := dm.CacheDir(); got != cfg.CacheDir {
		t.Errorf("CacheDir() = %q, want %q", got, cfg.CacheDir)
	}

	_, err = dm.Download(context.Background(), "https://example.com/never-cached.zip")
	if !errors.Is(err, corpora.ErrOffline) {
		t.Errorf("Download() error = %v, want ErrOffline", err)
	}
}
