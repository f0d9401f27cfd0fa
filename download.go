package corpora

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DownloadManager resolves remote resources to local paths. Builders call it
// from SplitGenerators to turn dataset URLs into files they can hand to
// GenerateExamples.
//
// The two standard implementations are HTTPDownloadManager, which fetches
// and caches real data, and MockDownloadManager, which resolves every URL to
// a deterministic placeholder inside a dataset's dummy data folder.
type DownloadManager interface {
	// Download fetches the resource at url and returns a local path to it.
	Download(ctx context.Context, url string) (string, error)

	// DownloadAndExtract fetches the resource at url, extracts it if it is
	// an archive, and returns the local path to the extracted content.
	DownloadAndExtract(ctx context.Context, url string) (string, error)

	// Extract unpacks a local archive and returns the path to its content.
	Extract(ctx context.Context, path string) (string, error)
}

// Default configuration values.
const (
	// DefaultDownloadTimeout is the default timeout for a single download.
	DefaultDownloadTimeout = 15 * time.Minute

	// DefaultMaxRetries is the default maximum number of retry attempts.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the default initial delay between retry attempts.
	DefaultRetryDelay = 1 * time.Second

	// DefaultMemoSize is the default size of the in-process URL memo.
	DefaultMemoSize = 128

	// MaxMaxRetries is the maximum allowed retry count.
	MaxMaxRetries = 10
)

// defaultUserAgent identifies the library in download requests.
const defaultUserAgent = "corpora-go/" + Version

// DownloadConfig holds the configuration for an HTTPDownloadManager.
type DownloadConfig struct {
	// CacheDir is the directory for downloaded and extracted files.
	// Defaults to the "corpora" subdirectory of the user cache directory.
	CacheDir string

	// HTTPClient is the HTTP client to use for requests.
	// If not set, a default client with the configured timeout is used.
	HTTPClient *http.Client

	// Timeout is the timeout for a single download request.
	// Defaults to 15 minutes if not set.
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed requests.
	// Defaults to 3 if not set.
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts.
	// Defaults to 1 second if not set.
	RetryDelay time.Duration

	// UserAgent is sent with every request.
	// Defaults to "corpora-go/<version>" if not set.
	UserAgent string

	// Offline forbids network access. Cached files are still served;
	// anything else fails with ErrOffline.
	Offline bool

	// MemoSize is the size of the in-process URL-to-path memo.
	// Defaults to 128 if not set.
	MemoSize int

	// IndexPath is the path of the download index database.
	// Defaults to "<CacheDir>/downloads.db" if not set.
	IndexPath string

	// DisableIndex turns off the download index entirely.
	DisableIndex bool

	// Logger is used for download logging. Defaults to NopLogger.
	Logger StructuredLogger

	// Metrics receives download measurements. Optional, nil disables
	// recording.
	Metrics Metrics
}

// String returns a string representation of the config for debug output.
func (c *DownloadConfig) String() string {
	return fmt.Sprintf("DownloadConfig{CacheDir: %q, Timeout: %v, MaxRetries: %d, Offline: %v}",
		c.CacheDir, c.Timeout, c.MaxRetries, c.Offline)
}

// applyDefaults sets default values for unset configuration options.
func (c *DownloadConfig) applyDefaults() {
	if c.CacheDir == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			c.CacheDir = filepath.Join(dir, "corpora")
		} else {
			c.CacheDir = filepath.Join(os.TempDir(), "corpora")
		}
	}

	if c.Timeout == 0 {
		c.Timeout = DefaultDownloadTimeout
	}

	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}

	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}

	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}

	if c.MemoSize == 0 {
		c.MemoSize = DefaultMemoSize
	}

	if c.IndexPath == "" {
		c.IndexPath = filepath.Join(c.CacheDir, "downloads.db")
	}

	if c.Logger == nil {
		c.Logger = NopLogger{}
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{
			Timeout: c.Timeout,
		}
	}
}

// validate checks that the configuration is valid.
func (c *DownloadConfig) validate() error {
	if c.CacheDir == "" {
		return fmt.Errorf("%w: cache directory is required", ErrInvalidConfig)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries cannot be negative, got %d", ErrInvalidConfig, c.MaxRetries)
	}
	if c.MaxRetries > MaxMaxRetries {
		return fmt.Errorf("%w: max retries cannot exceed %d, got %d", ErrInvalidConfig, MaxMaxRetries, c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: retry delay cannot be negative", ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout cannot be negative", ErrInvalidConfig)
	}
	if c.MemoSize < 1 {
		return fmt.Errorf("%w: memo size must be at least 1, got %d", ErrInvalidConfig, c.MemoSize)
	}
	return nil
}
