package corpora

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jdziat/corpora-go/internal/cacheindex"
)

// HTTPDownloadManager fetches remote resources over HTTP and caches them on
// disk. Downloads are written atomically (temp file plus rename), keyed by
// the SHA-256 of the URL, and retried with exponential backoff on transient
// failures. Completed fetches are recorded in a local index so that the
// cache can be listed and pruned later.
//
// An HTTPDownloadManager is safe for concurrent use.
type HTTPDownloadManager struct {
	cfg     DownloadConfig
	memo    *lru.Cache[string, string]
	index   *cacheindex.Index
	metrics *MetricsRecorder
}

// NewHTTPDownloadManager creates a download manager with the given options.
// Call Close when done to release the index database.
func NewHTTPDownloadManager(opts ...DownloadOption) (*HTTPDownloadManager, error) {
	cfg := DownloadConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewHTTPDownloadManagerWithConfig(&cfg)
}

// NewHTTPDownloadManagerWithConfig creates a download manager from an
// explicit configuration. The config is defaulted and validated first.
func NewHTTPDownloadManagerWithConfig(cfg *DownloadConfig) (*HTTPDownloadManager, error) {
	if cfg == nil {
		cfg = &DownloadConfig{}
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Join(cfg.CacheDir, "downloads"), 0o755); err != nil {
		return nil, WrapError(err, "creating cache directory")
	}
	if err := os.MkdirAll(filepath.Join(cfg.CacheDir, "extracted"), 0o755); err != nil {
		return nil, WrapError(err, "creating cache directory")
	}

	memo, err := lru.New[string, string](cfg.MemoSize)
	if err != nil {
		return nil, WrapError(err, "creating url memo")
	}

	m := &HTTPDownloadManager{
		cfg:     *cfg,
		memo:    memo,
		metrics: NewMetricsRecorder(cfg.Metrics),
	}

	if !cfg.DisableIndex {
		ix, err := cacheindex.Open(context.Background(), cfg.IndexPath)
		if err != nil {
			return nil, WrapError(err, "opening download index")
		}
		m.index = ix
	}

	return m, nil
}

// Close releases the download index and any idle connections.
func (m *HTTPDownloadManager) Close() error {
	m.cfg.HTTPClient.CloseIdleConnections()
	if m.index == nil {
		return nil
	}
	return m.index.Close()
}

// Index returns the download index, or nil if the index is disabled.
func (m *HTTPDownloadManager) Index() *cacheindex.Index {
	return m.index
}

// CacheDir returns the cache directory the manager writes to.
func (m *HTTPDownloadManager) CacheDir() string {
	return m.cfg.CacheDir
}

// Download implements DownloadManager. It returns the cached file if one
// exists, otherwise fetches the URL and stores it under the cache directory.
func (m *HTTPDownloadManager) Download(ctx context.Context, rawURL string) (string, error) {
	if p, ok := m.memo.Get(rawURL); ok {
		m.metrics.RecordCacheHit()
		return p, nil
	}

	key := cacheKey(rawURL)
	dest := filepath.Join(m.cfg.CacheDir, "downloads", key+archiveSuffix(rawURL))

	if _, err := os.Stat(dest); err == nil {
		m.cfg.Logger.Debug("cache hit", "url", rawURL, "path", dest)
		m.metrics.RecordCacheHit()
		m.addMemo(rawURL, dest)
		return dest, nil
	}

	if m.cfg.Offline {
		return "", fmt.Errorf("%w: %s", ErrOffline, rawURL)
	}

	start := time.Now()
	size, etag, err := m.fetch(ctx, rawURL, dest)
	if err != nil {
		m.metrics.RecordDownloadFailure(time.Since(start))
		return "", err
	}
	m.metrics.RecordDownload(size, time.Since(start))

	if m.index != nil {
		entry := cacheindex.Entry{
			URL:       rawURL,
			Key:       key,
			Path:      dest,
			Size:      size,
			ETag:      etag,
			FetchedAt: time.Now().UTC(),
		}
		if err := m.index.Put(ctx, entry); err != nil {
			m.cfg.Logger.Warn("failed to record download", "url", rawURL, "error", err)
		}
	}

	m.addMemo(rawURL, dest)
	return dest, nil
}

// addMemo records a resolved URL in the memo and publishes its new size.
func (m *HTTPDownloadManager) addMemo(rawURL, dest string) {
	m.memo.Add(rawURL, dest)
	m.metrics.RecordMemoSize(m.memo.Len())
}

// fetch downloads rawURL to dest with retries.
func (m *HTTPDownloadManager) fetch(ctx context.Context, rawURL, dest string) (int64, string, error) {
	var lastErr error

	for attempt := 0; attempt <= m.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := m.cfg.RetryDelay * time.Duration(1<<uint(attempt-1))
			m.cfg.Logger.Debug("retrying download", "url", rawURL, "attempt", attempt, "delay", delay)
			m.metrics.RecordRetry()
			select {
			case <-ctx.Done():
				return 0, "", ctx.Err()
			case <-time.After(delay):
			}
		}

		size, etag, err := m.fetchOnce(ctx, rawURL, dest)
		if err == nil {
			return size, etag, nil
		}

		lastErr = err

		if httpErr, ok := AsHTTPError(err); ok {
			if !httpErr.IsRetryable() {
				return 0, "", err
			}
		} else if ctx.Err() != nil {
			return 0, "", err
		}
		// Network errors are retried.
	}

	return 0, "", lastErr
}

// fetchOnce performs a single download attempt, writing to a temp file and
// renaming it into place only on success.
func (m *HTTPDownloadManager) fetchOnce(ctx context.Context, rawURL, dest string) (int64, string, error) {
	start := time.Now()
	m.cfg.Logger.Info("downloading", "url", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, "", WrapErrorf(err, "creating request for %s", rawURL)
	}
	req.Header.Set("User-Agent", m.cfg.UserAgent)

	resp, err := m.cfg.HTTPClient.Do(req)
	if err != nil {
		return 0, "", WrapErrorf(err, "requesting %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, "", &HTTPError{StatusCode: resp.StatusCode, URL: rawURL}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return 0, "", WrapError(err, "creating temp file")
	}

	size, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, "", WrapErrorf(err, "writing %s", dest)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return 0, "", WrapErrorf(err, "writing %s", dest)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return 0, "", WrapErrorf(err, "storing %s", dest)
	}

	m.cfg.Logger.Info("download complete",
		"url", rawURL,
		"size", humanize.Bytes(uint64(size)),
		"took", time.Since(start).Round(time.Millisecond))

	return size, resp.Header.Get("ETag"), nil
}

// DownloadAndExtract implements DownloadManager.
func (m *HTTPDownloadManager) DownloadAndExtract(ctx context.Context, rawURL string) (string, error) {
	p, err := m.Download(ctx, rawURL)
	if err != nil {
		return "", err
	}

	dir, err := m.Extract(ctx, p)
	if err != nil {
		return "", err
	}

	if m.index != nil {
		if err := m.index.SetExtracted(ctx, rawURL, dir); err != nil {
			m.cfg.Logger.Warn("failed to record extraction", "url", rawURL, "error", err)
		}
	}
	return dir, nil
}

// Extract implements DownloadManager. Repeated extractions of the same
// archive reuse the existing extraction directory.
func (m *HTTPDownloadManager) Extract(ctx context.Context, archivePath string) (string, error) {
	dest := filepath.Join(m.cfg.CacheDir, "extracted", cacheKey(archivePath))

	if _, err := os.Stat(dest); err == nil {
		m.cfg.Logger.Debug("extraction cache hit", "path", archivePath, "dir", dest)
		return dest, nil
	}

	tmp, err := os.MkdirTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return "", WrapError(err, "creating extraction directory")
	}

	m.cfg.Logger.Info("extracting", "path", archivePath)
	if err := extractArchive(ctx, archivePath, tmp); err != nil {
		os.RemoveAll(tmp)
		m.metrics.RecordExtraction(false)
		return "", err
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.RemoveAll(tmp)
		// Lost the rename race to a concurrent extraction of the same archive.
		if _, statErr := os.Stat(dest); statErr == nil {
			m.metrics.RecordExtraction(true)
			return dest, nil
		}
		return "", WrapErrorf(err, "storing extraction of %s", archivePath)
	}
	m.metrics.RecordExtraction(true)
	return dest, nil
}

// Ensure HTTPDownloadManager implements DownloadManager.
var _ DownloadManager = (*HTTPDownloadManager)(nil)

// cacheKey returns the hex SHA-256 of s.
func cacheKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// archiveSuffix returns the archive-relevant suffix of a URL's path, so that
// cached files keep enough of their name for extraction to identify the
// format. Query strings are ignored.
func archiveSuffix(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}

	for _, suffix := range []string{".tar.gz", ".tgz", ".tar", ".zip", ".gz"} {
		if hasSuffixFold(p, suffix) {
			return suffix
		}
	}
	return path.Ext(p)
}

// hasSuffixFold is a case-insensitive strings.HasSuffix for ASCII suffixes.
func hasSuffixFold(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}
	tail := s[len(s)-len(suffix):]
	for i := 0; i < len(suffix); i++ {
		c, d := tail[i], suffix[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != d {
			return false
		}
	}
	return true
}
