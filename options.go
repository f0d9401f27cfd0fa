package corpora

import (
	"io"
	"net/http"
	"time"
)

// DownloadOption is a function that modifies a DownloadConfig.
type DownloadOption func(*DownloadConfig)

// WithCacheDir sets the directory for downloaded and extracted files.
func WithCacheDir(dir string) DownloadOption {
	return func(c *DownloadConfig) {
		c.CacheDir = dir
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) DownloadOption {
	return func(c *DownloadConfig) {
		c.HTTPClient = client
	}
}

// WithTimeout sets the timeout for a single download request.
func WithTimeout(timeout time.Duration) DownloadOption {
	return func(c *DownloadConfig) {
		c.Timeout = timeout
	}
}

// WithMaxRetries sets the maximum number of retry attempts.
func WithMaxRetries(maxRetries int) DownloadOption {
	return func(c *DownloadConfig) {
		c.MaxRetries = maxRetries
	}
}

// WithRetryDelay sets the initial delay between retry attempts.
func WithRetryDelay(delay time.Duration) DownloadOption {
	return func(c *DownloadConfig) {
		c.RetryDelay = delay
	}
}

// WithUserAgent sets the User-Agent header for download requests.
func WithUserAgent(ua string) DownloadOption {
	return func(c *DownloadConfig) {
		c.UserAgent = ua
	}
}

// WithOffline forbids network access. Cached files are still served.
func WithOffline(offline bool) DownloadOption {
	return func(c *DownloadConfig) {
		c.Offline = offline
	}
}

// WithMemoSize sets the size of the in-process URL-to-path memo.
func WithMemoSize(size int) DownloadOption {
	return func(c *DownloadConfig) {
		c.MemoSize = size
	}
}

// WithIndexPath sets the path of the download index database.
func WithIndexPath(path string) DownloadOption {
	return func(c *DownloadConfig) {
		c.IndexPath = path
	}
}

// WithoutIndex turns off the download index entirely.
func WithoutIndex() DownloadOption {
	return func(c *DownloadConfig) {
		c.DisableIndex = true
	}
}

// WithDownloadLogger sets a structured logger for download operations.
func WithDownloadLogger(logger StructuredLogger) DownloadOption {
	return func(c *DownloadConfig) {
		c.Logger = logger
	}
}

// WithMetrics sets the Metrics implementation download measurements are
// sent to.
func WithMetrics(m Metrics) DownloadOption {
	return func(c *DownloadConfig) {
		c.Metrics = m
	}
}

// PlannerOption is a function that modifies a DummyPlanner.
type PlannerOption func(*DummyPlanner)

// WithDatasetsRoot sets the root directory under which dummy data folders
// are created, laid out as <root>/<dataset>/dummy/[<config>/]<version>.
func WithDatasetsRoot(dir string) PlannerOption {
	return func(p *DummyPlanner) {
		p.root = dir
	}
}

// WithAutoZip enables automatic dummy data generation. It requires
// WithHeadTail to set at least one bound.
func WithAutoZip(autoZip bool) PlannerOption {
	return func(p *DummyPlanner) {
		p.autoZip = autoZip
	}
}

// WithHeadTail sets how many leading and trailing lines of each real file
// are kept when auto-generating dummy data. Requires WithAutoZip.
func WithHeadTail(nFirst, nLast int) PlannerOption {
	return func(p *DummyPlanner) {
		p.nFirst = nFirst
		p.nLast = nLast
	}
}

// WithRequiresManual marks the dataset as needing manually downloaded data.
// The generated instructions point this out.
func WithRequiresManual(manual bool) PlannerOption {
	return func(p *DummyPlanner) {
		p.requiresManual = manual
	}
}

// WithOutput sets the writer instructions are printed to.
// Defaults to os.Stdout.
func WithOutput(w io.Writer) PlannerOption {
	return func(p *DummyPlanner) {
		p.out = w
	}
}

// WithPlannerLogger sets a structured logger for the planner.
func WithPlannerLogger(logger StructuredLogger) PlannerOption {
	return func(p *DummyPlanner) {
		p.logger = logger
	}
}

// WithDownloads sets the download manager used for the real data pass of
// auto-zip. Defaults to a download manager configured from the environment.
func WithDownloads(dm DownloadManager) PlannerOption {
	return func(p *DummyPlanner) {
		p.downloads = dm
	}
}

// WithOpener sets the Opener used for the real data pass of auto-zip.
// Defaults to OSOpener{}.
func WithOpener(o Opener) PlannerOption {
	return func(p *DummyPlanner) {
		p.opener = o
	}
}
