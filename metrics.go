package corpora

import "time"

// Metrics receives measurements from the download manager. Implementations
// must be safe for concurrent use.
//
// Metrics is optional: a nil value disables recording entirely. Adapters for
// statsd-style backends only need these three methods.
type Metrics interface {
	// IncrementCounter adds value to the named monotonic counter.
	IncrementCounter(name string, value int64)

	// RecordDuration records one sample of the named duration.
	RecordDuration(name string, duration time.Duration)

	// SetGauge sets the named gauge to value.
	SetGauge(name string, value float64)
}

// DownloadMetricNames defines the metric names the download manager records.
type DownloadMetricNames struct {
	Downloads          string // Counter: completed fetches
	DownloadFailures   string // Counter: fetches that exhausted their retries
	DownloadedBytes    string // Counter: bytes written to the cache
	DownloadDuration   string // Histogram: time to resolve one URL
	CacheHits          string // Counter: URLs served from the cache
	Retries            string // Counter: retried attempts
	Extractions        string // Counter: archives extracted
	ExtractionFailures string // Counter: extractions that failed
	MemoEntries        string // Gauge: entries in the URL memo
}

// DefaultDownloadMetricNames holds the metric names with the "corpora." prefix.
var DefaultDownloadMetricNames = DownloadMetricNames{
	Downloads:          "corpora.download.completed",
	DownloadFailures:   "corpora.download.failures",
	DownloadedBytes:    "corpora.download.bytes",
	DownloadDuration:   "corpora.download.duration_ms",
	CacheHits:          "corpora.download.cache_hits",
	Retries:            "corpora.download.retries",
	Extractions:        "corpora.extract.completed",
	ExtractionFailures: "corpora.extract.failures",
	MemoEntries:        "corpora.download.memo_entries",
}

// MetricsRecorder wraps a Metrics implementation with convenience methods
// for the download manager's measurements. A recorder over a nil Metrics
// records nothing, so call sites never need nil checks.
type MetricsRecorder struct {
	metrics Metrics
	names   DownloadMetricNames
}

// NewMetricsRecorder creates a recorder over m using the default metric
// names. m may be nil, in which case every method is a no-op.
func NewMetricsRecorder(m Metrics) *MetricsRecorder {
	return &MetricsRecorder{metrics: m, names: DefaultDownloadMetricNames}
}

// NewMetricsRecorderWithNames creates a recorder with custom metric names.
func NewMetricsRecorderWithNames(m Metrics, names DownloadMetricNames) *MetricsRecorder {
	return &MetricsRecorder{metrics: m, names: names}
}

// IsEnabled reports whether measurements reach a Metrics implementation.
func (r *MetricsRecorder) IsEnabled() bool {
	return r != nil && r.metrics != nil
}

// RecordCacheHit counts a URL served from the cache without a fetch.
func (r *MetricsRecorder) RecordCacheHit() {
	if !r.IsEnabled() {
		return
	}
	r.metrics.IncrementCounter(r.names.CacheHits, 1)
}

// RecordDownload records one completed fetch.
func (r *MetricsRecorder) RecordDownload(size int64, duration time.Duration) {
	if !r.IsEnabled() {
		return
	}
	r.metrics.IncrementCounter(r.names.Downloads, 1)
	r.metrics.IncrementCounter(r.names.DownloadedBytes, size)
	r.metrics.RecordDuration(r.names.DownloadDuration, duration)
}

// RecordDownloadFailure records a fetch that gave up.
func (r *MetricsRecorder) RecordDownloadFailure(duration time.Duration) {
	if !r.IsEnabled() {
		return
	}
	r.metrics.IncrementCounter(r.names.DownloadFailures, 1)
	r.metrics.RecordDuration(r.names.DownloadDuration, duration)
}

// RecordRetry counts one retried download attempt.
func (r *MetricsRecorder) RecordRetry() {
	if !r.IsEnabled() {
		return
	}
	r.metrics.IncrementCounter(r.names.Retries, 1)
}

// RecordExtraction counts one archive extraction.
func (r *MetricsRecorder) RecordExtraction(success bool) {
	if !r.IsEnabled() {
		return
	}
	if success {
		r.metrics.IncrementCounter(r.names.Extractions, 1)
		return
	}
	r.metrics.IncrementCounter(r.names.ExtractionFailures, 1)
}

// RecordMemoSize publishes the current size of the URL memo.
func (r *MetricsRecorder) RecordMemoSize(n int) {
	if !r.IsEnabled() {
		return
	}
	r.metrics.SetGauge(r.names.MemoEntries, float64(n))
}
