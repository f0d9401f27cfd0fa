package corporatest

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	corpora "github.com/jdziat/corpora-go"
)

// Compile-time interface assertions to catch drift between mock
// implementations and the interfaces they stand in for.
var (
	_ corpora.DownloadManager  = (*StaticDownloadManager)(nil)
	_ corpora.Builder          = (*ScriptedBuilder)(nil)
	_ corpora.StructuredLogger = (*MockLogger)(nil)
	_ corpora.Metrics          = (*MockMetrics)(nil)
)

// StaticDownloadManager is a DownloadManager that resolves every URL to a
// fixed local directory. Point Dir at a fixture tree laid out the way the
// builder expects the extracted archive to look.
type StaticDownloadManager struct {
	// Dir is returned from Download and DownloadAndExtract for every URL.
	Dir string

	// Err, when set, is returned from every method instead.
	Err error

	mu   sync.Mutex
	urls []string
}

// Download implements corpora.DownloadManager.
func (m *StaticDownloadManager) Download(_ context.Context, url string) (string, error) {
	return m.resolve(url)
}

// DownloadAndExtract implements corpora.DownloadManager.
func (m *StaticDownloadManager) DownloadAndExtract(_ context.Context, url string) (string, error) {
	return m.resolve(url)
}

// Extract implements corpora.DownloadManager. Paths are returned unchanged.
func (m *StaticDownloadManager) Extract(_ context.Context, path string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return path, nil
}

func (m *StaticDownloadManager) resolve(url string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.mu.Lock()
	m.urls = append(m.urls, url)
	m.mu.Unlock()
	return m.Dir, nil
}

// URLs returns the URLs resolved so far, in order.
func (m *StaticDownloadManager) URLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.urls...)
}

// ScriptedSplit is one split of a ScriptedBuilder: its name, the files the
// split claims to need (relative to the resolved download directory), and
// the records GenerateExamples emits for it.
type ScriptedSplit struct {
	Name  corpora.Split
	Files map[string]string
	Rows  []any
}

// ScriptedBuilder is a Builder whose behavior is fully scripted. It is
// intended for testing tools that consume builders: dataset preparation,
// dummy data planning and file touch recording.
//
// GenerateExamples opens every file of its generator through the provided
// Opener (in sorted key order, so touch recording is deterministic) and then
// emits the scripted rows of the matching split with sequential ids.
type ScriptedBuilder struct {
	DatasetInfo corpora.DatasetInfo

	// URL, when set, is resolved through the download manager and the
	// split files are joined onto the resolved directory.
	URL string

	Splits []ScriptedSplit

	// SplitsErr, when set, is returned from SplitGenerators.
	SplitsErr error

	// GenerateErr, when set, is returned from GenerateExamples before
	// anything is opened or emitted.
	GenerateErr error
}

// Info implements corpora.Builder.
func (b *ScriptedBuilder) Info() corpora.DatasetInfo {
	return b.DatasetInfo
}

// SplitGenerators implements corpora.Builder.
func (b *ScriptedBuilder) SplitGenerators(ctx context.Context, dm corpora.DownloadManager) ([]corpora.SplitGenerator, error) {
	if b.SplitsErr != nil {
		return nil, b.SplitsErr
	}

	var dir string
	if b.URL != "" {
		var err error
		dir, err = dm.DownloadAndExtract(ctx, b.URL)
		if err != nil {
			return nil, err
		}
	}

	gens := make([]corpora.SplitGenerator, len(b.Splits))
	for i, s := range b.Splits {
		files := make(map[string]string, len(s.Files))
		for key, name := range s.Files {
			if dir != "" {
				name = filepath.Join(dir, name)
			}
			files[key] = name
		}
		gens[i] = corpora.SplitGenerator{Name: s.Name, Files: files}
	}
	return gens, nil
}

// GenerateExamples implements corpora.Builder.
func (b *ScriptedBuilder) GenerateExamples(ctx context.Context, o corpora.Opener, g corpora.SplitGenerator, emit corpora.EmitFunc) error {
	if b.GenerateErr != nil {
		return b.GenerateErr
	}

	keys := make([]string, 0, len(g.Files))
	for key := range g.Files {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		f, err := o.Open(g.Files[key])
		if err != nil {
			return err
		}
		f.Close()
	}

	for _, s := range b.Splits {
		if s.Name != g.Name {
			continue
		}
		for id, row := range s.Rows {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := emit(id, row); err != nil {
				return err
			}
		}
		break
	}
	return nil
}

// LogEntry is one captured log call.
type LogEntry struct {
	Level   string
	Message string
	Args    []any
}

// MockLogger is a StructuredLogger that captures all log calls for later
// verification.
type MockLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewMockLogger creates a new mock logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

// Debug implements StructuredLogger.Debug.
func (l *MockLogger) Debug(msg string, args ...any) { l.record("DEBUG", msg, args) }

// Info implements StructuredLogger.Info.
func (l *MockLogger) Info(msg string, args ...any) { l.record("INFO", msg, args) }

// Warn implements StructuredLogger.Warn.
func (l *MockLogger) Warn(msg string, args ...any) { l.record("WARN", msg, args) }

// Error implements StructuredLogger.Error.
func (l *MockLogger) Error(msg string, args ...any) { l.record("ERROR", msg, args) }

func (l *MockLogger) record(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, Args: args})
}

// Entries returns the captured log calls in order.
func (l *MockLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry{}, l.entries...)
}

// Count returns the number of captured log calls.
func (l *MockLogger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Has reports whether a message was logged at the given level.
func (l *MockLogger) Has(level, msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.Level == level && e.Message == msg {
			return true
		}
	}
	return false
}

// Reset clears the captured entries.
func (l *MockLogger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// MockMetrics is a Metrics implementation that records every measurement
// for later verification. Pass it to a download manager with
// corpora.WithMetrics.
type MockMetrics struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string][]int64
}

// NewMockMetrics creates an empty mock metrics collector.
func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string][]int64),
	}
}

// IncrementCounter implements corpora.Metrics.
func (m *MockMetrics) IncrementCounter(name string, value int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += value
}

// RecordDuration implements corpora.Metrics.
func (m *MockMetrics) RecordDuration(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] = append(m.timings[name], duration.Nanoseconds())
}

// SetGauge implements corpora.Metrics.
func (m *MockMetrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

// Counter returns the value of the named counter.
func (m *MockMetrics) Counter(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// Gauge returns the last value set for the named gauge.
func (m *MockMetrics) Gauge(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gauges[name]
}

// Timings returns the recorded samples of the named duration in
// nanoseconds.
func (m *MockMetrics) Timings(name string) []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64{}, m.timings[name]...)
}

// Reset clears all recorded measurements.
func (m *MockMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = make(map[string]int64)
	m.gauges = make(map[string]float64)
	m.timings = make(map[string][]int64)
}
