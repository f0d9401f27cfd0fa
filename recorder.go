package corpora

import (
	"io"
	"strings"
)

// TouchRecorder is an Opener that records every path a builder asks for, in
// the order the opens happen and with duplicates retained. It is the
// instrument behind dummy data planning: driving a builder with a
// TouchRecorder yields the exact file set the builder depends on.
//
// In mock mode the underlying file is never touched; Open succeeds with an
// empty handle regardless of whether the path exists. This is how expected
// files are discovered before they exist. In real mode opens are delegated
// to the wrapped Opener.
//
// A TouchRecorder is not safe for concurrent use. It belongs to a single
// goroutine for the duration of a drive; create a fresh recorder per drive
// rather than sharing one.
type TouchRecorder struct {
	base  Opener
	mock  bool
	paths []string
}

// NewTouchRecorder creates a recorder wrapping base. If mock is true, opens
// never reach base and always succeed with an empty handle. If base is nil,
// OSOpener{} is used for real opens.
func NewTouchRecorder(base Opener, mock bool) *TouchRecorder {
	if base == nil {
		base = OSOpener{}
	}
	return &TouchRecorder{base: base, mock: mock}
}

// Open implements Opener. The requested name is recorded before the open is
// attempted, so failed opens still appear in Paths.
func (r *TouchRecorder) Open(name string) (io.ReadCloser, error) {
	r.paths = append(r.paths, name)
	if r.mock {
		return io.NopCloser(strings.NewReader("")), nil
	}
	return r.base.Open(name)
}

// Paths returns a copy of the recorded paths in open order, duplicates
// included.
func (r *TouchRecorder) Paths() []string {
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// Unique returns the recorded paths with duplicates removed, preserving
// first-seen order.
func (r *TouchRecorder) Unique() []string {
	seen := make(map[string]struct{}, len(r.paths))
	out := make([]string, 0, len(r.paths))
	for _, p := range r.paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Reset clears the recorded paths.
func (r *TouchRecorder) Reset() {
	r.paths = r.paths[:0]
}

// Ensure TouchRecorder implements Opener.
var _ Opener = (*TouchRecorder)(nil)
