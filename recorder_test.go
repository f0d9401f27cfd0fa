package corpora

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestTouchRecorderMockMode(t *testing.T) {
	rec := NewTouchRecorder(nil, true)

	f, err := rec.Open("does/not/exist.txt")
	if err != nil {
		t.Fatalf("mock Open() error = %v", err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("reading mock file: %v", err)
	}
	f.Close()
	if len(data) != 0 {
		t.Errorf("mock file should be empty, got %q", data)
	}

	if _, err := os.Stat("does"); err == nil {
		t.Error("mock open must not create anything on disk")
	}
}

func TestTouchRecorderRecordsOrderAndDuplicates(t *testing.T) {
	rec := NewTouchRecorder(nil, true)

	for _, name := range []string{"b.txt", "a.txt", "b.txt"} {
		f, err := rec.Open(name)
		if err != nil {
			t.Fatalf("Open(%q) error = %v", name, err)
		}
		f.Close()
	}

	paths := rec.Paths()
	want := []string{"b.txt", "a.txt", "b.txt"}
	if len(paths) != len(want) {
		t.Fatalf("Paths() = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Paths()[%d] = %q, want %q", i, paths[i], want[i])
		}
	}

	unique := rec.Unique()
	wantUnique := []string{"b.txt", "a.txt"}
	if len(unique) != len(wantUnique) {
		t.Fatalf("Unique() = %v, want %v", unique, wantUnique)
	}
	for i := range wantUnique {
		if unique[i] != wantUnique[i] {
			t.Errorf("Unique()[%d] = %q, want %q", i, unique[i], wantUnique[i])
		}
	}
}

func TestTouchRecorderRealMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "real.txt")
	if err := os.WriteFile(path, []byte("content\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := NewTouchRecorder(OSOpener{}, false)

	f, err := rec.Open(path)
	if err != nil {
		t.Fatalf("real Open() error = %v", err)
	}
	data, _ := io.ReadAll(f)
	f.Close()
	if string(data) != "content\n" {
		t.Errorf("real open returned %q, want %q", data, "content\n")
	}

	if _, err := rec.Open(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("real open of a missing file should fail")
	}

	// Both opens are recorded, the failed one included.
	if got := len(rec.Paths()); got != 2 {
		t.Errorf("recorded %d paths, want 2", got)
	}
}

func TestTouchRecorderReset(t *testing.T) {
	rec := NewTouchRecorder(nil, true)
	f, _ := rec.Open("x")
	f.Close()
	rec.Reset()
	if got := len(rec.Paths()); got != 0 {
		t.Errorf("after Reset() got %d paths, want 0", got)
	}
}
