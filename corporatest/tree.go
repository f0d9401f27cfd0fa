package corporatest

import (
	"os"
	"path/filepath"
)

// TestingT is an interface that matches *testing.T and *testing.B.
type TestingT interface {
	Fatalf(format string, args ...any)
	Helper()
}

// WriteTree writes the given files beneath dir, creating parent directories
// as needed. Keys are slash-separated paths relative to dir. Use it to lay
// out fixture trees for StaticDownloadManager:
//
//	dir := t.TempDir()
//	corporatest.WriteTree(t, dir, map[string]string{
//	    "data/train.csv": "id,text\n1,hello\n",
//	})
func WriteTree(t TestingT, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}
}
