package corpora

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// fakeBuilder downloads one archive and reads a fixed set of files out of
// its extraction directory, one Translation per line. Several test files in
// this package share it.
type fakeBuilder struct {
	info     DatasetInfo
	url      string
	splits   []fakeSplit
	splitErr error
}

type fakeSplit struct {
	name  Split
	files []string
}

func (b *fakeBuilder) Info() DatasetInfo { return b.info }

func (b *fakeBuilder) SplitGenerators(ctx context.Context, dm DownloadManager) ([]SplitGenerator, error) {
	if b.splitErr != nil {
		return nil, b.splitErr
	}

	dir, err := dm.DownloadAndExtract(ctx, b.url)
	if err != nil {
		return nil, err
	}

	gens := make([]SplitGenerator, 0, len(b.splits))
	for _, s := range b.splits {
		files := make(map[string]string, len(s.files))
		for _, f := range s.files {
			files[f] = filepath.Join(dir, f)
		}
		gens = append(gens, SplitGenerator{Name: s.name, Files: files})
	}
	return gens, nil
}

func (b *fakeBuilder) GenerateExamples(ctx context.Context, o Opener, g SplitGenerator, emit EmitFunc) error {
	keys := make([]string, 0, len(g.Files))
	for k := range g.Files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	id := 0
	for _, k := range keys {
		f, err := o.Open(g.Files[k])
		if err != nil {
			return err
		}
		lines, err := readLines(f)
		f.Close()
		if err != nil {
			return err
		}

		for _, line := range lines {
			text := strings.TrimSuffix(line, "\n")
			if err := emit(id, Translation{Source: text, Target: strings.ToUpper(text)}); err != nil {
				return err
			}
			id++
		}
	}
	return nil
}

// staticDM resolves every URL to a fixed local directory.
type staticDM struct {
	dir string
}

func (s staticDM) Download(ctx context.Context, url string) (string, error) {
	return s.dir, nil
}

func (s staticDM) DownloadAndExtract(ctx context.Context, url string) (string, error) {
	return s.dir, nil
}

func (s staticDM) Extract(ctx context.Context, path string) (string, error) {
	return path, nil
}

// writeTestTree writes the given relative-path-to-content files under dir.
func writeTestTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func newTestBuilder() *fakeBuilder {
	return &fakeBuilder{
		info: DatasetInfo{Name: "pairs", Version: "1.0.0"},
		url:  "https://example.com/pairs.tgz",
		splits: []fakeSplit{
			{name: SplitTrain, files: []string{"train.txt"}},
			{name: SplitTest, files: []string{"test.txt"}},
		},
	}
}

func TestTouchedFilesMockMode(t *testing.T) {
	b := newTestBuilder()
	mdm := &MockDownloadManager{DatasetName: "pairs", Version: "1.0.0", Root: t.TempDir()}

	files, err := TouchedFiles(context.Background(), b, mdm, nil, true)
	if err != nil {
		t.Fatalf("TouchedFiles() error = %v", err)
	}

	want := []string{
		filepath.Join("dummy_data", "train.txt"),
		filepath.Join("dummy_data", "test.txt"),
	}
	if len(files) != len(want) {
		t.Fatalf("TouchedFiles() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestTouchedFilesRealMode(t *testing.T) {
	dir := t.TempDir()
	writeTestTree(t, dir, map[string]string{
		"train.txt": "a\nb\n",
		"test.txt":  "c\n",
	})

	b := newTestBuilder()
	files, err := TouchedFiles(context.Background(), b, staticDM{dir: dir}, nil, false)
	if err != nil {
		t.Fatalf("TouchedFiles() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "train.txt"),
		filepath.Join(dir, "test.txt"),
	}
	if len(files) != len(want) {
		t.Fatalf("TouchedFiles() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestTouchedFilesNilBuilder(t *testing.T) {
	_, err := TouchedFiles(context.Background(), nil, staticDM{}, nil, true)
	if !errors.Is(err, ErrNilBuilder) {
		t.Errorf("TouchedFiles(nil) error = %v, want ErrNilBuilder", err)
	}
}

func TestTouchedFilesSplitGeneratorError(t *testing.T) {
	b := newTestBuilder()
	b.splitErr = errors.New("boom")

	_, err := TouchedFiles(context.Background(), b, staticDM{}, nil, true)
	if err == nil || !strings.Contains(err.Error(), "resolving split generators") {
		t.Errorf("error = %v, want wrapped split generator failure", err)
	}
}
