package corpora

import (
	"context"
	"path/filepath"
)

// DummyFileName is the path every mock download resolves to. It is relative
// on purpose: builders receive it from SplitGenerators and pass it back to
// an Opener, which a DummyPlanner roots inside the dummy data folder.
const DummyFileName = "dummy_data"

// MockDownloadManager stands in for a real download manager when generating
// or consuming dummy data. It never touches the network or the archive on
// disk: every URL resolves to the single relative path DummyFileName, and
// extraction is the identity.
//
// Builders that download one archive and read files out of its extraction
// directory therefore end up asking the Opener for paths like
// "dummy_data/train.de-en.de", which is exactly the layout dummy archives
// use.
type MockDownloadManager struct {
	// DatasetName is the registered dataset name, e.g. "iwslt2017".
	DatasetName string

	// ConfigName is the builder config, e.g. "iwslt2017_de-en". May be
	// empty for datasets without configs.
	ConfigName string

	// Version is the dataset version, e.g. "1.0.0".
	Version string

	// Root is the datasets tree the dummy folder lives under.
	Root string
}

// DummyDataFolder returns the directory that holds (or will hold) the
// dataset's dummy archive: <root>/<dataset>/dummy/[<config>/]<version>.
func (m *MockDownloadManager) DummyDataFolder() string {
	return filepath.Join(m.Root, m.DatasetName, "dummy", m.ConfigName, m.Version)
}

// Download implements DownloadManager. Every URL resolves to DummyFileName.
func (m *MockDownloadManager) Download(ctx context.Context, url string) (string, error) {
	return DummyFileName, nil
}

// DownloadAndExtract implements DownloadManager. Every URL resolves to
// DummyFileName.
func (m *MockDownloadManager) DownloadAndExtract(ctx context.Context, url string) (string, error) {
	return DummyFileName, nil
}

// Extract implements DownloadManager. The path is returned unchanged, since
// dummy data is laid out pre-extracted.
func (m *MockDownloadManager) Extract(ctx context.Context, path string) (string, error) {
	return path, nil
}

// Ensure MockDownloadManager implements DownloadManager.
var _ DownloadManager = (*MockDownloadManager)(nil)
