package corpora

import (
	"io"
	"os"
	"path/filepath"
)

// Opener opens named files for reading. Builders receive an Opener instead of
// calling os.Open so that callers can observe, redirect or fake file access.
// Implementations should return errors that satisfy errors.Is(err,
// fs.ErrNotExist) for missing files, as os.Open does.
type Opener interface {
	// Open opens the named file for reading.
	Open(name string) (io.ReadCloser, error)
}

// OSOpener opens files from the local filesystem. If Root is non-empty,
// relative names are resolved beneath it; absolute names are used as-is.
// The zero value opens paths exactly as given.
type OSOpener struct {
	// Root is an optional base directory for relative names.
	Root string
}

// Open implements Opener.
func (o OSOpener) Open(name string) (io.ReadCloser, error) {
	if o.Root != "" && !filepath.IsAbs(name) {
		name = filepath.Join(o.Root, name)
	}
	return os.Open(name)
}

// Ensure OSOpener implements Opener.
var _ Opener = OSOpener{}
