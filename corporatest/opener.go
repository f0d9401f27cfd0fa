package corporatest

import (
	"io"
	"io/fs"
	"strings"

	corpora "github.com/jdziat/corpora-go"
)

// MemOpener is an Opener that serves file contents from memory. Missing
// names fail the way os.Open does, with an error satisfying
// errors.Is(err, fs.ErrNotExist), so code under test cannot tell the
// difference.
type MemOpener map[string]string

// Open implements corpora.Opener.
func (m MemOpener) Open(name string) (io.ReadCloser, error) {
	content, ok := m[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

// Ensure MemOpener implements Opener.
var _ corpora.Opener = MemOpener(nil)
