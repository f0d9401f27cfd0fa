package corpora

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// extractArchive unpacks the archive at src into dest. The format is chosen
// by file extension. Plain .gz files decompress to a single file inside dest
// named after the archive without its .gz suffix.
func extractArchive(ctx context.Context, src, dest string) error {
	lower := strings.ToLower(src)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return extractTar(ctx, src, dest, true)
	case strings.HasSuffix(lower, ".tar"):
		return extractTar(ctx, src, dest, false)
	case strings.HasSuffix(lower, ".zip"):
		return extractZip(ctx, src, dest)
	case strings.HasSuffix(lower, ".gz"):
		return extractGzip(src, dest)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedArchive, src)
	}
}

func extractTar(ctx context.Context, src, dest string, gzipped bool) error {
	f, err := os.Open(src)
	if err != nil {
		return WrapErrorf(err, "opening %s", src)
	}
	defer f.Close()

	var r io.Reader = f
	if gzipped {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return WrapErrorf(err, "reading %s", src)
		}
		defer gz.Close()
		r = gz
	}

	tr := tar.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return WrapErrorf(err, "reading %s", src)
		}

		target, err := securePath(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return WrapErrorf(err, "extracting %s", hdr.Name)
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr); err != nil {
				return WrapErrorf(err, "extracting %s", hdr.Name)
			}
		default:
			// Symlinks and special files are skipped.
		}
	}
}

func extractZip(ctx context.Context, src, dest string) error {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return WrapErrorf(err, "opening %s", src)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target, err := securePath(dest, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return WrapErrorf(err, "extracting %s", f.Name)
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return WrapErrorf(err, "extracting %s", f.Name)
		}
		err = writeEntry(target, rc)
		rc.Close()
		if err != nil {
			return WrapErrorf(err, "extracting %s", f.Name)
		}
	}
	return nil
}

func extractGzip(src, dest string) error {
	f, err := os.Open(src)
	if err != nil {
		return WrapErrorf(err, "opening %s", src)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return WrapErrorf(err, "reading %s", src)
	}
	defer gz.Close()

	name := strings.TrimSuffix(filepath.Base(src), ".gz")
	if name == "" {
		name = "data"
	}
	if err := writeEntry(filepath.Join(dest, name), gz); err != nil {
		return WrapErrorf(err, "extracting %s", src)
	}
	return nil
}

// securePath joins name under dest and rejects entries that would escape it.
func securePath(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if target != dest && !strings.HasPrefix(target, dest+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: archive entry %q escapes extraction directory", ErrUnsupportedArchive, name)
	}
	return target, nil
}

func writeEntry(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
