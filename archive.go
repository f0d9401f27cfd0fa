package corpora

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
)

// DummyArchiveName is the archive a dummy data folder must contain.
const DummyArchiveName = DummyFileName + ".zip"

// writeDummyArchive zips the given members, all paths relative to folder,
// into folder/dummy_data.zip. Member names keep their relative form with
// forward slashes so the archive unpacks identically everywhere.
func writeDummyArchive(folder string, members []string) error {
	f, err := os.Create(filepath.Join(folder, DummyArchiveName))
	if err != nil {
		return WrapError(err, "creating dummy archive")
	}
	zw := zip.NewWriter(f)

	for _, member := range members {
		src, err := os.Open(filepath.Join(folder, member))
		if err != nil {
			zw.Close()
			f.Close()
			return WrapErrorf(err, "archiving %s", member)
		}

		w, err := zw.Create(filepath.ToSlash(member))
		if err == nil {
			_, err = io.Copy(w, src)
		}
		src.Close()
		if err != nil {
			zw.Close()
			f.Close()
			return WrapErrorf(err, "archiving %s", member)
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return WrapError(err, "finishing dummy archive")
	}
	return f.Close()
}

// cleanDummyFolder removes everything in folder except the dummy archive,
// leaving the folder in the state a dataset consumer expects.
func cleanDummyFolder(folder string) error {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return WrapError(err, "cleaning dummy folder")
	}
	for _, entry := range entries {
		if entry.Name() == DummyArchiveName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(folder, entry.Name())); err != nil {
			return WrapError(err, "cleaning dummy folder")
		}
	}
	return nil
}
