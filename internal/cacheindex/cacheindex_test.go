package cacheindex

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := Open(context.Background(), filepath.Join(t.TempDir(), "downloads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })
	return ix
}

func testEntry(url string, fetchedAt time.Time) Entry {
	return Entry{
		URL:       url,
		Key:       "abc123",
		Path:      "/cache/downloads/abc123.tgz",
		Size:      1024,
		ETag:      `"etag-1"`,
		FetchedAt: fetchedAt,
	}
}

func TestPutGet(t *testing.T) {
	ix := openTestIndex(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	in := testEntry("https://example.com/a.tgz", now)
	require.NoError(t, ix.Put(ctx, in))

	out, err := ix.Get(ctx, "https://example.com/a.tgz")
	require.NoError(t, err)
	require.Equal(t, in.URL, out.URL)
	require.Equal(t, in.Key, out.Key)
	require.Equal(t, in.Path, out.Path)
	require.Equal(t, in.Size, out.Size)
	require.Equal(t, in.ETag, out.ETag)
	require.True(t, out.FetchedAt.Equal(now))
}

func TestGetNotFound(t *testing.T) {
	ix := openTestIndex(t)

	_, err := ix.Get(context.Background(), "https://example.com/missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPutUpserts(t *testing.T) {
	ix := openTestIndex(t)
	ctx := context.Background()

	e := testEntry("https://example.com/a.tgz", time.Now().UTC())
	require.NoError(t, ix.Put(ctx, e))

	e.Size = 2048
	e.ETag = `"etag-2"`
	require.NoError(t, ix.Put(ctx, e))

	out, err := ix.Get(ctx, e.URL)
	require.NoError(t, err)
	require.Equal(t, int64(2048), out.Size)
	require.Equal(t, `"etag-2"`, out.ETag)

	entries, err := ix.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSetExtracted(t *testing.T) {
	ix := openTestIndex(t)
	ctx := context.Background()

	e := testEntry("https://example.com/a.tgz", time.Now().UTC())
	require.NoError(t, ix.Put(ctx, e))
	require.NoError(t, ix.SetExtracted(ctx, e.URL, "/cache/extracted/abc123"))

	out, err := ix.Get(ctx, e.URL)
	require.NoError(t, err)
	require.Equal(t, "/cache/extracted/abc123", out.ExtractedPath)
}

func TestListNewestFirst(t *testing.T) {
	ix := openTestIndex(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, ix.Put(ctx, testEntry("https://example.com/old.tgz", base.Add(-time.Hour))))
	require.NoError(t, ix.Put(ctx, testEntry("https://example.com/new.tgz", base)))

	entries, err := ix.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "https://example.com/new.tgz", entries[0].URL)
	require.Equal(t, "https://example.com/old.tgz", entries[1].URL)
}

func TestPruneRemovesStaleEntriesAndFiles(t *testing.T) {
	ix := openTestIndex(t)
	ctx := context.Background()

	dir := t.TempDir()
	stalePath := filepath.Join(dir, "stale.tgz")
	require.NoError(t, os.WriteFile(stalePath, []byte("x"), 0o644))
	staleDir := filepath.Join(dir, "stale-extracted")
	require.NoError(t, os.MkdirAll(staleDir, 0o755))

	base := time.Now().UTC().Truncate(time.Second)

	stale := testEntry("https://example.com/stale.tgz", base.Add(-48*time.Hour))
	stale.Path = stalePath
	stale.ExtractedPath = staleDir
	require.NoError(t, ix.Put(ctx, stale))

	fresh := testEntry("https://example.com/fresh.tgz", base)
	require.NoError(t, ix.Put(ctx, fresh))

	removed, err := ix.Prune(ctx, base.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, removed, 1)
	require.Equal(t, stale.URL, removed[0].URL)

	_, err = os.Stat(stalePath)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(staleDir)
	require.True(t, os.IsNotExist(err))

	_, err = ix.Get(ctx, stale.URL)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = ix.Get(ctx, fresh.URL)
	require.NoError(t, err)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "downloads.db")
	ctx := context.Background()

	ix, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, ix.Put(ctx, testEntry("https://example.com/a.tgz", time.Now().UTC())))
	require.NoError(t, ix.Close())

	// Reopening runs migrations again, which must be a no-op.
	ix, err = Open(ctx, path)
	require.NoError(t, err)
	defer ix.Close()

	entries, err := ix.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
