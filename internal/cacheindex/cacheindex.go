// Package cacheindex tracks completed downloads in a local SQLite database
// so they can be listed and pruned without walking the cache directory.
package cacheindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	getCurrentMigration = `PRAGMA user_version;`
	setCurrentMigration = `PRAGMA user_version = ?;`
	setForeignKeyCheck  = `PRAGMA foreign_keys = ON;`
)

// ErrNotFound is returned by Get when no entry exists for a URL.
var ErrNotFound = errors.New("cacheindex: entry not found")

// Entry is one completed download.
type Entry struct {
	// URL is the source URL, unique per entry.
	URL string
	// Key is the hex SHA-256 of the URL, used to name cache files.
	Key string
	// Path is the downloaded file on disk.
	Path string
	// ExtractedPath is the extraction directory, if the file was extracted.
	ExtractedPath string
	// Size is the downloaded file size in bytes.
	Size int64
	// ETag is the ETag header of the response, if the server sent one.
	ETag string
	// FetchedAt is when the download completed.
	FetchedAt time.Time
}

// Index is a handle to the download index database.
type Index struct {
	db *sql.DB
}

type migration struct {
	name  string
	query string
}

var migrations = []migration{
	{name: "create downloads table", query: createDownloads},
}

// sql statements
const (
	createDownloads = `
	CREATE TABLE IF NOT EXISTS downloads (
		url TEXT PRIMARY KEY,
		key TEXT NOT NULL,
		path TEXT NOT NULL,
		extracted_path TEXT NOT NULL DEFAULT '',
		size INTEGER NOT NULL DEFAULT 0,
		etag TEXT NOT NULL DEFAULT '',
		fetched_at INTEGER NOT NULL
	)
	`

	upsertDownload = `
	INSERT INTO downloads (url, key, path, extracted_path, size, etag, fetched_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(url) DO UPDATE SET
		key = excluded.key,
		path = excluded.path,
		extracted_path = excluded.extracted_path,
		size = excluded.size,
		etag = excluded.etag,
		fetched_at = excluded.fetched_at
	`

	selectDownload = `
	SELECT url, key, path, extracted_path, size, etag, fetched_at
	FROM downloads WHERE url = ?
	`

	selectDownloads = `
	SELECT url, key, path, extracted_path, size, etag, fetched_at
	FROM downloads ORDER BY fetched_at DESC
	`

	selectStale = `
	SELECT url, key, path, extracted_path, size, etag, fetched_at
	FROM downloads WHERE fetched_at < ?
	`

	updateExtracted = `UPDATE downloads SET extracted_path = ? WHERE url = ?`

	deleteStale = `DELETE FROM downloads WHERE fetched_at < ?`
)

// Open opens (creating if necessary) the index database at path and brings
// its schema up to date.
func Open(ctx context.Context, path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cacheindex: opening %s: %w", path, err)
	}

	// SQLite allows a single writer; one connection keeps the pool honest.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, setForeignKeyCheck); err != nil {
		db.Close()
		return nil, fmt.Errorf("cacheindex: enabling foreign keys: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Index{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	var current int
	if err := db.QueryRowContext(ctx, getCurrentMigration).Scan(&current); err != nil {
		return fmt.Errorf("cacheindex: reading schema version: %w", err)
	}

	for num := current + 1; num <= len(migrations); num++ {
		if err := execMigration(ctx, db, num); err != nil {
			return fmt.Errorf("cacheindex: migration %d %q: %w", num, migrations[num-1].name, err)
		}
	}
	return nil
}

func execMigration(ctx context.Context, db *sql.DB, num int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migrations[num-1].query); err != nil {
		return err
	}

	// PRAGMA does not accept bound parameters.
	setQuery := strings.Replace(setCurrentMigration, "?", strconv.Itoa(num), 1)
	if _, err := tx.ExecContext(ctx, setQuery); err != nil {
		return err
	}

	return tx.Commit()
}

// Put inserts or replaces the entry for e.URL.
func (ix *Index) Put(ctx context.Context, e Entry) error {
	_, err := ix.db.ExecContext(ctx, upsertDownload,
		e.URL, e.Key, e.Path, e.ExtractedPath, e.Size, e.ETag, e.FetchedAt.Unix())
	if err != nil {
		return fmt.Errorf("cacheindex: storing %s: %w", e.URL, err)
	}
	return nil
}

// Get returns the entry for url, or ErrNotFound.
func (ix *Index) Get(ctx context.Context, url string) (*Entry, error) {
	e, err := scanEntry(ix.db.QueryRowContext(ctx, selectDownload, url))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cacheindex: loading %s: %w", url, err)
	}
	return e, nil
}

// SetExtracted records the extraction directory for url.
func (ix *Index) SetExtracted(ctx context.Context, url, extractedPath string) error {
	_, err := ix.db.ExecContext(ctx, updateExtracted, extractedPath, url)
	if err != nil {
		return fmt.Errorf("cacheindex: updating %s: %w", url, err)
	}
	return nil
}

// List returns all entries, newest first.
func (ix *Index) List(ctx context.Context) ([]Entry, error) {
	rows, err := ix.db.QueryContext(ctx, selectDownloads)
	if err != nil {
		return nil, fmt.Errorf("cacheindex: listing downloads: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("cacheindex: listing downloads: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Prune removes every entry fetched before cutoff, best-effort deletes the
// files it pointed at, and returns the removed entries.
func (ix *Index) Prune(ctx context.Context, cutoff time.Time) ([]Entry, error) {
	rows, err := ix.db.QueryContext(ctx, selectStale, cutoff.Unix())
	if err != nil {
		return nil, fmt.Errorf("cacheindex: selecting stale downloads: %w", err)
	}

	var stale []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("cacheindex: selecting stale downloads: %w", err)
		}
		stale = append(stale, *e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if _, err := ix.db.ExecContext(ctx, deleteStale, cutoff.Unix()); err != nil {
		return nil, fmt.Errorf("cacheindex: deleting stale downloads: %w", err)
	}

	for _, e := range stale {
		if e.Path != "" {
			os.Remove(e.Path)
		}
		if e.ExtractedPath != "" {
			os.RemoveAll(e.ExtractedPath)
		}
	}
	return stale, nil
}

// Close closes the underlying database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var e Entry
	var fetched int64
	err := row.Scan(&e.URL, &e.Key, &e.Path, &e.ExtractedPath, &e.Size, &e.ETag, &fetched)
	if err != nil {
		return nil, err
	}
	e.FetchedAt = time.Unix(fetched, 0).UTC()
	return &e, nil
}
