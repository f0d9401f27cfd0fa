package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	corpora "github.com/jdziat/corpora-go"
	"github.com/jdziat/corpora-go/internal/cli/config"
)

// cacheCommand inspects or prunes the download cache index.
func cacheCommand(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: corpora cache <list|prune> [flags]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dm, err := corpora.NewDownloadManagerFromEnv(cfg.DownloadOptions()...)
	if err != nil {
		return err
	}
	defer dm.Close()

	switch args[0] {
	case "list":
		return cacheList(ctx, dm)
	case "prune":
		fs := flag.NewFlagSet("cache prune", flag.ExitOnError)
		olderThan := fs.Duration("older-than", 30*24*time.Hour, "Remove entries fetched longer ago than this")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return cachePrune(ctx, dm, *olderThan)
	default:
		return fmt.Errorf("unknown cache subcommand %q (want list or prune)", args[0])
	}
}

// cacheList prints every indexed download, newest first.
func cacheList(ctx context.Context, dm *corpora.HTTPDownloadManager) error {
	ix := dm.Index()
	if ix == nil {
		fmt.Println("Download index is disabled.")
		return nil
	}

	entries, err := ix.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Cache is empty.")
		return nil
	}

	var total int64
	for _, e := range entries {
		total += e.Size
		fmt.Printf("%s  %10s  %s\n", e.FetchedAt.Format("2006-01-02"), humanize.Bytes(uint64(e.Size)), e.URL)
	}
	fmt.Printf("%d entries, %s total in %s\n", len(entries), humanize.Bytes(uint64(total)), dm.CacheDir())
	return nil
}

// cachePrune removes index entries older than the cutoff along with their
// files.
func cachePrune(ctx context.Context, dm *corpora.HTTPDownloadManager, olderThan time.Duration) error {
	ix := dm.Index()
	if ix == nil {
		fmt.Println("Download index is disabled.")
		return nil
	}

	removed, err := ix.Prune(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return err
	}

	var total int64
	for _, e := range removed {
		total += e.Size
		fmt.Printf("removed %s\n", e.URL)
	}
	fmt.Printf("%d entries removed, %s freed\n", len(removed), humanize.Bytes(uint64(total)))
	return nil
}
