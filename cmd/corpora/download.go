package main

import (
	"context"
	"fmt"
	"sort"

	corpora "github.com/jdziat/corpora-go"
	"github.com/jdziat/corpora-go/internal/cli/config"
)

// downloadDataset fetches and extracts a dataset's source archives and
// prints where each split's files landed.
func downloadDataset(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: corpora download <dataset>[/<config>]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	b, err := corpora.Open(args[0])
	if err != nil {
		return err
	}

	dm, err := corpora.NewDownloadManagerFromEnv(cfg.DownloadOptions()...)
	if err != nil {
		return err
	}
	defer dm.Close()

	gens, err := b.SplitGenerators(ctx, dm)
	if err != nil {
		return err
	}

	for _, g := range gens {
		fmt.Printf("%s:\n", g.Name)
		keys := make([]string, 0, len(g.Files))
		for k := range g.Files {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s: %s\n", k, g.Files[k])
		}
	}
	return nil
}
