package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	corpora "github.com/jdziat/corpora-go"
	"github.com/jdziat/corpora-go/internal/cli/config"
)

// exportDataset generates a dataset and writes one file per split, plus a
// README.md dataset card, into the output directory.
func exportDataset(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "jsonl", "Output format, jsonl or parquet")
	out := fs.String("out", "", "Output directory (defaults to the dataset reference)")
	split := fs.String("split", "", "Export only the named split")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: corpora export [flags] <dataset>[/<config>]")
	}
	if *format != "jsonl" && *format != "parquet" {
		return fmt.Errorf("unknown format %q (want jsonl or parquet)", *format)
	}

	b, err := corpora.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	info := b.Info()

	dm, err := corpora.NewDownloadManagerFromEnv(cfg.DownloadOptions()...)
	if err != nil {
		return err
	}
	defer dm.Close()

	prep := &corpora.PrepareConfig{
		Downloads: dm,
		Logger:    corpora.NewSlogAdapter(cfg.Logger()),
	}
	if *split != "" {
		prep.Splits = []corpora.Split{corpora.Split(*split)}
	}

	ds, err := corpora.Prepare(ctx, b, prep)
	if err != nil {
		return err
	}

	dir := *out
	if dir == "" {
		dir = info.Name
		if info.Config != "" {
			dir = info.Name + "_" + info.Config
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, s := range ds.Splits() {
		path := filepath.Join(dir, string(s)+"."+*format)
		if *format == "parquet" {
			err = corpora.ExportParquet(ds, s, path)
		} else {
			err = corpora.ExportJSONL(ds, s, path)
		}
		if err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d rows)\n", path, ds.NumRows(s))
	}

	card, err := corpora.RenderCard(corpora.CardFor(info, ds.TotalRows()), corpora.CardBody(info))
	if err != nil {
		return err
	}
	readme := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readme, card, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", readme)
	return nil
}
