package main

import (
	"context"
	"flag"
	"fmt"

	corpora "github.com/jdziat/corpora-go"
	"github.com/jdziat/corpora-go/internal/cli/config"
)

// dummyDataFlags holds the parsed dummy-data command flags.
type dummyDataFlags struct {
	autoZip bool
	manual  bool
	nFirst  int
	nLast   int
	root    string
}

// dummyData plans dummy data for one dataset configuration, or for every
// configuration when the reference names none.
func dummyData(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fs := flag.NewFlagSet("dummy-data", flag.ExitOnError)
	autoZip := fs.Bool("auto-zip", cfg.DummyData.AutoZip, "Build dummy archives from the real downloads")
	nFirst := fs.Int("n-first", cfg.DummyData.NFirst, "Keep the first n lines of each file (requires -auto-zip)")
	nLast := fs.Int("n-last", cfg.DummyData.NLast, "Keep the last n lines of each file (requires -auto-zip)")
	manual := fs.Bool("requires-manual", false, "Dataset requires manually downloaded data")
	configName := fs.String("config", "", "Plan a single configuration")
	root := fs.String("root", cfg.DatasetsRoot, "Root directory holding per-dataset folders")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: corpora dummy-data [flags] <dataset>[/<config>]")
	}

	name, refConfig := corpora.ParseRef(fs.Arg(0))
	if *configName != "" {
		refConfig = *configName
	}

	configs := []string{refConfig}
	if refConfig == "" {
		if all := corpora.Configs(name); len(all) > 0 {
			configs = all
		}
	}

	f := dummyDataFlags{
		autoZip: *autoZip,
		manual:  *manual,
		nFirst:  *nFirst,
		nLast:   *nLast,
		root:    *root,
	}
	for _, c := range configs {
		ref := name
		if c != "" {
			ref = name + "/" + c
		}
		if err := planDummyData(ctx, cfg, ref, f); err != nil {
			return fmt.Errorf("%s: %w", ref, err)
		}
	}
	return nil
}

// planDummyData runs the planner for one dataset reference.
func planDummyData(ctx context.Context, cfg *config.Config, ref string, f dummyDataFlags) error {
	b, err := corpora.Open(ref)
	if err != nil {
		return err
	}

	opts := []corpora.PlannerOption{
		corpora.WithDatasetsRoot(f.root),
		corpora.WithAutoZip(f.autoZip),
		corpora.WithHeadTail(f.nFirst, f.nLast),
		corpora.WithRequiresManual(f.manual),
		corpora.WithPlannerLogger(corpora.NewSlogAdapter(cfg.Logger())),
	}

	// Auto-zip reads the real dataset files, so it needs a download
	// manager. Instruction-only planning runs entirely offline.
	if f.autoZip {
		dm, err := corpora.NewDownloadManagerFromEnv(cfg.DownloadOptions()...)
		if err != nil {
			return err
		}
		defer dm.Close()
		opts = append(opts, corpora.WithDownloads(dm))
	}

	planner, err := corpora.NewDummyPlanner(b, opts...)
	if err != nil {
		return err
	}
	return planner.Run(ctx)
}
