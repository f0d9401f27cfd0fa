package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	corpora "github.com/jdziat/corpora-go"
)

// listDatasets prints the registered dataset names.
func listDatasets() error {
	names := corpora.Builders()
	if len(names) == 0 {
		fmt.Println("No datasets registered.")
		return nil
	}
	for _, name := range names {
		if configs := corpora.Configs(name); len(configs) > 0 {
			fmt.Printf("%s (%d configurations)\n", name, len(configs))
			continue
		}
		fmt.Println(name)
	}
	return nil
}

// datasetInfo prints the metadata for one dataset reference.
func datasetInfo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: corpora info <dataset>[/<config>]")
	}

	// Multi-config datasets need a configuration to build metadata. Fall
	// back to the first one and list the rest below.
	ref := args[0]
	name, config := corpora.ParseRef(ref)
	configs := corpora.Configs(name)
	if config == "" && len(configs) > 0 {
		ref = name + "/" + configs[0]
	}

	b, err := corpora.Open(ref)
	if err != nil {
		return err
	}
	info := b.Info()

	fmt.Printf("Name:     %s\n", info.Name)
	if info.Config != "" {
		fmt.Printf("Config:   %s\n", info.Config)
	}
	fmt.Printf("Version:  %s\n", info.Version)
	if info.Homepage != "" {
		fmt.Printf("Homepage: %s\n", info.Homepage)
	}
	if info.License != "" {
		fmt.Printf("License:  %s\n", info.License)
	}
	if len(info.Languages) > 0 {
		fmt.Printf("Languages: %s\n", strings.Join(info.Languages, ", "))
	}

	// Split names come from the builder itself. Resolving them under the
	// mock manager keeps info offline.
	mock := &corpora.MockDownloadManager{
		DatasetName: info.Name,
		ConfigName:  info.Config,
		Version:     info.Version,
		Root:        "datasets",
	}
	if gens, err := b.SplitGenerators(ctx, mock); err == nil && len(gens) > 0 {
		names := make([]string, len(gens))
		for i, g := range gens {
			names[i] = string(g.Name)
		}
		fmt.Printf("Splits:   %s\n", strings.Join(names, ", "))
	}

	if len(info.Features) > 0 {
		keys := make([]string, 0, len(info.Features))
		for k := range info.Features {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println("Features:")
		for _, k := range keys {
			fmt.Printf("  %s: %s\n", k, info.Features[k])
		}
	}

	if info.Description != "" {
		fmt.Printf("\n%s\n", strings.TrimSpace(info.Description))
	}

	if config == "" && len(configs) > 0 {
		fmt.Printf("\nConfigurations (%d):\n", len(configs))
		for _, c := range configs {
			fmt.Printf("  %s\n", c)
		}
	}
	return nil
}
