// Package main provides the corpora CLI for inspecting, downloading, and
// exporting datasets and for planning their dummy test data.
package main

import (
	"context"
	"fmt"
	"os"

	corpora "github.com/jdziat/corpora-go"

	// Register the bundled datasets.
	_ "github.com/jdziat/corpora-go/datasets/iwslt2017"
	_ "github.com/jdziat/corpora-go/datasets/medal"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "list":
		err = listDatasets()
	case "info":
		err = datasetInfo(ctx, os.Args[2:])
	case "download":
		err = downloadDataset(ctx, os.Args[2:])
	case "export":
		err = exportDataset(ctx, os.Args[2:])
	case "dummy-data":
		err = dummyData(ctx, os.Args[2:])
	case "cache":
		err = cacheCommand(ctx, os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("corpora version %s\n", corpora.Version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`corpora - Dataset loading, export, and dummy data tooling

Usage:
  corpora <command> [flags] [arguments]

Commands:
  list                  List the registered datasets
  info <dataset>        Show dataset metadata and configurations
  download <dataset>    Download and extract a dataset's source files
  export <dataset>      Generate a dataset and write it to disk
  dummy-data <dataset>  Plan or build dummy data for a dataset's tests
  cache <list|prune>    Inspect or prune the download cache
  version               Print version information
  help                  Show this help message

Datasets are referenced as "name" or "name/config", e.g.
"iwslt2017/iwslt2017_de-en". Run "corpora <command> -h" for command flags.

Environment Variables:
  CORPORA_CACHE_DIR      Download cache directory
  CORPORA_DATASETS_ROOT  Root directory holding per-dataset folders
  CORPORA_OFFLINE        Set to "true" to serve downloads from cache only
  CORPORA_DEBUG          Set to "true" for debug logging

Configuration:
  Create .corpora.yaml in your project root to change the defaults.
  Flags and environment variables override it.`)
}
