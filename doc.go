// Package corpora provides dataset builders for text corpora, a download
// manager with local caching, and tooling for generating the small dummy-data
// fixtures used to test builders without the real data.
//
// A dataset is described by a Builder: it declares its splits and their files
// via SplitGenerators, and produces records for a split via GenerateExamples.
// Builders never open files directly; all file access goes through an Opener
// passed in by the caller. This keeps builders testable and lets the dummy
// data tooling observe exactly which files a builder touches.
//
// # Quick Start
//
// Load a registered dataset and iterate its records:
//
//	builder, err := corpora.Open("iwslt2017/iwslt2017_de-en")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ds, err := corpora.Prepare(ctx, builder, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rows, _ := ds.Split(corpora.SplitTrain)
//	for _, row := range rows {
//	    t := row.Value.(corpora.Translation)
//	    fmt.Println(t.Source, "=>", t.Target)
//	}
//
// Datasets register themselves in init(), so import the ones you need:
//
//	import (
//	    _ "github.com/jdziat/corpora-go/datasets/iwslt2017"
//	    _ "github.com/jdziat/corpora-go/datasets/medal"
//	)
//
// # Downloads
//
// Prepare uses a DownloadManager to fetch and extract remote archives. The
// default HTTPDownloadManager caches downloads under the user cache directory,
// retries transient failures with exponential backoff, and records completed
// fetches in a local index so they can be listed and pruned later:
//
//	dm, err := corpora.NewHTTPDownloadManager(
//	    corpora.WithCacheDir("/data/corpora-cache"),
//	    corpora.WithMaxRetries(5),
//	)
//
// Set CORPORA_OFFLINE=1 to forbid network access; cached files are still
// served.
//
// # Dummy Data
//
// Builder tests run against tiny fixture archives instead of the real data.
// The DummyPlanner discovers which files a builder expects by driving it with
// a MockDownloadManager and a recording Opener, then either prints
// step-by-step instructions for creating the fixtures by hand or, with
// auto-zip enabled, cuts them from the real files automatically:
//
//	planner, err := corpora.NewDummyPlanner(builder,
//	    corpora.WithAutoZip(true),
//	    corpora.WithHeadTail(10, 2),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := planner.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// Builders returned by Open and the HTTPDownloadManager are safe for
// concurrent use. A TouchRecorder is not: it belongs to a single goroutine
// for the duration of a drive. Dataset values returned by Prepare are
// immutable and safe to share.
//
// # Subpackages
//
//   - [github.com/jdziat/corpora-go/datasets/iwslt2017]: parallel corpus of
//     TED talk transcripts for five languages.
//
//   - [github.com/jdziat/corpora-go/datasets/medal]: medical abbreviation
//     disambiguation corpus.
//
//   - [github.com/jdziat/corpora-go/corporatest]: test utilities including
//     scripted builders, in-memory openers and static download managers.
//
// # Examples
//
// See the examples directory for complete working examples:
//   - examples/basic: load a dataset and save a split as JSON Lines
//   - examples/dummydata: plan dummy data fixtures for a builder
//   - examples/testing: test dataset-loading code with corporatest
package corpora

// Version is the current library version.
// This is used in User-Agent headers and for debugging.
const Version = "1.0.0"
