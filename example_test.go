package corpora_test

import (
	"context"
	"fmt"
	"path/filepath"

	corpora "github.com/jdziat/corpora-go"
)

// exampleBuilder is a minimal one-split builder used by the examples.
type exampleBuilder struct{}

func (exampleBuilder) Info() corpora.DatasetInfo {
	return corpora.DatasetInfo{Name: "pairs", Version: "1.0.0"}
}

func (exampleBuilder) SplitGenerators(ctx context.Context, dm corpora.DownloadManager) ([]corpora.SplitGenerator, error) {
	dir, err := dm.DownloadAndExtract(ctx, "https://example.com/pairs.tgz")
	if err != nil {
		return nil, err
	}
	return []corpora.SplitGenerator{
		{Name: corpora.SplitTrain, Files: map[string]string{"train": filepath.Join(dir, "train.txt")}},
	}, nil
}

func (exampleBuilder) GenerateExamples(ctx context.Context, o corpora.Opener, g corpora.SplitGenerator, emit corpora.EmitFunc) error {
	f, err := o.Open(g.Files["train"])
	if err != nil {
		return err
	}
	defer f.Close()
	// Empty input emits no records.
	return nil
}

// This example shows how a dataset reference splits into name and config.
func ExampleParseRef() {
	name, config := corpora.ParseRef("iwslt2017/iwslt2017_de-en")
	fmt.Println(name)
	fmt.Println(config)
	// Output:
	// iwslt2017
	// iwslt2017_de-en
}

// This example demonstrates the planner's flag validation: auto-zip is
// only usable together with head/tail bounds.
func ExampleNewDummyPlanner() {
	_, err := corpora.NewDummyPlanner(exampleBuilder{}, corpora.WithAutoZip(true))
	fmt.Println(err)
	// Output: corpora: auto-zip requires n-first or n-last to be set
}

// This example records which files a builder asks for without touching the
// filesystem.
func ExampleTouchRecorder() {
	rec := corpora.NewTouchRecorder(nil, true)

	for _, name := range []string{"a.txt", "b.txt", "a.txt"} {
		f, _ := rec.Open(name)
		f.Close()
	}

	fmt.Println(rec.Unique())
	// Output: [a.txt b.txt]
}

// This example shows where a dataset's dummy data folder lives.
func ExampleMockDownloadManager_DummyDataFolder() {
	mdm := &corpora.MockDownloadManager{
		DatasetName: "iwslt2017",
		ConfigName:  "iwslt2017_de-en",
		Version:     "1.0.0",
		Root:        "datasets",
	}
	fmt.Println(mdm.DummyDataFolder())
	// Output: datasets/iwslt2017/dummy/iwslt2017_de-en/1.0.0
}

// This example materializes a dataset entirely from mocks: the download
// manager resolves to placeholder paths and the opener serves empty files,
// so the result has the right shape with no rows.
func ExamplePrepare() {
	mdm := &corpora.MockDownloadManager{DatasetName: "pairs", Version: "1.0.0", Root: "datasets"}

	ds, err := corpora.Prepare(context.Background(), exampleBuilder{}, &corpora.PrepareConfig{
		Downloads: mdm,
		Opener:    corpora.NewTouchRecorder(nil, true),
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println(ds.Splits())
	fmt.Println(ds.NumRows(corpora.SplitTrain))
	// Output:
	// [train]
	// 0
}
