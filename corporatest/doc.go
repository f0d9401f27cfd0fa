// Package corporatest provides testing utilities for applications using the
// corpora-go library.
//
// The package provides fake implementations of the library's interfaces so
// builders and the tools built on them can be tested without network access
// or real fixture downloads.
//
// # In-Memory Files
//
// Use MemOpener to serve file contents from memory:
//
//	o := corporatest.MemOpener{
//	    "train.de": "Hallo\nWelt\n",
//	    "train.en": "Hello\nWorld\n",
//	}
//	err := builder.GenerateExamples(ctx, o, gen, emit)
//
// # Static Downloads
//
// Use StaticDownloadManager to point builders at fixture trees on disk:
//
//	dm := &corporatest.StaticDownloadManager{Dir: fixtureDir}
//	gens, err := builder.SplitGenerators(ctx, dm)
//
// # Scripted Builders
//
// Use ScriptedBuilder to test tools that consume builders:
//
//	b := &corporatest.ScriptedBuilder{
//	    DatasetInfo: corpora.DatasetInfo{Name: "fixture", Version: "1.0.0"},
//	    Splits: []corporatest.ScriptedSplit{
//	        {Name: corpora.SplitTrain, Rows: []any{"a", "b"}},
//	    },
//	}
//	ds, err := corpora.Prepare(ctx, b, nil)
//
// # Captured Logs
//
// Use MockLogger to verify structured log output:
//
//	logger := corporatest.NewMockLogger()
//	planner, _ := corpora.NewDummyPlanner(b, corpora.WithPlannerLogger(logger))
//	// ... use planner ...
//	if logger.Count() == 0 {
//	    t.Error("expected log output")
//	}
//
// # Captured Metrics
//
// Use MockMetrics to verify download measurements:
//
//	metrics := corporatest.NewMockMetrics()
//	dm, _ := corpora.NewHTTPDownloadManager(corpora.WithMetrics(metrics))
//	// ... use dm ...
//	hits := metrics.Counter(corpora.DefaultDownloadMetricNames.CacheHits)
package corporatest
