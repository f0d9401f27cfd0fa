package corpora

import "context"

// DiscardRecords is an EmitFunc that ignores every record. Use it to drive a
// builder for its side effects only, such as recording file access.
func DiscardRecords(int, any) error { return nil }

// TouchedFiles resolves the splits of b through dm and drives every split's
// example generation to exhaustion under a TouchRecorder. It returns the
// files the builder opened, in open order and with duplicates retained.
//
// With mock set, opens never touch the filesystem and succeed with empty
// handles, so the returned paths are the files the builder expects rather
// than files that exist. With mock unset, opens go through base (OSOpener
// when base is nil) and read the real data in full.
func TouchedFiles(ctx context.Context, b Builder, dm DownloadManager, base Opener, mock bool) ([]string, error) {
	if b == nil {
		return nil, ErrNilBuilder
	}

	gens, err := b.SplitGenerators(ctx, dm)
	if err != nil {
		return nil, WrapError(err, "resolving split generators")
	}

	rec := NewTouchRecorder(base, mock)
	for _, g := range gens {
		if err := b.GenerateExamples(ctx, rec, g, DiscardRecords); err != nil {
			return nil, WrapErrorf(err, "driving split %q", g.Name)
		}
	}
	return rec.Paths(), nil
}
