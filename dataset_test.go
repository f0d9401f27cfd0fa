package corpora

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func prepareTestDataset(t *testing.T, cfg *PrepareConfig) *Dataset {
	t.Helper()
	dir := t.TempDir()
	writeTestTree(t, dir, map[string]string{
		"train.txt": "guten tag\nhallo\n",
		"test.txt":  "danke\n",
	})
	if cfg == nil {
		cfg = &PrepareConfig{}
	}
	if cfg.Downloads == nil {
		cfg.Downloads = staticDM{dir: dir}
	}

	ds, err := Prepare(context.Background(), newTestBuilder(), cfg)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return ds
}

func TestPrepareMaterializesSplits(t *testing.T) {
	ds := prepareTestDataset(t, nil)

	splits := ds.Splits()
	if len(splits) != 2 || splits[0] != SplitTrain || splits[1] != SplitTest {
		t.Fatalf("Splits() = %v, want [train test]", splits)
	}

	rows, err := ds.Split(SplitTrain)
	if err != nil {
		t.Fatalf("Split(train) error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("train has %d rows, want 2", len(rows))
	}

	first, ok := rows[0].Value.(Translation)
	if !ok {
		t.Fatalf("row value is %T, want Translation", rows[0].Value)
	}
	if first.Source != "guten tag" || first.Target != "GUTEN TAG" {
		t.Errorf("first row = %+v", first)
	}
	if rows[0].ID != 0 || rows[1].ID != 1 {
		t.Errorf("ids = %d, %d, want 0, 1", rows[0].ID, rows[1].ID)
	}

	if got := ds.NumRows(SplitTest); got != 1 {
		t.Errorf("NumRows(test) = %d, want 1", got)
	}
	if got := ds.TotalRows(); got != 3 {
		t.Errorf("TotalRows() = %d, want 3", got)
	}
}

func TestDatasetSplitNotFound(t *testing.T) {
	ds := prepareTestDataset(t, nil)

	_, err := ds.Split(SplitValidation)
	if !errors.Is(err, ErrSplitNotFound) {
		t.Fatalf("Split(validation) error = %v, want ErrSplitNotFound", err)
	}
	if !strings.Contains(err.Error(), "available: [train test]") {
		t.Errorf("error should list available splits, got %q", err)
	}
}

func TestPrepareSplitFilter(t *testing.T) {
	ds := prepareTestDataset(t, &PrepareConfig{Splits: []Split{SplitTest}})

	if got := ds.Splits(); len(got) != 1 || got[0] != SplitTest {
		t.Errorf("Splits() = %v, want [test]", got)
	}
	if _, err := ds.Split(SplitTrain); !errors.Is(err, ErrSplitNotFound) {
		t.Error("filtered-out split should not be present")
	}
}

func TestPrepareUnknownSplitFilter(t *testing.T) {
	dir := t.TempDir()
	writeTestTree(t, dir, map[string]string{"train.txt": "a\n", "test.txt": "b\n"})

	_, err := Prepare(context.Background(), newTestBuilder(), &PrepareConfig{
		Downloads: staticDM{dir: dir},
		Splits:    []Split{"nonesuch"},
	})
	if !errors.Is(err, ErrSplitNotFound) {
		t.Errorf("Prepare() error = %v, want ErrSplitNotFound", err)
	}
}

func TestPrepareNilBuilder(t *testing.T) {
	_, err := Prepare(context.Background(), nil, nil)
	if !errors.Is(err, ErrNilBuilder) {
		t.Errorf("Prepare(nil) error = %v, want ErrNilBuilder", err)
	}
}

func TestPrepareRejectsNonSequentialIDs(t *testing.T) {
	dir := t.TempDir()
	writeTestTree(t, dir, map[string]string{"train.txt": "a\nb\n", "test.txt": "c\n"})

	b := &skippingBuilder{inner: newTestBuilder()}
	_, err := Prepare(context.Background(), b, &PrepareConfig{Downloads: staticDM{dir: dir}})
	if err == nil || !strings.Contains(err.Error(), "non-sequential id") {
		t.Errorf("Prepare() error = %v, want non-sequential id failure", err)
	}
}

// skippingBuilder emits ids with a gap.
type skippingBuilder struct {
	inner *fakeBuilder
}

func (b *skippingBuilder) Info() DatasetInfo { return b.inner.Info() }

func (b *skippingBuilder) SplitGenerators(ctx context.Context, dm DownloadManager) ([]SplitGenerator, error) {
	return b.inner.SplitGenerators(ctx, dm)
}

func (b *skippingBuilder) GenerateExamples(ctx context.Context, o Opener, g SplitGenerator, emit EmitFunc) error {
	wrapped := func(id int, record any) error {
		return emit(id*2, record)
	}
	return b.inner.GenerateExamples(ctx, o, g, wrapped)
}

func TestSaveJSONL(t *testing.T) {
	ds := prepareTestDataset(t, nil)

	var buf bytes.Buffer
	if err := ds.SaveJSONL(SplitTrain, &buf); err != nil {
		t.Fatalf("SaveJSONL() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("wrote %d lines, want 2", len(lines))
	}
	if lines[0] != `{"source":"guten tag","target":"GUTEN TAG"}` {
		t.Errorf("first line = %s", lines[0])
	}
}

func TestDatasetCard(t *testing.T) {
	ds := prepareTestDataset(t, nil)
	card := ds.Card()
	if card.PrettyName != "pairs" {
		t.Errorf("PrettyName = %q, want %q", card.PrettyName, "pairs")
	}
	if len(card.SizeCategories) != 1 || card.SizeCategories[0] != "n<1K" {
		t.Errorf("SizeCategories = %v, want [n<1K]", card.SizeCategories)
	}
}
