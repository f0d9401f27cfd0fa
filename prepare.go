package corpora

import (
	"context"
	"fmt"
)

// PrepareConfig controls how a dataset is materialized. The zero value
// downloads with a manager built from the environment and reads files from
// the local filesystem.
type PrepareConfig struct {
	// Downloads resolves the builder's data files.
	// Defaults to NewDownloadManagerFromEnv if not set.
	Downloads DownloadManager

	// Opener opens the resolved files for reading.
	// Defaults to OSOpener{} if not set.
	Opener Opener

	// Splits restricts generation to the named splits. All declared
	// splits are generated if not set.
	Splits []Split

	// Logger receives progress events. Defaults to NopLogger{} if not
	// set.
	Logger StructuredLogger
}

// Prepare downloads and generates every split of a builder and returns the
// materialized dataset.
//
// Builders must emit sequential ids starting at 0 within each split;
// Prepare rejects a split whose ids are out of order.
func Prepare(ctx context.Context, b Builder, cfg *PrepareConfig) (*Dataset, error) {
	if b == nil {
		return nil, ErrNilBuilder
	}
	if cfg == nil {
		cfg = &PrepareConfig{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	opener := cfg.Opener
	if opener == nil {
		opener = OSOpener{}
	}

	dm := cfg.Downloads
	if dm == nil {
		httpDM, err := NewDownloadManagerFromEnv()
		if err != nil {
			return nil, WrapError(err, "creating download manager")
		}
		defer httpDM.Close()
		dm = httpDM
	}

	info := b.Info()
	logger.Info("preparing dataset", "dataset", info.Ref())

	gens, err := b.SplitGenerators(ctx, dm)
	if err != nil {
		return nil, WrapError(err, "resolving split generators")
	}

	var wanted map[Split]bool
	if len(cfg.Splits) > 0 {
		wanted = make(map[Split]bool, len(cfg.Splits))
		for _, s := range cfg.Splits {
			wanted[s] = true
		}
	}

	d := &Dataset{info: info, rows: make(map[Split][]Row)}

	for _, g := range gens {
		if wanted != nil && !wanted[g.Name] {
			continue
		}

		var rows []Row
		emit := func(id int, record any) error {
			if id != len(rows) {
				return fmt.Errorf("corpora: split %q: non-sequential id %d (want %d)", g.Name, id, len(rows))
			}
			rows = append(rows, Row{ID: id, Value: record})
			return nil
		}

		if err := b.GenerateExamples(ctx, opener, g, emit); err != nil {
			return nil, WrapErrorf(err, "generating split %q", g.Name)
		}

		d.splits = append(d.splits, g.Name)
		d.rows[g.Name] = rows
		logger.Info("generated split", "split", g.Name, "rows", len(rows))
	}

	if wanted != nil {
		for _, s := range cfg.Splits {
			if _, ok := d.rows[s]; !ok {
				return nil, fmt.Errorf("%w: %q (declared: %v)", ErrSplitNotFound, s, splitNames(gens))
			}
		}
	}

	return d, nil
}

// Load opens a dataset reference and prepares it in one call.
//
// Example:
//
//	ds, err := corpora.Load(ctx, "iwslt2017/iwslt2017_de-en", nil)
func Load(ctx context.Context, ref string, cfg *PrepareConfig) (*Dataset, error) {
	b, err := Open(ref)
	if err != nil {
		return nil, err
	}
	return Prepare(ctx, b, cfg)
}

func splitNames(gens []SplitGenerator) []Split {
	names := make([]Split, len(gens))
	for i, g := range gens {
		names[i] = g.Name
	}
	return names
}
