package corpora

import (
	"context"
	"fmt"
	"strings"
)

// Split names a standard dataset split.
type Split string

// Standard split names.
const (
	// SplitTrain is the training split.
	SplitTrain Split = "train"
	// SplitValidation is the validation (development) split.
	SplitValidation Split = "validation"
	// SplitTest is the held-out test split.
	SplitTest Split = "test"
)

// String returns the split name.
func (s Split) String() string {
	return string(s)
}

// DatasetInfo describes a dataset and, when the dataset has multiple
// configurations, the configuration a Builder was opened with.
type DatasetInfo struct {
	// Name is the dataset name, e.g. "iwslt2017".
	Name string `json:"name"`

	// Config is the configuration name for multi-config datasets,
	// e.g. "iwslt2017_de-en". Empty for single-config datasets.
	Config string `json:"config,omitempty"`

	// Version is the dataset version, e.g. "1.0.0".
	Version string `json:"version"`

	// Description is a human-readable summary of the dataset.
	Description string `json:"description,omitempty"`

	// Citation is the BibTeX citation for the dataset.
	Citation string `json:"citation,omitempty"`

	// Homepage is the dataset's documentation URL.
	Homepage string `json:"homepage,omitempty"`

	// License names the dataset license, if known.
	License string `json:"license,omitempty"`

	// Languages lists ISO 639-1 codes of the languages in the dataset.
	Languages []string `json:"languages,omitempty"`

	// Features maps record field names to their types, e.g.
	// {"source": "string", "target": "string"}.
	Features map[string]string `json:"features,omitempty"`
}

// Ref returns the registry reference for the dataset, either "name" or
// "name/config".
func (i DatasetInfo) Ref() string {
	if i.Config == "" {
		return i.Name
	}
	return i.Name + "/" + i.Config
}

// String returns a compact representation for logs and error messages.
func (i DatasetInfo) String() string {
	return fmt.Sprintf("DatasetInfo{Name: %q, Config: %q, Version: %q}", i.Name, i.Config, i.Version)
}

// SplitGenerator declares one split of a dataset: its name and the files
// GenerateExamples needs to produce it. Keys are builder-defined argument
// names ("source_file", "filepath", ...), values are paths as resolved by
// the download manager the builder was driven with.
type SplitGenerator struct {
	// Name is the split this generator produces.
	Name Split

	// Files maps argument names to file paths.
	Files map[string]string
}

// Translation is a single aligned sentence pair from a parallel corpus.
type Translation struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// EmitFunc receives one record during example generation. IDs start at 0 and
// increase by one for every record of a split. Returning an error stops
// generation and propagates to the GenerateExamples caller.
type EmitFunc func(id int, record any) error

// Builder produces a dataset: it knows the dataset's metadata, how its
// splits map to files, and how to turn those files into records.
//
// Implementations must resolve all remote resources through the provided
// DownloadManager and perform all file access through the provided Opener.
// SplitGenerators should avoid opening files; deferring opens to
// GenerateExamples lets the dummy data tooling plan fixtures with full
// guidance (see DummyPlanner).
type Builder interface {
	// Info returns the dataset metadata.
	Info() DatasetInfo

	// SplitGenerators resolves the dataset's source files through dm and
	// returns one generator per split, in a stable order.
	SplitGenerators(ctx context.Context, dm DownloadManager) ([]SplitGenerator, error)

	// GenerateExamples reads the files of g through o and emits every
	// record of the split in order.
	GenerateExamples(ctx context.Context, o Opener, g SplitGenerator, emit EmitFunc) error
}

// ParseRef splits a dataset reference of the form "name" or "name/config"
// into its parts.
func ParseRef(ref string) (name, config string) {
	name, config, _ = strings.Cut(ref, "/")
	return name, config
}
