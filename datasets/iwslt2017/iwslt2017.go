// Package iwslt2017 provides the multilingual TED Talks translation task of
// the IWSLT 2017 evaluation campaign.
//
// The task covers five languages (German, English, Italian, Dutch and
// Romanian) and the dataset has one configuration per ordered language pair,
// named "iwslt2017_<source>-<target>":
//
//	builder, err := corpora.Open("iwslt2017/iwslt2017_de-en")
//
// Importing the package registers the dataset:
//
//	import _ "github.com/jdziat/corpora-go/datasets/iwslt2017"
package iwslt2017

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	corpora "github.com/jdziat/corpora-go"
)

// Name is the registry name of the dataset.
const Name = "iwslt2017"

// Version is the dataset version.
const Version = "1.0.0"

// All language pairs share one multilingual archive. The corpus files live
// in the dataDir directory inside it.
const (
	downloadURL = "https://wit3.fbk.eu/archive/2017-01-trnmted//texts/DeEnItNlRo/DeEnItNlRo/DeEnItNlRo-DeEnItNlRo.tgz"
	dataDir     = "DeEnItNlRo-DeEnItNlRo"
)

const description = `The IWSLT 2017 Evaluation Campaign includes a multilingual TED Talks MT task. The languages involved are five:

  German, English, Italian, Dutch, Romanian.

For each language pair, training and development sets are available through the entry of the table below: by clicking, an archive will be downloaded which contains the sets and a README file. Numbers in the table refer to millions of units (untokenized words) of the target side of all parallel training sets.
`

const citation = `@inproceedings{cettoloEtAl:EAMT2012,
Address = {Trento, Italy},
Author = {Mauro Cettolo and Christian Girardi and Marcello Federico},
Booktitle = {Proceedings of the 16$^{th}$ Conference of the European Association for Machine Translation (EAMT)},
Date = {28-30},
Month = {May},
Pages = {261--268},
Title = {WIT$^3$: Web Inventory of Transcribed and Translated Talks},
Year = {2012}}
`

// Languages lists the languages of the multilingual task as ISO 639-1 codes.
var Languages = []string{"de", "en", "it", "nl", "ro"}

func init() {
	corpora.Register(Name, func(config string) (corpora.Builder, error) {
		return New(config)
	})
	corpora.RegisterConfigs(Name, Configs()...)
}

// Pairs returns every ordered language pair of the task, "de-en" through
// "ro-nl". A language is never paired with itself.
func Pairs() []string {
	pairs := make([]string, 0, len(Languages)*(len(Languages)-1))
	for _, a := range Languages {
		for _, b := range Languages {
			if a == b {
				continue
			}
			pairs = append(pairs, a+"-"+b)
		}
	}
	return pairs
}

// Configs returns the configuration names of the dataset, one per ordered
// language pair, in the order Pairs returns them.
func Configs() []string {
	pairs := Pairs()
	configs := make([]string, len(pairs))
	for i, pair := range pairs {
		configs[i] = Name + "_" + pair
	}
	return configs
}

// Builder loads one language pair of the corpus.
type Builder struct {
	pair   string
	source string
	target string
}

// New returns a builder for the given configuration name, e.g.
// "iwslt2017_de-en". A configuration is required; the dataset has one per
// language pair.
func New(config string) (*Builder, error) {
	for _, known := range Configs() {
		if config != known {
			continue
		}
		pair := strings.TrimPrefix(config, Name+"_")
		source, target, _ := strings.Cut(pair, "-")
		return &Builder{pair: pair, source: source, target: target}, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %v)", corpora.ErrUnknownConfig, config, Configs())
}

// Info implements corpora.Builder.
func (b *Builder) Info() corpora.DatasetInfo {
	return corpora.DatasetInfo{
		Name:        Name,
		Config:      Name + "_" + b.pair,
		Version:     Version,
		Description: description,
		Citation:    citation,
		Homepage:    "https://sites.google.com/site/iwsltevaluation2017/TED-tasks",
		Languages:   []string{b.source, b.target},
		Features: map[string]string{
			"source": "string",
			"target": "string",
		},
	}
}

// SplitGenerators implements corpora.Builder. It resolves the multilingual
// archive through dm and maps each split to the pair's source and target
// files: plain tagged text for train, the campaign's XML for test and
// validation.
func (b *Builder) SplitGenerators(ctx context.Context, dm corpora.DownloadManager) ([]corpora.SplitGenerator, error) {
	dlDir, err := dm.DownloadAndExtract(ctx, downloadURL)
	if err != nil {
		return nil, fmt.Errorf("iwslt2017: resolving archive: %w", err)
	}
	dir := filepath.Join(dlDir, dataDir)

	trainFile := func(lang string) string {
		return filepath.Join(dir, fmt.Sprintf("train.tags.%s.%s", b.pair, lang))
	}
	testFile := func(lang string) string {
		return filepath.Join(dir, fmt.Sprintf("IWSLT17.TED.tst2010.%s.%s.xml", b.pair, lang))
	}
	devFile := func(lang string) string {
		return filepath.Join(dir, fmt.Sprintf("IWSLT17.TED.dev2010.%s.%s.xml", b.pair, lang))
	}

	return []corpora.SplitGenerator{
		{
			Name: corpora.SplitTrain,
			Files: map[string]string{
				"source_file": trainFile(b.source),
				"target_file": trainFile(b.target),
			},
		},
		{
			Name: corpora.SplitTest,
			Files: map[string]string{
				"source_file": testFile(b.source),
				"target_file": testFile(b.target),
			},
		},
		{
			Name: corpora.SplitValidation,
			Files: map[string]string{
				"source_file": devFile(b.source),
				"target_file": devFile(b.target),
			},
		},
	}, nil
}

// GenerateExamples implements corpora.Builder. It streams the split's source
// and target files side by side and emits one Translation per aligned pair.
func (b *Builder) GenerateExamples(ctx context.Context, o corpora.Opener, g corpora.SplitGenerator, emit corpora.EmitFunc) error {
	sourceFile := g.Files["source_file"]
	targetFile := g.Files["target_file"]
	if sourceFile == "" || targetFile == "" {
		return fmt.Errorf("iwslt2017: split %q is missing source_file or target_file", g.Name)
	}

	sf, err := o.Open(sourceFile)
	if err != nil {
		return err
	}
	defer sf.Close()

	tf, err := o.Open(targetFile)
	if err != nil {
		return err
	}
	defer tf.Close()

	return extractPairs(ctx, sourceFile, sf, targetFile, tf, emit)
}

// extractPairs aligns two corpus files line by line. Lines are paired
// positionally and pairing stops at the end of the shorter file, so an
// unmatched tail in the longer file is dropped. What happens to a pair is
// decided by its source line after trimming:
//
//   - a "<seg" line is reduced to its segment text, on both sides
//   - any other "<" line is document markup and is skipped, on both sides,
//     without consuming a record id
//   - everything else is emitted as-is
//
// A "<seg" pair whose source or target line has no ">" is malformed and
// stops generation with a SegmentError.
func extractPairs(ctx context.Context, sourceName string, source io.Reader, targetName string, target io.Reader, emit corpora.EmitFunc) error {
	sr := bufio.NewReader(source)
	tr := bufio.NewReader(target)

	id := 0
	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		sourceRow, err := sr.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("iwslt2017: reading %s: %w", sourceName, err)
		}
		if sourceRow == "" && err == io.EOF {
			return nil
		}

		targetRow, err := tr.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("iwslt2017: reading %s: %w", targetName, err)
		}
		if targetRow == "" && err == io.EOF {
			return nil
		}

		sourceRow = strings.TrimSpace(sourceRow)
		targetRow = strings.TrimSpace(targetRow)

		if strings.HasPrefix(sourceRow, "<") {
			if !strings.HasPrefix(sourceRow, "<seg") {
				continue
			}
			src, ok := segText(sourceRow)
			if !ok {
				return &corpora.SegmentError{File: sourceName, Line: line, Text: sourceRow}
			}
			tgt, ok := segText(targetRow)
			if !ok {
				return &corpora.SegmentError{File: targetName, Line: line, Text: targetRow}
			}
			sourceRow, targetRow = src, tgt
		}

		if err := emit(id, corpora.Translation{Source: sourceRow, Target: targetRow}); err != nil {
			return err
		}
		id++
	}
}

// segText reduces a segment line like
//
//	<seg id="1"> some text </seg>
//
// to its text: the content after the opening tag's ">", cut at the next ">"
// or "<" if either follows, trimmed. It reports false when the line contains
// no ">" at all.
func segText(line string) (string, bool) {
	_, after, found := strings.Cut(line, ">")
	if !found {
		return "", false
	}
	if i := strings.IndexByte(after, '>'); i >= 0 {
		after = after[:i]
	}
	if i := strings.IndexByte(after, '<'); i >= 0 {
		after = after[:i]
	}
	return strings.TrimSpace(after), true
}

// Ensure Builder implements corpora.Builder.
var _ corpora.Builder = (*Builder)(nil)
