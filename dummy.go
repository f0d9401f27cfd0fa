package corpora

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DummyPlanner prepares the dummy data of one dataset configuration: the
// tiny checked-in archive that lets dataset tests run without downloading
// anything real.
//
// A planner runs in two phases. Discover drives the builder under a
// MockDownloadManager to learn which files the dummy archive must contain.
// The result then either becomes printed instructions for creating the
// archive by hand, or, with WithAutoZip, the archive is generated
// automatically by downloading the real data and keeping only the head and
// tail lines of every file the builder reads.
//
// A DummyPlanner drives its builder on the calling goroutine and is not
// safe for concurrent use.
type DummyPlanner struct {
	builder        Builder
	info           DatasetInfo
	root           string
	autoZip        bool
	nFirst         int
	nLast          int
	requiresManual bool
	out            io.Writer
	logger         StructuredLogger
	downloads      DownloadManager
	opener         Opener
}

// DummyPlan is the result of the discovery phase: where the dummy data
// lives and what it must contain.
type DummyPlan struct {
	// Folder is the dummy data folder,
	// <root>/<dataset>/dummy/[<config>/]<version>.
	Folder string

	// DummyFileName is the relative path mock downloads resolve to,
	// always DummyFileName ("dummy_data").
	DummyFileName string

	// Splits are the split names the builder declared, in order.
	Splits []Split

	// ExpectedFiles are the paths the builder opened during the mock
	// drive, relative to Folder, deduplicated in first-open order. The
	// dummy archive must provide exactly these files.
	ExpectedFiles []string
}

// NewDummyPlanner creates a planner for one builder. The datasets root
// defaults to "datasets" and output to os.Stdout.
//
// Auto-zip and the head/tail bounds come as a pair: WithAutoZip requires at
// least one positive bound from WithHeadTail, and bounds without auto-zip
// are rejected.
func NewDummyPlanner(b Builder, opts ...PlannerOption) (*DummyPlanner, error) {
	if b == nil {
		return nil, ErrNilBuilder
	}

	p := &DummyPlanner{
		builder: b,
		info:    b.Info(),
		root:    "datasets",
		out:     os.Stdout,
		logger:  NopLogger{},
		opener:  OSOpener{},
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.nFirst < 0 {
		return nil, NewValidationError("n-first", "must not be negative")
	}
	if p.nLast < 0 {
		return nil, NewValidationError("n-last", "must not be negative")
	}

	hasBounds := p.nFirst > 0 || p.nLast > 0
	if p.autoZip && !hasBounds {
		return nil, ErrAutoZipWithoutBounds
	}
	if hasBounds && !p.autoZip {
		return nil, ErrBoundsWithoutAutoZip
	}

	return p, nil
}

// Mock returns the mock download manager for this planner's dataset,
// rooted at the planner's datasets root.
func (p *DummyPlanner) Mock() *MockDownloadManager {
	return &MockDownloadManager{
		DatasetName: p.info.Name,
		ConfigName:  p.info.Config,
		Version:     p.info.Version,
		Root:        p.root,
	}
}

// Run executes the full planning flow: discover the expected files, then
// either print instructions or auto-generate the archive.
func (p *DummyPlanner) Run(ctx context.Context) error {
	plan, err := p.Discover(ctx)
	if err != nil {
		return err
	}

	if p.autoZip {
		return p.AutoZip(ctx, plan)
	}

	_, err = io.WriteString(p.out, p.Instructions(plan))
	return err
}

// Discover creates the dummy data folder and determines the expected file
// set by driving the builder under a mock download manager with a
// TouchRecorder as its Opener.
//
// A builder that opens files during SplitGenerators cannot be planned with
// full guidance, since those files do not exist yet. Discover prints a
// warning naming the missing file and carries on with whatever split
// generators were returned.
func (p *DummyPlanner) Discover(ctx context.Context) (*DummyPlan, error) {
	mdm := p.Mock()
	folder := mdm.DummyDataFolder()

	p.logger.Info("creating dummy folder structure", "folder", folder)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, WrapError(err, "creating dummy data folder")
	}

	gens, err := p.builder.SplitGenerators(ctx, mdm)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, WrapError(err, "resolving split generators")
		}

		missing := ""
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			missing = pathErr.Path
		}

		p.logger.Warn("builder opens files during split resolution", "dataset", p.info.Ref(), "missing", missing)
		fmt.Fprintf(p.out,
			"Dataset %s seems to already open files in SplitGenerators. You might consider to instead only open files in GenerateExamples. If this is not possible the dummy data has to be created with less guidance.",
			p.info.Ref())
		if missing != "" {
			fmt.Fprintf(p.out, " Make sure you create the file %s.", missing)
		}
		fmt.Fprintln(p.out)
	}

	plan := &DummyPlan{Folder: folder, DummyFileName: DummyFileName}

	rec := NewTouchRecorder(nil, true)
	for _, g := range gens {
		p.logger.Info("collecting dummy data file paths", "split", g.Name)
		plan.Splits = append(plan.Splits, g.Name)
		if err := p.builder.GenerateExamples(ctx, rec, g, DiscardRecords); err != nil {
			return nil, WrapErrorf(err, "driving split %q", g.Name)
		}
	}
	plan.ExpectedFiles = rec.Unique()

	return plan, nil
}

// Instructions renders the manual dummy data guidance for a plan.
func (p *DummyPlanner) Instructions(plan *DummyPlan) string {
	var b strings.Builder

	b.WriteString("\n" + strings.Repeat("=", 30) + "DUMMY DATA INSTRUCTIONS" + strings.Repeat("=", 30) + "\n")

	configString := ""
	if p.info.Config != "" {
		configString = fmt.Sprintf("config %s of ", p.info.Config)
	}
	fmt.Fprintf(&b, "- In order to create the dummy data for %s%s, please go into the folder '%s' with `cd %s` . \n\n",
		configString, p.info.Name, plan.Folder, plan.Folder)

	if p.requiresManual {
		b.WriteString("- Note that this dataset requires manually downloaded data, so the dummy files stand in for the files a user would place in the manual download folder \n\n")
	}

	splitNames := joinSplits(plan.Splits)
	single := len(plan.ExpectedFiles) == 1 && plan.ExpectedFiles[0] == plan.DummyFileName

	switch {
	case len(plan.ExpectedFiles) == 0:
		b.WriteString("- It appears that GenerateExamples finds its input files by listing a directory rather than opening fixed paths. In this case, please refer to the GenerateExamples method to see under which filenames the dummy data files should be created \n\n")
	case single:
		fmt.Fprintf(&b, "- Please create a single dummy data file called '%s' from the folder '%s'. Make sure that the dummy data file provides at least one example for the split(s) '%s' \n\n",
			plan.DummyFileName, plan.Folder, splitNames)
	default:
		fmt.Fprintf(&b, "- Please create the following dummy data files '%s' from the folder '%s'\n\n",
			strings.Join(plan.ExpectedFiles, ", "), plan.Folder)
		fmt.Fprintf(&b, "- For each of the splits '%s', make sure that one or more of the dummy data files provide at least one example \n\n", splitNames)
	}

	if len(plan.ExpectedFiles) > 0 {
		filesString := plan.DummyFileName
		if !single {
			filesString = strings.Join(plan.ExpectedFiles, ", ")
		}
		fmt.Fprintf(&b, "- If the GenerateExamples method includes multiple Open(...) calls, you might have to create other files in addition to '%s'. In this case please refer to the GenerateExamples method \n\n", filesString)
	}

	if single {
		fmt.Fprintf(&b, "-After the dummy data file is created, it should be zipped to '%s.zip' with the command `zip %s.zip %s` \n\n",
			plan.DummyFileName, plan.DummyFileName, plan.DummyFileName)
		fmt.Fprintf(&b, "-You can now delete the file '%s' with the command `rm %s` \n\n",
			plan.DummyFileName, plan.DummyFileName)
		fmt.Fprintf(&b, "- To get the file '%s' back for further changes to the dummy data, simply unzip %s.zip with the command `unzip %s.zip` \n\n",
			plan.DummyFileName, plan.DummyFileName, plan.DummyFileName)
	} else {
		fmt.Fprintf(&b, "-After all dummy data files are created, they should be zipped recursively to '%s.zip' with the command `zip -r %s.zip %s/` \n\n",
			plan.DummyFileName, plan.DummyFileName, plan.DummyFileName)
		fmt.Fprintf(&b, "-You can now delete the folder '%s' with the command `rm -r %s` \n\n",
			plan.DummyFileName, plan.DummyFileName)
		fmt.Fprintf(&b, "- To get the folder '%s' back for further changes to the dummy data, simply unzip %s.zip with the command `unzip %s.zip` \n\n",
			plan.DummyFileName, plan.DummyFileName, plan.DummyFileName)
	}

	fmt.Fprintf(&b, "- Make sure you have created the file '%s.zip' in '%s' \n", plan.DummyFileName, plan.Folder)
	b.WriteString(strings.Repeat("=", 83) + "\n")

	return b.String()
}

// AutoZip generates the dummy archive for a plan: download and read the
// real data, keep the head and tail of every expected file, zip the results
// and clean the folder so only the archive remains.
//
// Matching between expected files and real files is by base name. An
// expected file with no real counterpart is a hard error, since the archive
// would be incomplete.
func (p *DummyPlanner) AutoZip(ctx context.Context, plan *DummyPlan) error {
	dm := p.downloads
	if dm == nil {
		httpDM, err := NewDownloadManagerFromEnv()
		if err != nil {
			return WrapError(err, "creating download manager")
		}
		defer httpDM.Close()
		dm = httpDM
	}

	realFiles, err := TouchedFiles(ctx, p.builder, dm, p.opener, false)
	if err != nil {
		return WrapError(err, "collecting real data files")
	}

	for _, expected := range plan.ExpectedFiles {
		real := ""
		for _, f := range realFiles {
			if filepath.Base(f) == filepath.Base(expected) {
				real = f
				break
			}
		}
		if real == "" {
			return &MissingDummyFileError{Path: expected}
		}

		if err := p.writeDummyFile(plan.Folder, expected, real); err != nil {
			return err
		}
	}

	archive := filepath.Join(plan.Folder, DummyArchiveName)
	p.logger.Info("creating dummy data archive", "archive", archive)
	if err := writeDummyArchive(plan.Folder, plan.ExpectedFiles); err != nil {
		return err
	}

	if err := cleanDummyFolder(plan.Folder); err != nil {
		return err
	}

	p.logger.Info("created dummy data archive", "archive", archive, "files", len(plan.ExpectedFiles))
	return nil
}

// writeDummyFile copies the kept head and tail lines of the real file to
// expected's location under folder.
func (p *DummyPlanner) writeDummyFile(folder, expected, real string) error {
	src, err := p.opener.Open(real)
	if err != nil {
		return WrapErrorf(err, "opening real file %s", real)
	}

	lines, err := headTailLines(src, p.nFirst, p.nLast)
	src.Close()
	if err != nil {
		return WrapErrorf(err, "reading real file %s", real)
	}

	target := filepath.Join(folder, expected)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return WrapErrorf(err, "creating directory for %s", expected)
	}
	if err := os.WriteFile(target, []byte(joinLines(lines)), 0o644); err != nil {
		return WrapErrorf(err, "writing dummy file %s", expected)
	}

	p.logger.Info("wrote dummy file", "file", expected, "lines", len(lines))
	return nil
}

func joinSplits(splits []Split) string {
	names := make([]string, len(splits))
	for i, s := range splits {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
