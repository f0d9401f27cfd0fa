package corpora

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/reader"
)

func TestExportParquetRoundTrip(t *testing.T) {
	ds := prepareTestDataset(t, nil)

	path := filepath.Join(t.TempDir(), "train.parquet")
	if err := ExportParquet(ds, SplitTrain, path); err != nil {
		t.Fatalf("ExportParquet() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	bf := buffer.NewBufferFileFromBytesNoAlloc(data)
	pr, err := reader.NewParquetReader(bf, new(parquetTranslation), 1)
	if err != nil {
		t.Fatalf("opening parquet file: %v", err)
	}
	defer pr.ReadStop()

	n := pr.GetNumRows()
	if n != 2 {
		t.Fatalf("parquet file has %d rows, want 2", n)
	}

	rows := make([]parquetTranslation, n)
	if err := pr.Read(&rows); err != nil {
		t.Fatalf("reading parquet rows: %v", err)
	}

	if rows[0].ID != 0 || rows[0].Source != "guten tag" || rows[0].Target != "GUTEN TAG" {
		t.Errorf("first row = %+v", rows[0])
	}
	if rows[1].ID != 1 || rows[1].Source != "hallo" {
		t.Errorf("second row = %+v", rows[1])
	}
}

func TestExportParquetUnknownSplit(t *testing.T) {
	ds := prepareTestDataset(t, nil)
	err := ExportParquet(ds, SplitValidation, filepath.Join(t.TempDir(), "v.parquet"))
	if !errors.Is(err, ErrSplitNotFound) {
		t.Errorf("ExportParquet() error = %v, want ErrSplitNotFound", err)
	}
}

func TestExportParquetUnsupportedRecordType(t *testing.T) {
	ds := &Dataset{
		info:   DatasetInfo{Name: "notpairs"},
		splits: []Split{SplitTrain},
		rows: map[Split][]Row{
			SplitTrain: {{ID: 0, Value: map[string]any{"text": "x"}}},
		},
	}

	err := ExportParquet(ds, SplitTrain, filepath.Join(t.TempDir(), "x.parquet"))
	if !errors.Is(err, ErrUnsupportedExport) {
		t.Errorf("ExportParquet() error = %v, want ErrUnsupportedExport", err)
	}
}

func TestExportJSONL(t *testing.T) {
	ds := prepareTestDataset(t, nil)

	path := filepath.Join(t.TempDir(), "test.jsonl")
	if err := ExportJSONL(ds, SplitTest, path); err != nil {
		t.Fatalf("ExportJSONL() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"source":"danke","target":"DANKE"}`+"\n" {
		t.Errorf("jsonl content = %q", data)
	}
}
