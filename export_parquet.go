package corpora

import (
	"fmt"
	"os"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// parquetTranslation is the flat Parquet schema for translation rows.
type parquetTranslation struct {
	ID     int64  `parquet:"name=id, type=INT64"`
	Source string `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Target string `parquet:"name=target, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
}

// ExportParquet writes one split of a dataset to a Snappy-compressed
// Parquet file at path. Only Translation records can be exported this way;
// other record types return an error wrapping ErrUnsupportedExport.
func ExportParquet(d *Dataset, split Split, path string) error {
	rows, err := d.Split(split)
	if err != nil {
		return err
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return WrapErrorf(err, "creating %s", path)
	}

	pw, err := writer.NewParquetWriter(fw, new(parquetTranslation), 4)
	if err != nil {
		fw.Close()
		return WrapError(err, "creating parquet writer")
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		t, ok := row.Value.(Translation)
		if !ok {
			fw.Close()
			return fmt.Errorf("%w: %T", ErrUnsupportedExport, row.Value)
		}
		rec := parquetTranslation{ID: int64(row.ID), Source: t.Source, Target: t.Target}
		if err := pw.Write(rec); err != nil {
			fw.Close()
			return WrapErrorf(err, "writing row %d", row.ID)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return WrapError(err, "finishing parquet file")
	}
	return fw.Close()
}

// ExportJSONL writes one split of a dataset to a JSON Lines file at path.
// JSONL handles any record type, unlike ExportParquet.
func ExportJSONL(d *Dataset, split Split, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return WrapErrorf(err, "creating %s", path)
	}
	if err := d.SaveJSONL(split, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
