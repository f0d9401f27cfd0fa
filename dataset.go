package corpora

import (
	"encoding/json"
	"fmt"
	"io"
)

// Row is one example of a split: the sequential id the builder assigned and
// the record it emitted.
type Row struct {
	ID    int
	Value any
}

// Dataset is fully materialized data for one dataset configuration, the
// result of Prepare. Rows are held in memory per split, in emit order.
//
// A Dataset is immutable after Prepare returns and safe for concurrent
// reads.
type Dataset struct {
	info   DatasetInfo
	splits []Split
	rows   map[Split][]Row
}

// Info returns the dataset's metadata.
func (d *Dataset) Info() DatasetInfo {
	return d.info
}

// Splits returns the split names in the order the builder declared them.
func (d *Dataset) Splits() []Split {
	return append([]Split(nil), d.splits...)
}

// Split returns the rows of one split. Unknown splits return an error
// wrapping ErrSplitNotFound that lists the available splits.
func (d *Dataset) Split(s Split) ([]Row, error) {
	rows, ok := d.rows[s]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrSplitNotFound, s, d.splits)
	}
	return rows, nil
}

// NumRows returns the number of rows in a split, or 0 for unknown splits.
func (d *Dataset) NumRows(s Split) int {
	return len(d.rows[s])
}

// TotalRows returns the number of rows across all splits.
func (d *Dataset) TotalRows() int {
	total := 0
	for _, rows := range d.rows {
		total += len(rows)
	}
	return total
}

// Card returns the dataset card for this dataset, sized from its rows.
func (d *Dataset) Card() Card {
	return CardFor(d.info, d.TotalRows())
}

// SaveJSONL writes one split to w in JSON Lines form, one record per line.
func (d *Dataset) SaveJSONL(s Split, w io.Writer) error {
	rows, err := d.Split(s)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	for _, row := range rows {
		if err := enc.Encode(row.Value); err != nil {
			return WrapErrorf(err, "encoding row %d of split %q", row.ID, s)
		}
	}
	return nil
}
