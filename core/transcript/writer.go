// core/transcript/writer.go
package transcript

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Writer emits transcript rows in the source column order with the cell_id
// column rewritten to the decoded integer id. No emitted row retains the raw
// encoded string.
type Writer struct {
	csv     *csv.Writer
	cellIdx int
}

// NewWriter writes the header and locates the cell_id column.
func NewWriter(w io.Writer, header []string) (*Writer, error) {
	cellIdx := -1
	for i, h := range header {
		if h == ColCellID {
			cellIdx = i
			break
		}
	}
	if cellIdx < 0 {
		return nil, &SchemaError{Msg: fmt.Sprintf("required column %q not found", ColCellID)}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return nil, err
	}
	return &Writer{csv: cw, cellIdx: cellIdx}, nil
}

// Write emits one row. All source columns pass through untouched except
// cell_id, which carries the decoded id.
func (w *Writer) Write(r Row) error {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	out[w.cellIdx] = strconv.Itoa(r.Decoded)
	return w.csv.Write(out)
}

// Flush drains buffered output and reports any deferred write error.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}
