// core/transcript/reader.go
package transcript

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Required column names. Order in the file is not significant; names are.
const (
	ColCellID          = "cell_id"
	ColX               = "x_location"
	ColY               = "y_location"
	ColZ               = "z_location"
	ColFeature         = "feature_name"
	ColQV              = "qv"
	ColOverlapsNucleus = "overlaps_nucleus"
)

// SchemaError reports a violation of the fixed transcript schema: a missing
// required column, a row with the wrong arity, or an unparsable value.
type SchemaError struct {
	Line int // 1-based file line; 0 when the header itself is at fault
	Msg  string
}

func (e *SchemaError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

type columns struct {
	cellID, x, y, z, feature, qv, nucleus int
}

// Reader streams transcript rows from a header-led CSV source. Columns are
// resolved by name from the header; unknown columns are preserved verbatim
// for passthrough.
type Reader struct {
	csv    *csv.Reader
	header []string
	cols   columns
	line   int // last line handed out (header is line 1)
}

// NewReader consumes the header row and resolves the required columns.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SchemaError{Msg: "missing header row"}
	}
	if err != nil {
		return nil, err
	}

	idx := func(name string) (int, error) {
		for i, h := range header {
			if h == name {
				return i, nil
			}
		}
		return 0, &SchemaError{Msg: fmt.Sprintf("required column %q not found", name)}
	}

	var cols columns
	for _, c := range []struct {
		name string
		dst  *int
	}{
		{ColCellID, &cols.cellID},
		{ColX, &cols.x},
		{ColY, &cols.y},
		{ColZ, &cols.z},
		{ColFeature, &cols.feature},
		{ColQV, &cols.qv},
		{ColOverlapsNucleus, &cols.nucleus},
	} {
		i, err := idx(c.name)
		if err != nil {
			return nil, err
		}
		*c.dst = i
	}

	return &Reader{csv: cr, header: header, cols: cols, line: 1}, nil
}

// Header returns the column names exactly as read.
func (r *Reader) Header() []string { return r.header }

// Read returns the next row, or io.EOF when the input is exhausted. Rows
// with the wrong arity or unparsable values yield a SchemaError.
func (r *Reader) Read() (Row, error) {
	rec, err := r.csv.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}
	r.line++
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return Row{}, &SchemaError{Line: pe.Line, Msg: pe.Err.Error()}
		}
		return Row{}, err
	}

	row := Row{
		CellID:  rec[r.cols.cellID],
		Feature: rec[r.cols.feature],
		fields:  rec,
	}
	for _, f := range []struct {
		name string
		i    int
		dst  *float64
	}{
		{ColX, r.cols.x, &row.X},
		{ColY, r.cols.y, &row.Y},
		{ColZ, r.cols.z, &row.Z},
		{ColQV, r.cols.qv, &row.QV},
	} {
		v, err := strconv.ParseFloat(rec[f.i], 64)
		if err != nil {
			return Row{}, &SchemaError{Line: r.line, Msg: fmt.Sprintf("bad %s value %q", f.name, rec[f.i])}
		}
		*f.dst = v
	}
	switch rec[r.cols.nucleus] {
	case "1", "true":
		row.OverlapsNucleus = true
	case "0", "false":
		row.OverlapsNucleus = false
	default:
		return Row{}, &SchemaError{Line: r.line, Msg: fmt.Sprintf("bad %s value %q", ColOverlapsNucleus, rec[r.cols.nucleus])}
	}
	return row, nil
}
