// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"io"

	"xft-core/cellid"
	"xft-core/transcript"
)

// Source yields transcript rows until io.EOF. *transcript.Reader satisfies it.
type Source interface {
	Read() (transcript.Row, error)
}

// RunStats counts per-row outcomes of one filtering pass.
type RunStats struct {
	Read           int // rows consumed from the source
	Kept           int // rows handed to visit
	DroppedControl int // negative-control features
	DroppedQuality int // qv below threshold
	DroppedBounds  int // x or y outside the bounding box
	Detached       int // kept, but cell assignment cleared by nucleus-only
	Unassigned     int // kept with no cell assignment in the source
}

// Run consumes src exactly once, in order, and hands each surviving row to
// visit with its decoded cell id filled in. Relative order of survivors is
// preserved and no row is buffered.
//
// Every row's cell id is decoded, kept or not: a DecodeError means malformed
// input, not a filterable condition, and aborts the pass. Rows that merely
// fail a predicate are counted and dropped. Cancellation is checked between
// rows and surfaces as ctx.Err().
func Run(ctx context.Context, cfg transcript.FilterConfig, src Source, visit func(transcript.Row) error) (RunStats, error) {
	var st RunStats
	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		row, err := src.Read()
		if err == io.EOF {
			return st, nil
		}
		if err != nil {
			return st, err
		}
		st.Read++

		id, err := cellid.Decode(row.CellID)
		if err != nil {
			return st, err
		}

		switch {
		case transcript.IsNegativeControl(row.Feature):
			st.DroppedControl++
			continue
		case !cfg.PassesQuality(row):
			st.DroppedQuality++
			continue
		case !cfg.InBounds(row):
			st.DroppedBounds++
			continue
		}

		// Nucleus rule: detach rather than drop.
		if cfg.NucleusOnly && !row.OverlapsNucleus && id != 0 {
			id = 0
			st.Detached++
		} else if id == 0 {
			st.Unassigned++
		}

		st.Kept++
		if err := visit(row.WithDecoded(id)); err != nil {
			return st, err
		}
	}
}
