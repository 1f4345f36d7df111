// core/transcript/transcript.go

// Package transcript models one detected-molecule record from a
// spatial-transcriptomics transcript table and the predicates used to
// filter it.
package transcript

// Row is one transcript record. Coordinates are microns with the origin at
// the upper-left of the bottommost z-slice. A Row is a value: the pipeline
// never mutates one, it derives a copy with the decoded id filled in.
type Row struct {
	CellID          string // encoded cell id as read, or the unassigned sentinel
	Decoded         int    // integer cell id; 0 means unassigned
	X, Y, Z         float64
	Feature         string
	QV              float64 // Phred-scaled decoding confidence
	OverlapsNucleus bool

	fields []string // full source record, for column passthrough
}

// WithDecoded returns a copy of the row carrying the given integer cell id.
func (r Row) WithDecoded(id int) Row {
	r.Decoded = id
	return r
}
