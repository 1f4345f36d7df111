// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"

	"xft-core/cellid"
	"xft-core/transcript"
)

// sliceSource feeds rows from memory.
type sliceSource struct {
	rows []transcript.Row
	i    int
}

func (s *sliceSource) Read() (transcript.Row, error) {
	if s.i >= len(s.rows) {
		return transcript.Row{}, io.EOF
	}
	r := s.rows[s.i]
	s.i++
	return r, nil
}

func row(cellID, feature string, x, y, qv float64, nucleus bool) transcript.Row {
	return transcript.Row{CellID: cellID, Feature: feature, X: x, Y: y, QV: qv, OverlapsNucleus: nucleus}
}

func collect(t *testing.T, cfg transcript.FilterConfig, rows ...transcript.Row) ([]transcript.Row, RunStats) {
	t.Helper()
	var out []transcript.Row
	st, err := Run(context.Background(), cfg, &sliceSource{rows: rows}, func(r transcript.Row) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out, st
}

func TestNegativeControlAlwaysDropped(t *testing.T) {
	// Passes every other predicate; still dropped.
	out, st := collect(t, transcript.DefaultFilterConfig(),
		row("aaaaaaab-1", "NegControlProbe_00", 100, 100, 40, true))
	if len(out) != 0 {
		t.Fatalf("negative control kept: %+v", out)
	}
	if st.DroppedControl != 1 || st.Read != 1 {
		t.Errorf("stats: %+v", st)
	}
}

func TestUnassignedSentinelKept(t *testing.T) {
	out, st := collect(t, transcript.DefaultFilterConfig(),
		row("-1", "Gene1", 100, 100, 25, false))
	if len(out) != 1 {
		t.Fatalf("sentinel row dropped")
	}
	if out[0].Decoded != 0 {
		t.Errorf("decoded = %d, want 0", out[0].Decoded)
	}
	if st.Unassigned != 1 || st.Kept != 1 {
		t.Errorf("stats: %+v", st)
	}
}

func TestQualityThreshold(t *testing.T) {
	cfg := transcript.DefaultFilterConfig()
	out, st := collect(t, cfg,
		row("-1", "Gene1", 100, 100, 15, false), // below
		row("-1", "Gene1", 100, 100, 20, false), // exactly at threshold
	)
	if len(out) != 1 || st.DroppedQuality != 1 {
		t.Fatalf("want boundary row kept, below dropped; out=%d stats=%+v", len(out), st)
	}
	if out[0].QV != 20 {
		t.Errorf("kept wrong row: %+v", out[0])
	}
}

func TestBoundingBox(t *testing.T) {
	cfg := transcript.DefaultFilterConfig()
	cfg.MinX, cfg.MaxX = 50, 150
	out, st := collect(t, cfg,
		row("-1", "Gene1", 200, 100, 25, false), // outside
		row("-1", "Gene1", 50, 100, 25, false),  // on min edge
		row("-1", "Gene1", 150, 100, 25, false), // on max edge
	)
	if len(out) != 2 || st.DroppedBounds != 1 {
		t.Fatalf("inclusive bounds violated; out=%d stats=%+v", len(out), st)
	}
}

func TestNucleusDetach(t *testing.T) {
	cfg := transcript.DefaultFilterConfig()
	cfg.NucleusOnly = true
	out, st := collect(t, cfg,
		row("ffkpbaba-1", "Gene1", 100, 100, 25, false), // assigned, outside nucleus
		row("ffkpbaba-1", "Gene2", 100, 100, 25, true),  // assigned, in nucleus
	)
	if len(out) != 2 {
		t.Fatalf("nucleus rule must keep, not drop; out=%d", len(out))
	}
	if out[0].Decoded != 0 {
		t.Errorf("row outside nucleus not detached: %+v", out[0])
	}
	if out[1].Decoded != 16906838 {
		t.Errorf("row in nucleus lost its cell: %+v", out[1])
	}
	if st.Detached != 1 {
		t.Errorf("stats: %+v", st)
	}
}

func TestNucleusOffLeavesAssignment(t *testing.T) {
	out, _ := collect(t, transcript.DefaultFilterConfig(),
		row("ab-1", "Gene1", 100, 100, 25, false))
	if len(out) != 1 || out[0].Decoded != 17 {
		t.Fatalf("assignment altered without nucleus-only: %+v", out)
	}
}

func TestOrderPreserved(t *testing.T) {
	out, st := collect(t, transcript.DefaultFilterConfig(),
		row("a", "Gene1", 1, 1, 25, true),
		row("a", "BLANK_x", 1, 1, 25, true),
		row("b", "Gene2", 2, 2, 25, true),
		row("c", "Gene3", 3, 3, 1, true),
		row("d", "Gene4", 4, 4, 25, true),
	)
	if st.Read != 5 || st.Kept != 3 {
		t.Fatalf("stats: %+v", st)
	}
	want := []string{"Gene1", "Gene2", "Gene4"}
	for i, f := range want {
		if out[i].Feature != f {
			t.Fatalf("order broken: got %v", out)
		}
	}
}

func TestDecodeErrorFatal(t *testing.T) {
	// Malformed id on a row that would fail the quality filter anyway:
	// still fatal, since decode runs on every row.
	_, err := Run(context.Background(), transcript.DefaultFilterConfig(),
		&sliceSource{rows: []transcript.Row{row("not-valid!", "Gene1", 100, 100, 1, true)}},
		func(transcript.Row) error { return nil })
	var de *cellid.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("want DecodeError, got %v", err)
	}
}

func TestVisitErrorStopsRun(t *testing.T) {
	sentinel := errors.New("sink full")
	_, err := Run(context.Background(), transcript.DefaultFilterConfig(),
		&sliceSource{rows: []transcript.Row{
			row("a", "Gene1", 1, 1, 25, true),
			row("b", "Gene2", 2, 2, 25, true),
		}},
		func(transcript.Row) error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Fatalf("visit error not propagated: %v", err)
	}
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, transcript.DefaultFilterConfig(),
		&sliceSource{rows: []transcript.Row{row("a", "Gene1", 1, 1, 25, true)}},
		func(transcript.Row) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
