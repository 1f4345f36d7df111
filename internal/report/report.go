// internal/report/report.go
package report

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"xft/internal/pipeline"
)

// Render writes a run-summary table. Styled output is for terminals; plain
// keeps piped stderr and test output clean.
func Render(w io.Writer, st pipeline.RunStats, styled bool) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if styled {
		tw.SetStyle(table.StyleRounded)
	}
	tw.AppendHeader(table.Row{"outcome", "rows"})
	tw.AppendRows([]table.Row{
		{"read", st.Read},
		{"kept", st.Kept},
		{"dropped: negative control", st.DroppedControl},
		{"dropped: low quality", st.DroppedQuality},
		{"dropped: out of bounds", st.DroppedBounds},
		{"nucleus-detached", st.Detached},
		{"unassigned", st.Unassigned},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	tw.Render()
}
