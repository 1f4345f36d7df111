// internal/output/path.go
package output

import (
	"path/filepath"
	"strconv"

	"xft-core/transcript"
)

// FileName derives the self-describing output name from the active filter
// parameters, e.g. X0-24000_Y0-24000_filtered_transcripts_nucleus_only_false.csv.
// Runs with different parameters never silently overwrite each other in a
// shared directory; same-parameter reruns do.
func FileName(cfg transcript.FilterConfig) string {
	return "X" + ftoa(cfg.MinX) + "-" + ftoa(cfg.MaxX) +
		"_Y" + ftoa(cfg.MinY) + "-" + ftoa(cfg.MaxY) +
		"_filtered_transcripts_nucleus_only_" + strconv.FormatBool(cfg.NucleusOnly) + ".csv"
}

// Path joins the output directory with the derived file name.
func Path(outDir string, cfg transcript.FilterConfig) string {
	return filepath.Join(outDir, FileName(cfg))
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
