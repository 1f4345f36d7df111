// core/transcript/filter.go
package transcript

import "strings"

// Defaults. The platform slide is under 24000 microns in x and y.
const (
	DefaultMinQV = 20.0
	DefaultMin   = 0.0
	DefaultMax   = 24000.0
)

// FilterConfig groups the row-predicate parameters. It is built once at
// startup and treated as immutable, so a pass is a deterministic function of
// (input, config).
type FilterConfig struct {
	MinQV       float64
	MinX, MaxX  float64
	MinY, MaxY  float64
	NucleusOnly bool
}

// DefaultFilterConfig returns the platform defaults.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinQV: DefaultMinQV,
		MinX:  DefaultMin, MaxX: DefaultMax,
		MinY: DefaultMin, MaxY: DefaultMax,
	}
}

// Reserved negative-control label prefixes.
var negControlPrefixes = []string{
	"NegControlProbe_",
	"NegControlCodeword_",
	"antisense_",
	"BLANK_",
}

// IsNegativeControl reports whether a feature label names a negative-control
// probe. Such rows carry no biological signal and are always excluded.
func IsNegativeControl(feature string) bool {
	for _, p := range negControlPrefixes {
		if strings.HasPrefix(feature, p) {
			return true
		}
	}
	return false
}

// PassesQuality reports whether the row meets the quality threshold.
// A qv exactly at the threshold is kept.
func (c FilterConfig) PassesQuality(r Row) bool {
	return r.QV >= c.MinQV
}

// InBounds reports whether the row lies inside the configured bounding box.
// Both edges are inclusive; z is never filtered.
func (c FilterConfig) InBounds(r Row) bool {
	return r.X >= c.MinX && r.X <= c.MaxX && r.Y >= c.MinY && r.Y <= c.MaxY
}
