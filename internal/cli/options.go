// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"xft-core/transcript"
	"xft/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	InFile string

	// Filter parameters
	MinQV       float64
	MinX, MaxX  float64
	MinY, MaxY  float64
	NucleusOnly bool

	// Output / run behavior
	OutDir  string
	Profile string // optional TOML filter profile
	Stats   bool
	Verbose bool
	Version bool

	// Set records flags given explicitly on the command line, so a profile
	// only fills the gaps (flags always win).
	Set map[string]bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: filter a spatial transcript table for cell segmentation

Decodes encoded cell ids to plain integers, removes negative controls and
low-quality or out-of-bounds transcripts, and streams survivors to a CSV
whose name records the filter parameters.

Version: %s

Usage: %s [flags] transcripts.csv[.gz]
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
// The single positional argument is the input path ('-' for stdin).
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.Float64Var(&opt.MinQV, "min-qv", transcript.DefaultMinQV, "minimum Q-Score to pass filtering [20]")
	fs.Float64Var(&opt.MinX, "min-x", transcript.DefaultMin, "keep transcripts with x-coordinate >= limit [0]")
	fs.Float64Var(&opt.MaxX, "max-x", transcript.DefaultMax, "keep transcripts with x-coordinate <= limit [24000]")
	fs.Float64Var(&opt.MinY, "min-y", transcript.DefaultMin, "keep transcripts with y-coordinate >= limit [0]")
	fs.Float64Var(&opt.MaxY, "max-y", transcript.DefaultMax, "keep transcripts with y-coordinate <= limit [24000]")
	fs.BoolVar(&opt.NucleusOnly, "nucleus-only", false, "detach transcripts outside the nucleus from their cell [false]")
	fs.StringVar(&opt.OutDir, "out-dir", ".", "directory for the output file [.]")
	fs.StringVar(&opt.Profile, "config", "", "TOML filter profile; explicit flags override it")
	fs.BoolVar(&opt.Stats, "stats", false, "print a run summary table to stderr [false]")
	fs.BoolVar(&opt.Verbose, "verbose", false, "debug logging to stderr [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}

	opt.Set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { opt.Set[f.Name] = true })

	if opt.Version {
		return opt, nil
	}

	switch args := fs.Args(); len(args) {
	case 0:
		return opt, errors.New("a transcripts file is required ('-' for stdin)")
	case 1:
		opt.InFile = args[0]
	default:
		return opt, fmt.Errorf("exactly one transcripts file expected, got %d", len(args))
	}

	return opt, Validate(&opt)
}

// Validate checks parameter consistency. It runs again after a profile is
// overlaid, since profile values bypass flag parsing.
func Validate(opt *Options) error {
	if opt.MinQV < 0 {
		return errors.New("--min-qv must be >= 0")
	}
	if opt.MinX > opt.MaxX {
		return fmt.Errorf("--min-x (%g) must not exceed --max-x (%g)", opt.MinX, opt.MaxX)
	}
	if opt.MinY > opt.MaxY {
		return fmt.Errorf("--min-y (%g) must not exceed --max-y (%g)", opt.MinY, opt.MaxY)
	}
	if opt.OutDir == "" {
		return errors.New("--out-dir must not be empty")
	}
	return nil
}

// FilterConfig lifts the flag values into the core filter configuration.
func (o Options) FilterConfig() transcript.FilterConfig {
	return transcript.FilterConfig{
		MinQV: o.MinQV,
		MinX:  o.MinX, MaxX: o.MaxX,
		MinY: o.MinY, MaxY: o.MaxY,
		NucleusOnly: o.NucleusOnly,
	}
}
