// internal/app/app.go
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"xft-core/transcript"
	"xft/internal/cli"
	"xft/internal/config"
	"xft/internal/output"
	"xft/internal/pipeline"
	"xft/internal/report"
	"xft/internal/version"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitFatal     = 1
	ExitUsage     = 2
	ExitCancelled = 130
)

// RunContext parses argv, streams the input table through the filter, and
// returns the process exit code. All output goes to the given writers so
// tests can drive it end to end.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("xft")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(stdout)
		fs.Usage()
		return ExitOK
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.Usage()
			return ExitOK
		}
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	if opts.Version {
		if _, err := fmt.Fprintf(stdout, "xft version %s\n", version.Version); err != nil && !output.IsBrokenPipe(err) {
			fmt.Fprintln(stderr, err)
			return ExitFatal
		}
		return ExitOK
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if opts.Profile != "" {
		prof, err := config.Load(opts.Profile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		prof.Overlay(&opts)
		if err := cli.Validate(&opts); err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		log.Debug("applied filter profile", "path", opts.Profile)
	}

	cfg := opts.FilterConfig()

	in, err := transcript.Open(opts.InFile)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return ExitFatal
	}
	defer func() { _ = in.Close() }()

	src, err := transcript.NewReader(in)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", opts.InFile, err)
		return ExitFatal
	}
	log.Debug("opened input", "path", opts.InFile, "columns", len(src.Header()))

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		fmt.Fprintf(stderr, "create output directory: %v\n", err)
		return ExitFatal
	}
	outPath := output.Path(opts.OutDir, cfg)
	of, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(stderr, "create output: %v\n", err)
		return ExitFatal
	}
	log.Debug("derived output path", "path", outPath)

	sink, err := transcript.NewWriter(of, src.Header())
	if err != nil {
		_ = of.Close()
		fmt.Fprintln(stderr, err)
		return ExitFatal
	}

	st, runErr := pipeline.Run(parent, cfg, src, sink.Write)

	// Flush and close on every exit path; a fatal error leaves a partial
	// output file behind, which is documented behavior.
	flushErr := sink.Flush()
	closeErr := of.Close()

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
			fmt.Fprintln(stderr, "cancelled")
			return ExitCancelled
		}
		fmt.Fprintf(stderr, "%s: %v\n", opts.InFile, runErr)
		return ExitFatal
	}
	if flushErr != nil {
		fmt.Fprintf(stderr, "write output: %v\n", flushErr)
		return ExitFatal
	}
	if closeErr != nil {
		fmt.Fprintf(stderr, "close output: %v\n", closeErr)
		return ExitFatal
	}

	log.Debug("filtering complete",
		"read", st.Read, "kept", st.Kept,
		"control", st.DroppedControl, "quality", st.DroppedQuality, "bounds", st.DroppedBounds,
		"detached", st.Detached, "unassigned", st.Unassigned)

	if opts.Stats {
		report.Render(stderr, st, isTerminal(stderr))
	}
	return ExitOK
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
