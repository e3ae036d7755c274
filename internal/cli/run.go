// Package cli wires the validated configuration into the conversion engine:
// preflight checks, progress reporting, summary rendering, and report
// emission. It owns the mapping from batch outcomes to process exit codes.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/mediaforge/mediaconv/pkg/convert"
)

// ExitError carries the process exit code alongside a human-readable
// message. main unwraps it with errors.As.
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string { return e.Msg }

func usageError(err error) error {
	return &ExitError{Code: convert.ExitUsageError, Msg: err.Error()}
}

// Run executes one batch end to end and returns nil only when every job
// succeeded. Fatal conditions (bad configuration, missing encoder, unwritable
// output) map to the usage exit code; partial and total batch failures map to
// their own codes so scripts can tell them apart.
func Run(ctx context.Context, opts convert.Options, logger *slog.Logger) error {
	if err := CheckOutputRoot(opts.OutputPath); err != nil {
		return usageError(err)
	}

	// Progress bars want a terminal to themselves; verbose logging and the
	// bar would interleave on stderr.
	interactive := term.IsTerminal(int(os.Stderr.Fd())) && !opts.Verbose
	if interactive && opts.Hooks == nil {
		opts.Hooks = newProgressHooks(os.Stderr)
	}

	engine, err := convert.NewEngine(opts)
	if err != nil {
		return usageError(err)
	}

	report, err := engine.Run(ctx)
	if err != nil {
		return usageError(err)
	}

	printSummary(os.Stderr, report, interactive)

	if opts.ReportFormat != convert.ReportFormatNone {
		if err := emitReport(report, opts.ReportFormat, opts.ReportPath); err != nil {
			logger.Error("Could not write report", slog.String("error", err.Error()))
			return &ExitError{Code: convert.ExitUsageError, Msg: err.Error()}
		}
	}

	if code := report.ExitCode(); code != convert.ExitOK {
		return &ExitError{
			Code: code,
			Msg: fmt.Sprintf("%d of %d conversions failed",
				report.Summary.Failed, report.Summary.Total),
		}
	}
	return nil
}

// emitReport writes the machine-readable report to the requested path, or to
// stdout when no path was given so it can be piped.
func emitReport(report convert.Report, format convert.ReportFormat, path string) error {
	if path == "" {
		return report.Encode(os.Stdout, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := report.Encode(f, format); err != nil {
		f.Close()
		return fmt.Errorf("write report file: %w", err)
	}
	return f.Close()
}
