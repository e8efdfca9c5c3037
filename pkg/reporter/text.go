package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/evergreen/internal/ui/pretty"
	"github.com/yaklabco/evergreen/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No markdown files found."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		if ctx.Err() != nil {
			return failed(result), fmt.Errorf("report cancelled: %w", ctx.Err())
		}

		outcome := file
		outcome.Output = displayPath(file.Output, r.opts.WorkingDir)
		fmt.Fprint(r.bw, r.styles.FormatFileLine(displayPath(file.Path, r.opts.WorkingDir), outcome, result.DryRun))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, "\n")
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, result.DryRun))
	}

	return failed(result), nil
}

// SummaryReporter writes only the aggregate statistics block.
type SummaryReporter struct {
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var (
		stats  runner.Stats
		dryRun bool
	)
	if result != nil {
		stats = result.Stats
		dryRun = result.DryRun
	}

	fmt.Fprint(r.bw, r.styles.FormatSummary(stats, dryRun))
	return failed(result), nil
}
