// Package reporter writes the results of a render run.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/evergreen/pkg/runner"
)

// Reporter formats and writes render results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of failed files and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}

func failed(result *runner.Result) int {
	if result == nil {
		return 0
	}
	return result.Stats.FilesFailed
}
