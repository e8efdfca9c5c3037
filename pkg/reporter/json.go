package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/evergreen/pkg/runner"
)

// jsonSchemaVersion is bumped on incompatible output changes.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	DryRun  bool             `json:"dryRun"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path   string `json:"path"`
	Output string `json:"output,omitempty"`
	Blocks int    `json:"blocks"`
	Bytes  int    `json:"bytes"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesRendered   int `json:"filesRendered"`
	FilesWritten    int `json:"filesWritten"`
	FilesUnchanged  int `json:"filesUnchanged"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesFailed     int `json:"filesFailed"`
	Blocks          int `json:"blocks"`
	Bytes           int `json:"bytes"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesFailed, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.DryRun = result.DryRun
	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:   displayPath(file.Path, r.opts.WorkingDir),
			Output: displayPath(file.Output, r.opts.WorkingDir),
			Blocks: file.Blocks,
			Bytes:  file.Bytes,
			Status: string(file.Status()),
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesRendered:   stats.FilesRendered,
		FilesWritten:    stats.FilesWritten,
		FilesUnchanged:  stats.FilesUnchanged,
		FilesSkipped:    stats.FilesSkipped,
		FilesFailed:     stats.FilesFailed,
		Blocks:          stats.Blocks,
		Bytes:           stats.Bytes,
	}

	return output
}
