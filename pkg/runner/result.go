package runner

// FileOutcome is the result of rendering one markdown file.
type FileOutcome struct {
	// Path is the markdown source.
	Path string

	// Output is the rendered file path, set even on a dry run.
	Output string

	// Blocks is the number of top-level document nodes.
	Blocks int

	// Bytes is the size of the rendered output.
	Bytes int

	// Written is true if Output was created or replaced.
	Written bool

	// Unchanged is true if Output already held the rendered content.
	Unchanged bool

	// Skipped is true if the source changed while it was being rendered,
	// so its output was not written.
	Skipped bool

	// Error is set if the file could not be rendered or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesRendered   int
	FilesWritten    int
	FilesUnchanged  int
	FilesSkipped    int
	FilesFailed     int

	// Blocks is the total number of top-level nodes rendered.
	Blocks int

	// Bytes is the total size of rendered output.
	Bytes int
}

// Result is the overall runner result.
type Result struct {
	// Files is ordered by path.
	Files []FileOutcome

	Stats Stats

	// DryRun is true if outputs were rendered but not written.
	DryRun bool
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}

	r.Stats.FilesRendered++
	r.Stats.Blocks += outcome.Blocks
	r.Stats.Bytes += outcome.Bytes

	switch {
	case outcome.Skipped:
		r.Stats.FilesSkipped++
	case outcome.Written:
		r.Stats.FilesWritten++
	case outcome.Unchanged:
		r.Stats.FilesUnchanged++
	}
}

// Status summarizes a FileOutcome in one word.
type Status string

const (
	StatusWritten   Status = "written"
	StatusUnchanged Status = "unchanged"
	StatusSkipped   Status = "skipped"
	StatusRendered  Status = "rendered"
	StatusFailed    Status = "failed"
)

// Status returns the outcome's status. A successful outcome that was
// neither written nor compared, as on a dry run, is StatusRendered.
func (o FileOutcome) Status() Status {
	switch {
	case o.Error != nil:
		return StatusFailed
	case o.Skipped:
		return StatusSkipped
	case o.Written:
		return StatusWritten
	case o.Unchanged:
		return StatusUnchanged
	default:
		return StatusRendered
	}
}
