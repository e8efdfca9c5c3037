// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldLayer      = "layer"

	// Configuration fields.
	FieldMarker     = "marker"
	FieldTag        = "tag"
	FieldStandalone = "standalone"
	FieldFlavor     = "flavor"
	FieldDryRun     = "dry_run"
	FieldJobs       = "jobs"

	// Render fields.
	FieldBlocks = "blocks"
	FieldLines  = "lines"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesRendered   = "files_rendered"
	FieldFilesWritten    = "files_written"
	FieldFilesUnchanged  = "files_unchanged"
	FieldFilesFailed     = "files_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
