package pretty

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/evergreen/pkg/runner"
)

// statusWidth pads status labels so paths line up.
const statusWidth = 11

// StatusLabel returns the display label for a status. Dry runs report
// rendered files as "would write".
func StatusLabel(status runner.Status, dryRun bool) string {
	if status == runner.StatusRendered && dryRun {
		return "would write"
	}
	return string(status)
}

// StatusStyle returns the style for a status.
func (s *Styles) StatusStyle(status runner.Status) lipgloss.Style {
	switch status {
	case runner.StatusWritten:
		return s.Written
	case runner.StatusUnchanged:
		return s.Unchanged
	case runner.StatusSkipped:
		return s.Skipped
	case runner.StatusFailed:
		return s.Failed
	default:
		return s.Rendered
	}
}

// FormatFileLine formats one file outcome.
//
//	written     docs/a.md -> docs/a.html
//	failed      docs/b.md: permission denied
func (s *Styles) FormatFileLine(path string, outcome runner.FileOutcome, dryRun bool) string {
	status := outcome.Status()
	label := StatusLabel(status, dryRun)
	for len(label) < statusWidth {
		label += " "
	}

	line := s.StatusStyle(status).Render(label) + " " + s.FilePath.Render(path)

	switch {
	case outcome.Error != nil:
		line += s.Arrow.Render(":") + " " + s.Message.Render(outcome.Error.Error())
	case outcome.Output != "":
		line += " " + s.Arrow.Render("->") + " " + s.Output.Render(outcome.Output)
	}

	return line + "\n"
}
