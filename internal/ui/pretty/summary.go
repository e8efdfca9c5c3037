package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/evergreen/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func files(n int) string {
	if n == 1 {
		return "1 " + wordFile
	}
	return strconv.Itoa(n) + " " + wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Rendered 3 files (2 written, 1 unchanged), 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No markdown files found") + "\n"
	}

	var msg string
	if dryRun {
		msg = s.Success.Render("Would render "+files(stats.FilesRendered)) +
			s.Dim.Render(fmt.Sprintf(" (%d blocks)", stats.Blocks))
	} else {
		var breakdown []string
		if stats.FilesWritten > 0 {
			breakdown = append(breakdown, s.Written.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
		}
		if stats.FilesUnchanged > 0 {
			breakdown = append(breakdown, s.Unchanged.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)))
		}
		msg = s.Success.Render("Rendered " + files(stats.FilesRendered))
		if len(breakdown) > 0 {
			msg += " (" + strings.Join(breakdown, ", ") + ")"
		}
	}

	if stats.FilesSkipped > 0 {
		msg += ", " + s.Skipped.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped))
	}
	if stats.FilesFailed > 0 {
		msg += ", " + s.Failed.Render(fmt.Sprintf("%d failed", stats.FilesFailed))
	}

	return msg + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, dryRun bool) string {
	var builder strings.Builder

	row := func(label string, value int) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", s.SummaryValue.Render(strconv.Itoa(value))))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files found", stats.FilesDiscovered)
	row("Files rendered", stats.FilesRendered)
	if !dryRun {
		row("Files written", stats.FilesWritten)
		row("Files unchanged", stats.FilesUnchanged)
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", stats.FilesSkipped)
	}
	if stats.FilesFailed > 0 {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", "Files failed:",
			s.Failure.Render(strconv.Itoa(stats.FilesFailed))))
	}
	row("Blocks", stats.Blocks)
	builder.WriteString(fmt.Sprintf("  %-18s %s\n", "Output size:",
		s.SummaryValue.Render(humanize.Bytes(uint64(max(stats.Bytes, 0))))))

	builder.WriteString("\n")

	switch {
	case stats.FilesFailed > 0:
		builder.WriteString(s.Failure.Render("Render failed"))
	case stats.FilesSkipped > 0:
		builder.WriteString(s.Warning.Render("Render completed with skipped files"))
	case dryRun:
		builder.WriteString(s.Success.Render("Dry run complete"))
	default:
		builder.WriteString(s.Success.Render("Render complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
