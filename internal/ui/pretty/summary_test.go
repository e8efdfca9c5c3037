package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/evergreen/internal/ui/pretty"
	"github.com/yaklabco/evergreen/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered: 10,
		FilesRendered:   9,
		FilesWritten:    6,
		FilesUnchanged:  3,
		FilesFailed:     1,
		Blocks:          42,
		Bytes:           2048,
	}

	result := styles.FormatSummary(stats, false)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files found:")
	assert.Contains(t, result, "10")
	assert.Contains(t, result, "Files written:")
	assert.Contains(t, result, "Files unchanged:")
	assert.Contains(t, result, "Files failed:")
	assert.Contains(t, result, "42")
	assert.Contains(t, result, "Output size:")
	assert.Contains(t, result, "2.0 kB")
	assert.Contains(t, result, "Render failed")
	assert.NotContains(t, result, "Files skipped:")
}

func TestFormatSummary_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesDiscovered: 2, FilesRendered: 2, FilesWritten: 2}, false)
	assert.Contains(t, result, "Render complete")
	assert.NotContains(t, result, "Files failed:")
}

func TestFormatSummary_DryRun(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesDiscovered: 2, FilesRendered: 2}, true)
	assert.Contains(t, result, "Dry run complete")
	assert.NotContains(t, result, "Files written:")
}

func TestFormatSummary_Skipped(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesDiscovered: 2, FilesRendered: 2, FilesSkipped: 1}, false)
	assert.Contains(t, result, "Files skipped:")
	assert.Contains(t, result, "Render completed with skipped files")
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		stats  runner.Stats
		dryRun bool
		want   string
	}{
		{
			name: "nothing found",
			want: "No markdown files found\n",
		},
		{
			name:  "written and unchanged",
			stats: runner.Stats{FilesDiscovered: 3, FilesRendered: 3, FilesWritten: 2, FilesUnchanged: 1},
			want:  "Rendered 3 files (2 written, 1 unchanged)\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesDiscovered: 1, FilesRendered: 1, FilesWritten: 1},
			want:  "Rendered 1 file (1 written)\n",
		},
		{
			name:  "failures",
			stats: runner.Stats{FilesDiscovered: 3, FilesRendered: 2, FilesUnchanged: 2, FilesFailed: 1},
			want:  "Rendered 2 files (2 unchanged), 1 failed\n",
		},
		{
			name:   "dry run",
			stats:  runner.Stats{FilesDiscovered: 2, FilesRendered: 2, Blocks: 7},
			dryRun: true,
			want:   "Would render 2 files (7 blocks)\n",
		},
		{
			name:  "skipped",
			stats: runner.Stats{FilesDiscovered: 2, FilesRendered: 2, FilesWritten: 1, FilesSkipped: 1},
			want:  "Rendered 2 files (1 written), 1 skipped\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats, tt.dryRun))
		})
	}
}
