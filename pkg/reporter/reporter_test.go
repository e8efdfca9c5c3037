package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/evergreen/pkg/reporter"
	"github.com/yaklabco/evergreen/pkg/runner"
)

func sampleResult(root string) *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:    filepath.Join(root, "a.md"),
				Output:  filepath.Join(root, "a.html"),
				Blocks:  3,
				Written: true,
			},
			{
				Path:      filepath.Join(root, "docs", "b.md"),
				Output:    filepath.Join(root, "docs", "b.html"),
				Blocks:    2,
				Unchanged: true,
			},
			{
				Path:  filepath.Join(root, "c.md"),
				Error: errors.New("permission denied"),
			},
		},
		Stats: runner.Stats{
			FilesDiscovered: 3,
			FilesRendered:   2,
			FilesWritten:    1,
			FilesUnchanged:  1,
			FilesFailed:     1,
			Blocks:          5,
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, reporter.FormatText.IsValid())
	assert.True(t, reporter.FormatJSON.IsValid())
	assert.True(t, reporter.FormatSummary.IsValid())
	assert.False(t, reporter.Format("sarif").IsValid())
	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "summary reporter", format: reporter.FormatSummary},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format, Color: "never"})
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestTextReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No markdown files found")
}

func TestTextReporter_Outcomes(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  root,
	})

	count, err := rep.Report(context.Background(), sampleResult(root))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out := buf.String()
	assert.Contains(t, out, "written     a.md -> a.html\n")
	assert.Contains(t, out, "unchanged   "+filepath.Join("docs", "b.md")+" -> "+filepath.Join("docs", "b.html")+"\n")
	assert.Contains(t, out, "failed      c.md: permission denied\n")
	assert.Contains(t, out, "Rendered 2 files (1 written, 1 unchanged), 1 failed")
	assert.NotContains(t, out, root)
}

func TestTextReporter_DryRun(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	result := &runner.Result{
		DryRun: true,
		Files:  []runner.FileOutcome{{Path: "a.md", Output: "a.html", Blocks: 1}},
		Stats:  runner.Stats{FilesDiscovered: 1, FilesRendered: 1, Blocks: 1},
	}

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, "would write a.md -> a.html\n", buf.String())
}

func TestTextReporter_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})
	_, err := rep.Report(ctx, sampleResult("/tmp"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, WorkingDir: root})

	count, err := rep.Report(context.Background(), sampleResult(root))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0.0", output.Version)
	assert.False(t, output.DryRun)
	require.Len(t, output.Files, 3)

	assert.Equal(t, "a.md", output.Files[0].Path)
	assert.Equal(t, "a.html", output.Files[0].Output)
	assert.Equal(t, 3, output.Files[0].Blocks)
	assert.Equal(t, "written", output.Files[0].Status)
	assert.Equal(t, "unchanged", output.Files[1].Status)
	assert.Equal(t, "failed", output.Files[2].Status)
	assert.Equal(t, "permission denied", output.Files[2].Error)

	assert.Equal(t, 3, output.Summary.FilesDiscovered)
	assert.Equal(t, 1, output.Summary.FilesFailed)
	assert.Equal(t, 5, output.Summary.Blocks)
}

func TestJSONReporter_NilResultAndCompact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	out := strings.TrimSpace(buf.String())
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, `"files":[]`)
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatSummary, Color: "never"})
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), sampleResult("/tmp"))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out := buf.String()
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Files failed:")
	assert.Contains(t, out, "Render failed")
	assert.NotContains(t, out, "a.md")
}
