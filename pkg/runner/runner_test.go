package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/evergreen/pkg/config"
	"github.com/yaklabco/evergreen/pkg/runner"
)

func fragmentConfig() *config.Config {
	cfg := config.NewConfig()
	standalone := false
	cfg.Output.Standalone = &standalone
	return cfg
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	result, err := runner.NewFromConfig(cfg).Run(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Config:     cfg,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasFailures())
}

func TestRun_WritesFragments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.md"), "# A\n\n- one\n- two\n")
	write(t, filepath.Join(dir, "docs", "b.markdown"), "para\n")

	cfg := fragmentConfig()
	result, err := runner.NewFromConfig(cfg).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       2,
		Config:     cfg,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, filepath.Join(dir, "a.md"), result.Files[0].Path)
	assert.Equal(t, 2, result.Stats.FilesWritten)
	assert.Equal(t, 2, result.Files[0].Blocks)
	assert.Equal(t, len("<h1>A</h1>\n<ul><li>one</li><li>two</li></ul>\n"), result.Files[0].Bytes)
	assert.Equal(t, result.Files[0].Bytes+len("<p>para</p>\n"), result.Stats.Bytes)

	got, err := os.ReadFile(filepath.Join(dir, "a.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>A</h1>\n<ul><li>one</li><li>two</li></ul>\n", string(got))

	got, err = os.ReadFile(filepath.Join(dir, "docs", "b.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>para</p>\n", string(got))
}

func TestRun_SecondRunIsUnchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.md"), "text\n")

	cfg := fragmentConfig()
	r := runner.NewFromConfig(cfg)
	opts := runner.Options{WorkingDir: dir, Config: cfg}

	_, err := r.Run(context.Background(), opts)
	require.NoError(t, err)

	result, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesUnchanged)
	assert.Zero(t, result.Stats.FilesWritten)
	assert.True(t, result.Files[0].Unchanged)
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.md"), "text\n")

	cfg := fragmentConfig()
	cfg.DryRun = true

	result, err := runner.NewFromConfig(cfg).Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.Stats.FilesRendered)
	assert.Zero(t, result.Stats.FilesWritten)
	assert.Equal(t, filepath.Join(dir, "a.html"), result.Files[0].Output)
	assert.NoFileExists(t, filepath.Join(dir, "a.html"))
}

func TestRun_StandalonePage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "guide.md"), ":::note\n# Guide\n:::note\n")

	cfg := config.NewConfig()
	cfg.Container.Tag = "aside"
	cfg.Output.Extension = ".htm"
	cfg.Output.Stylesheet = "site.css"

	_, err := runner.NewFromConfig(cfg).Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, "guide.htm"))
	require.NoError(t, err)
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)
	assert.Equal(t, "Guide", doc.Find("title").Text())
	assert.Equal(t, 1, doc.Find("body > aside.note > h1").Length())
	href, _ := doc.Find("link").Attr("href")
	assert.Equal(t, "site.css", href)
}

func TestRun_CustomMarker(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.md"), "%%tip\nhello\n%%tip\n:::not\n")

	cfg := fragmentConfig()
	cfg.Container.Marker = "%%"

	_, err := runner.NewFromConfig(cfg).Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "a.html"))
	require.NoError(t, err)
	assert.Equal(t, "<div class=\"tip\"><p>hello</p></div>\n<p>:::not</p>\n", string(got))
}

func TestRun_ReportsWriteFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.md"), "text\n")
	write(t, filepath.Join(dir, "b.md"), "text\n")
	// A directory where the output file should go makes the rename fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b.html"), 0o755))
	write(t, filepath.Join(dir, "b.html", "keep"), "x")

	cfg := fragmentConfig()
	result, err := runner.NewFromConfig(cfg).Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)

	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Stats.FilesFailed)
	assert.Equal(t, 1, result.Stats.FilesWritten)
	require.Error(t, result.Files[1].Error)
	assert.True(t, strings.Contains(result.Files[1].Error.Error(), "b.html"))
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.NewFromConfig(config.NewConfig()).Run(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRenderFile_MissingSource(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	outcome := runner.NewFromConfig(cfg).RenderFile(context.Background(), filepath.Join(t.TempDir(), "gone.md"), cfg)
	require.Error(t, outcome.Error)
}

func TestFileOutcomeStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		outcome runner.FileOutcome
		want    runner.Status
	}{
		{runner.FileOutcome{Error: os.ErrNotExist, Written: true}, runner.StatusFailed},
		{runner.FileOutcome{Skipped: true}, runner.StatusSkipped},
		{runner.FileOutcome{Written: true}, runner.StatusWritten},
		{runner.FileOutcome{Unchanged: true}, runner.StatusUnchanged},
		{runner.FileOutcome{}, runner.StatusRendered},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.outcome.Status())
	}
}
