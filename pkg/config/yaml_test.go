package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/evergreen/pkg/config"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, ":::", cfg.Container.Marker)
	assert.Equal(t, "div", cfg.Container.Tag)
	assert.Equal(t, ".html", cfg.Output.Extension)
	assert.True(t, cfg.Output.IsStandalone())
	assert.Equal(t, "commonmark", cfg.Reference.Flavor)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Zero(t, cfg.Jobs)
}

func TestIsStandalone(t *testing.T) {
	yes, no := true, false

	assert.True(t, config.OutputConfig{}.IsStandalone())
	assert.True(t, config.OutputConfig{Standalone: &yes}.IsStandalone())
	assert.False(t, config.OutputConfig{Standalone: &no}.IsStandalone())
}

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies Ignore slice", func(t *testing.T) {
		original := &config.Config{Ignore: []string{"drafts/**", "*.tmp.md"}}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original.Ignore, clone.Ignore)

		clone.Ignore[0] = "changed"
		assert.Equal(t, "drafts/**", original.Ignore[0])
	})

	t.Run("deep copies Standalone", func(t *testing.T) {
		original := config.NewConfig()
		clone := original.Clone()

		*clone.Output.Standalone = false
		assert.True(t, original.Output.IsStandalone())
	})

	t.Run("preserves CLI-only fields", func(t *testing.T) {
		original := config.NewConfig()
		original.DryRun = true
		original.Format = config.FormatJSON
		original.Jobs = 3

		clone := original.Clone()
		assert.True(t, clone.DryRun)
		assert.Equal(t, config.FormatJSON, clone.Format)
		assert.Equal(t, 3, clone.Jobs)
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	original := config.NewConfig()
	original.Container.Marker = "%%"
	original.Output.Stylesheet = "site.css"
	original.Ignore = []string{"drafts/**"}
	original.Jobs = 4

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "jobs")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "%%", parsed.Container.Marker)
	assert.Equal(t, "site.css", parsed.Output.Stylesheet)
	assert.Equal(t, []string{"drafts/**"}, parsed.Ignore)
	assert.Zero(t, parsed.Jobs)
}

func TestFromYAMLPartial(t *testing.T) {
	cfg, err := config.FromYAML([]byte("output:\n  standalone: false\n"))
	require.NoError(t, err)

	require.NotNil(t, cfg.Output.Standalone)
	assert.False(t, cfg.Output.IsStandalone())
	assert.Empty(t, cfg.Container.Marker)
	assert.Empty(t, cfg.Output.Extension)
}

func TestFromYAMLInvalid(t *testing.T) {
	_, err := config.FromYAML([]byte("container: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestToYAMLWithHeader(t *testing.T) {
	data, err := config.NewConfig().ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# header\n\ncontainer:")
}

func TestDefaultTemplateParsesToDefaults(t *testing.T) {
	cfg, err := config.FromYAML(config.DefaultTemplate())
	require.NoError(t, err)

	defaults := config.NewConfig()
	assert.Equal(t, defaults.Container, cfg.Container)
	assert.Equal(t, defaults.Output.Extension, cfg.Output.Extension)
	assert.Equal(t, defaults.Output.IsStandalone(), cfg.Output.IsStandalone())
	assert.Equal(t, defaults.Reference, cfg.Reference)
	assert.Empty(t, cfg.Ignore)
}
