// Package config defines core configuration types for evergreen.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

// Default values.
const (
	DefaultContainerMarker = ":::"
	DefaultContainerTag    = "div"
	DefaultExtension       = ".html"
	DefaultFlavor          = "commonmark"
)

// ContainerConfig controls custom container blocks.
type ContainerConfig struct {
	// Marker is the prefix of container open/close lines, e.g. ":::".
	Marker string `yaml:"marker,omitempty"`

	// Tag is the element containers render as.
	Tag string `yaml:"tag,omitempty"`
}

// OutputConfig controls rendered files.
type OutputConfig struct {
	// Extension replaces the markdown extension of rendered files.
	Extension string `yaml:"extension,omitempty"`

	// Standalone wraps output in a complete HTML page. Nil means true.
	Standalone *bool `yaml:"standalone,omitempty"`

	// Stylesheet is linked from standalone pages when set.
	Stylesheet string `yaml:"stylesheet,omitempty"`
}

// IsStandalone reports whether output is wrapped in a page.
func (o OutputConfig) IsStandalone() bool {
	return o.Standalone == nil || *o.Standalone
}

// ReferenceConfig controls the goldmark comparison rendering.
type ReferenceConfig struct {
	// Flavor is "commonmark" or "gfm".
	Flavor string `yaml:"flavor,omitempty"`
}

// Config is the root configuration structure for evergreen.
type Config struct {
	Container ContainerConfig `yaml:"container"`
	Output    OutputConfig    `yaml:"output"`
	Reference ReferenceConfig `yaml:"reference"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// DryRun renders without writing output files.
	DryRun bool `yaml:"-"`

	// Format specifies the report format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	standalone := true
	return &Config{
		Container: ContainerConfig{
			Marker: DefaultContainerMarker,
			Tag:    DefaultContainerTag,
		},
		Output: OutputConfig{
			Extension:  DefaultExtension,
			Standalone: &standalone,
		},
		Reference: ReferenceConfig{
			Flavor: DefaultFlavor,
		},
		Format: FormatText,
		Jobs:   0, // 0 means use NumCPU
	}
}
