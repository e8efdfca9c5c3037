package config

// OutputFormat specifies the report format of a render run.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"

	// FormatSummary prints only the aggregate statistics block.
	FormatSummary OutputFormat = "summary"
)

// IsValid reports whether f is a known format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// Formats returns all known formats.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatSummary}
}
