package config

// DefaultTemplateHeader returns the header for generated configs.
func DefaultTemplateHeader() string {
	return `# evergreen configuration
# See: https://github.com/yaklabco/evergreen`
}

// DefaultTemplate returns the commented configuration written by
// "evergreen init". Every setting is shown at its default.
func DefaultTemplate() []byte {
	return []byte(DefaultTemplateHeader() + `

# Custom container blocks, e.g.
#   :::warning
#   Careful now.
#   :::warning
container:
  # Prefix of container open/close lines
  marker: ":::"
  # Element containers render as; the identifier becomes its class
  tag: div

# Rendered files
output:
  # Extension of files written next to each markdown source
  extension: .html
  # Wrap output in a complete HTML page
  standalone: true
  # Stylesheet linked from standalone pages
  # stylesheet: style.css

# Reference rendering used by "evergreen convert --compare"
reference:
  # Markdown flavor: commonmark or gfm
  flavor: commonmark

# File patterns to skip (glob patterns, ** crosses directories)
# ignore:
#   - "node_modules/**"
#   - "drafts/**"
`)
}
