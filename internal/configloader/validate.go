package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/evergreen/pkg/config"
	"github.com/yaklabco/evergreen/pkg/reference"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "container.tag").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	marker := cfg.Container.Marker
	switch {
	case marker == "":
		result.fail("container.marker", marker, "container marker must not be empty")
	case strings.ContainsAny(marker, " \t"):
		result.fail("container.marker", marker, "container marker %q must not contain whitespace", marker)
	case strings.ContainsRune(reservedMarkerStart, rune(marker[0])):
		result.fail("container.marker", marker,
			"container marker %q must not start with a list, heading, blockquote or rule character", marker)
	}

	tag := cfg.Container.Tag
	switch {
	case !IsValidTag(tag):
		result.fail("container.tag", tag,
			"invalid container tag %q; must be a letter followed by letters, digits or '-'", tag)
	case !IsContainerTag(tag):
		result.fail("container.tag", tag, "container tag %q cannot hold child elements", tag)
	}

	if ext := cfg.Output.Extension; !strings.HasPrefix(ext, ".") || len(ext) < 2 {
		result.fail("output.extension", ext, "output extension %q must start with '.'", ext)
	}

	if !reference.IsValidFlavor(cfg.Reference.Flavor) {
		result.fail("reference.flavor", cfg.Reference.Flavor,
			"invalid flavor %q; must be one of: commonmark, gfm", cfg.Reference.Flavor)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, summary", cfg.Format)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateIgnorePatterns(cfg, result)

	return result
}

// validateIgnorePatterns warns about patterns that do not compile. Such
// patterns are skipped during discovery.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.warn(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidTag reports whether tag is usable as an HTML element name.
func IsValidTag(tag string) bool {
	if tag == "" {
		return false
	}
	for i, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}

// reservedMarkerStart lists the leading characters that the line classifier
// already gives a meaning to.
const reservedMarkerStart = "-+*_#>0123456789"

// childlessTags are void elements, which never have children, and
// raw-text elements, whose children are not parsed as markup.
//
//nolint:gochecknoglobals // Read-only lookup table.
var childlessTags = map[atom.Atom]bool{
	atom.Area:      true,
	atom.Base:      true,
	atom.Br:        true,
	atom.Col:       true,
	atom.Embed:     true,
	atom.Hr:        true,
	atom.Img:       true,
	atom.Input:     true,
	atom.Keygen:    true,
	atom.Link:      true,
	atom.Meta:      true,
	atom.Param:     true,
	atom.Source:    true,
	atom.Track:     true,
	atom.Wbr:       true,
	atom.Iframe:    true,
	atom.Noembed:   true,
	atom.Noframes:  true,
	atom.Noscript:  true,
	atom.Plaintext: true,
	atom.Script:    true,
	atom.Style:     true,
	atom.Textarea:  true,
	atom.Title:     true,
	atom.Xmp:       true,
}

// IsContainerTag reports whether an element named tag can wrap rendered
// block content. Tag names are case-insensitive.
func IsContainerTag(tag string) bool {
	return !childlessTags[atom.Lookup([]byte(strings.ToLower(tag)))]
}
