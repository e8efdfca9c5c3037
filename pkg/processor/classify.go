package processor

import "strings"

// indentUnit is the number of spaces that make up one level of list nesting.
const indentUnit = 2

// maxHeadingLevel caps heading depth; deeper markers render as h6.
const maxHeadingLevel = 6

// ListMarker describes a list-item line.
type ListMarker struct {
	Ordered bool
	// Number is the ordinal of an ordered marker, 0 for bullets.
	Number  int
	Content string
}

// IsBlank reports whether the line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsHorizontalRule reports whether the trimmed line is three or more
// copies of one of '*', '-' or '_' and nothing else.
func IsHorizontalRule(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	first := trimmed[0]
	if first != '*' && first != '-' && first != '_' {
		return false
	}
	for i := 1; i < len(trimmed); i++ {
		if trimmed[i] != first {
			return false
		}
	}
	return true
}

// ParseContainerMarker returns the identifier of a container marker line.
// The identifier must be non-empty.
func ParseContainerMarker(trimmed, marker string) (string, bool) {
	if marker == "" || !strings.HasPrefix(trimmed, marker) {
		return "", false
	}
	identifier := strings.TrimSpace(trimmed[len(marker):])
	if identifier == "" {
		return "", false
	}
	return identifier, true
}

// maxOrdinalDigits keeps an ordered list's start number inside int32.
const maxOrdinalDigits = 9

// ParseListMarker recognizes "<digits>. content" and "- content",
// "+ content", "* content". The content must be non-empty.
func ParseListMarker(trimmed string) (ListMarker, bool) {
	if trimmed == "" {
		return ListMarker{}, false
	}

	switch trimmed[0] {
	case '-', '+', '*':
		content, ok := markerContent(trimmed[1:])
		if !ok {
			return ListMarker{}, false
		}
		return ListMarker{Content: content}, true
	}

	digits := 0
	number := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		if digits < maxOrdinalDigits {
			number = number*10 + int(trimmed[digits]-'0')
		}
		digits++
	}
	if digits == 0 || digits >= len(trimmed) || trimmed[digits] != '.' {
		return ListMarker{}, false
	}
	// Longer ordinals are still list items but carry no start number.
	if digits > maxOrdinalDigits {
		number = 1
	}

	content, ok := markerContent(trimmed[digits+1:])
	if !ok {
		return ListMarker{}, false
	}
	return ListMarker{Ordered: true, Number: number, Content: content}, true
}

// markerContent requires at least one whitespace character after a list
// marker followed by non-blank text.
func markerContent(rest string) (string, bool) {
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	content := strings.TrimSpace(rest)
	if content == "" {
		return "", false
	}
	return content, true
}

// ParseBlockquoteMarker counts the leading '>' characters of a trimmed
// line, allowing spaces between them, and returns the remaining content.
func ParseBlockquoteMarker(trimmed string) (int, string, bool) {
	depth := 0
	pos := 0
	for pos < len(trimmed) {
		switch trimmed[pos] {
		case '>':
			depth++
		case ' ', '\t':
		default:
			if depth == 0 {
				return 0, "", false
			}
			return depth, strings.TrimSpace(trimmed[pos:]), true
		}
		pos++
	}
	return depth, "", depth > 0
}

// ParseHeading returns the clamped level and trimmed text of a line that
// starts with '#'.
func ParseHeading(trimmed string) (int, string, bool) {
	if !strings.HasPrefix(trimmed, "#") {
		return 0, "", false
	}
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	text := strings.TrimSpace(trimmed[level:])
	return min(level, maxHeadingLevel), text, true
}

// ParseImage recognizes a line that is exactly "![alt](src title...)".
func ParseImage(trimmed string) (src, alt, title string, ok bool) {
	if !strings.HasPrefix(trimmed, "![") || !strings.HasSuffix(trimmed, ")") {
		return "", "", "", false
	}

	closeBracket := matchingClose(trimmed, 1, '[', ']')
	if closeBracket < 0 || closeBracket+1 >= len(trimmed) || trimmed[closeBracket+1] != '(' {
		return "", "", "", false
	}
	closeParen := matchingClose(trimmed, closeBracket+1, '(', ')')
	if closeParen != len(trimmed)-1 {
		return "", "", "", false
	}

	fields := strings.Fields(trimmed[closeBracket+2 : closeParen])
	if len(fields) == 0 {
		return "", "", "", false
	}

	return fields[0], trimmed[2:closeBracket], unquote(strings.Join(fields[1:], " ")), true
}

// Indentation returns the number of indent units before the first
// non-space character. A tab counts as one unit.
func Indentation(line string) int {
	spaces := 0
	tabs := 0
	for _, r := range line {
		switch r {
		case ' ':
			spaces++
		case '\t':
			tabs++
		default:
			return spaces/indentUnit + tabs
		}
	}
	return spaces/indentUnit + tabs
}

// HasLineBreak reports whether the untrimmed line ends in two or more spaces.
func HasLineBreak(line string) bool {
	return strings.HasSuffix(line, "  ") && !IsBlank(line)
}

// matchingClose returns the index of the delimiter closing the one at
// openAt, honoring nesting, or -1.
func matchingClose(s string, openAt int, open, closing byte) int {
	depth := 0
	for i := openAt; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// unquote strips one pair of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
