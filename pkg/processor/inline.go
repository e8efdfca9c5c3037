package processor

import (
	"strings"

	"github.com/yaklabco/evergreen/pkg/document"
)

// ExtractLinks replaces every "[text](href title)" span in text with a
// placeholder token and returns the rewritten text with the links in
// left-to-right order. Placeholder numbering starts at offset so links
// appended to an existing node keep unique tokens.
//
// Brackets and parentheses are matched with nesting, so an image wrapped
// in a link ("[![alt](src)](href)") becomes a single link whose text is
// the image markup. Spans that do not form a complete link are kept as
// literal text. Placeholder delimiters already present in text are dropped.
func ExtractLinks(text string, offset int) (string, []document.InlineLink) {
	text = document.StripDelimiters(text)
	if !strings.Contains(text, "](") {
		return text, nil
	}

	var (
		out   strings.Builder
		links []document.InlineLink
	)
	out.Grow(len(text))

	pos := 0
	for pos < len(text) {
		if text[pos] == '[' && (pos == 0 || text[pos-1] != '!') {
			if link, end, ok := matchLink(text, pos); ok {
				link.Placeholder = document.PlaceholderToken(offset + len(links))
				links = append(links, link)
				out.WriteString(link.Placeholder)
				pos = end
				continue
			}
		}
		out.WriteByte(text[pos])
		pos++
	}

	return out.String(), links
}

// matchLink parses a link starting at the '[' at start and returns the
// link and the index just past its closing parenthesis.
func matchLink(text string, start int) (document.InlineLink, int, bool) {
	closeBracket := matchingClose(text, start, '[', ']')
	if closeBracket < 0 || closeBracket+1 >= len(text) || text[closeBracket+1] != '(' {
		return document.InlineLink{}, 0, false
	}
	closeParen := matchingClose(text, closeBracket+1, '(', ')')
	if closeParen < 0 {
		return document.InlineLink{}, 0, false
	}

	link := document.InlineLink{Text: text[start+1 : closeBracket]}
	if fields := strings.Fields(text[closeBracket+2 : closeParen]); len(fields) > 0 {
		link.Href = fields[0]
		link.Title = unquote(strings.Join(fields[1:], " "))
	}

	return link, closeParen + 1, true
}
