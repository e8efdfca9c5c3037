package document

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Placeholder delimiters. Both are Unicode private-use code points so they
// never appear in ordinary prose.
const (
	PlaceholderOpen  = '\uE000'
	PlaceholderClose = '\uE001'
)

// PlaceholderToken returns the token that stands in for the index-th link
// of a node's text.
func PlaceholderToken(index int) string {
	return string(PlaceholderOpen) + strconv.Itoa(index) + string(PlaceholderClose)
}

// StripDelimiters removes placeholder delimiters from source text so input
// can never forge a token.
func StripDelimiters(text string) string {
	if !strings.ContainsRune(text, PlaceholderOpen) && !strings.ContainsRune(text, PlaceholderClose) {
		return text
	}
	return strings.Map(func(r rune) rune {
		if r == PlaceholderOpen || r == PlaceholderClose {
			return -1
		}
		return r
	}, text)
}

// Segment is a piece of node text: either literal text or a resolved link.
type Segment struct {
	Text string
	Link *InlineLink
}

// Segments splits text on placeholder tokens, resolving each against links.
// Tokens with no matching link are kept as literal text.
func Segments(text string, links []InlineLink) []Segment {
	if len(links) == 0 || !strings.ContainsRune(text, PlaceholderOpen) {
		if text == "" {
			return nil
		}
		return []Segment{{Text: text}}
	}

	byToken := make(map[string]int, len(links))
	for idx, link := range links {
		byToken[link.Placeholder] = idx
	}

	var (
		segments []Segment
		literal  strings.Builder
	)
	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, Segment{Text: literal.String()})
			literal.Reset()
		}
	}

	for text != "" {
		start := strings.IndexRune(text, PlaceholderOpen)
		if start < 0 {
			literal.WriteString(text)
			break
		}
		literal.WriteString(text[:start])
		text = text[start:]

		end := strings.IndexRune(text, PlaceholderClose)
		if end < 0 {
			literal.WriteString(text)
			break
		}
		end += utf8.RuneLen(PlaceholderClose)

		token := text[:end]
		if idx, ok := byToken[token]; ok {
			flush()
			segments = append(segments, Segment{Link: &links[idx]})
		} else {
			literal.WriteString(token)
		}
		text = text[end:]
	}
	flush()

	return segments
}

// PlainText returns text with every placeholder replaced by its link text.
func PlainText(text string, links []InlineLink) string {
	var b strings.Builder
	for _, seg := range Segments(text, links) {
		if seg.Link != nil {
			b.WriteString(seg.Link.Text)
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}
