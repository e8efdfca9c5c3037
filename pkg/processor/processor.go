// Package processor turns markdown lines into a document tree in a single
// forward pass.
//
// Each line is classified in a fixed priority order: horizontal rule,
// container marker, list item, blockquote, blank line, then heading, image
// or paragraph. Lists, blockquotes and containers nest; the bookkeeping
// needed to extend, close or open them lives in a per-call parse context
// that is discarded when Parse returns.
package processor

import (
	"strings"

	"github.com/yaklabco/evergreen/pkg/document"
)

// DefaultContainerMarker opens and closes container blocks, e.g. ":::note".
const DefaultContainerMarker = ":::"

// Options configures a Processor.
type Options struct {
	// ContainerMarker is the prefix of container open/close lines.
	// Empty means DefaultContainerMarker.
	ContainerMarker string
}

// Processor parses markdown lines. It holds no parse state between calls
// and is safe for concurrent use.
type Processor struct {
	containerMarker string
}

// New creates a Processor.
func New(opts Options) *Processor {
	marker := opts.ContainerMarker
	if marker == "" {
		marker = DefaultContainerMarker
	}
	return &Processor{containerMarker: marker}
}

// ContainerMarker returns the configured container marker.
func (p *Processor) ContainerMarker() string {
	return p.containerMarker
}

// Parse classifies lines and returns the top-level document nodes.
// It never fails: lines that resemble markers but are incomplete become
// paragraphs. Empty input yields an empty, non-nil slice.
func (p *Processor) Parse(lines []string) []document.Node {
	ctx := newParseContext(p.containerMarker)
	for _, line := range lines {
		ctx.line(line)
	}
	return ctx.nodes
}

// ParseText splits text into lines and parses them.
func (p *Processor) ParseText(text string) []document.Node {
	return p.Parse(SplitLines(text))
}

// SplitLines splits text on '\n', dropping a trailing '\r' from each line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// parseContext is the transient state of one Parse call.
type parseContext struct {
	marker string

	// nodes is the top-level output.
	nodes []document.Node

	// containers is the stack of open containers, innermost last.
	containers []*document.Container

	// List tracking. listStack holds the ancestors of list, outermost first.
	list       *document.List
	listStack  []*document.List
	listIndent int

	// Blockquote tracking. quotes holds the open chain, outermost first;
	// quoteDepth is the marker count of the last blockquote line.
	quotes       []*document.Blockquote
	quoteDepth   int
	quotePending bool
}

func newParseContext(marker string) *parseContext {
	return &parseContext{
		marker: marker,
		nodes:  []document.Node{},
	}
}

// emit appends n to the innermost open container, or to the top level.
func (c *parseContext) emit(n document.Node) {
	if len(c.containers) > 0 {
		inner := c.containers[len(c.containers)-1]
		inner.Children = append(inner.Children, n)
		return
	}
	c.nodes = append(c.nodes, n)
}

func (c *parseContext) resetList() {
	c.list = nil
	c.listStack = nil
	c.listIndent = 0
}

func (c *parseContext) resetQuote() {
	c.quotes = nil
	c.quoteDepth = 0
	c.quotePending = false
}

func (c *parseContext) line(raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		c.resetList()
		c.resetQuote()
		return
	}

	lineBreak := HasLineBreak(raw)

	if IsHorizontalRule(trimmed) {
		c.emit(&document.HorizontalRule{})
	} else if identifier, ok := ParseContainerMarker(trimmed, c.marker); ok {
		c.container(identifier, lineBreak)
		return
	} else if marker, ok := ParseListMarker(trimmed); ok {
		c.listItem(raw, marker)
		// Items hold no child nodes; the break is flagged on the item.
		c.list.LastItem().Break = lineBreak
		return
	} else if depth, content, ok := ParseBlockquoteMarker(trimmed); ok {
		c.blockquote(depth, content)
		if lineBreak {
			current := c.quotes[len(c.quotes)-1]
			current.Children = append(current.Children, &document.LineBreak{})
		}
		return
	} else {
		c.resetList()
		c.resetQuote()
		c.text(trimmed)
	}

	if lineBreak {
		c.emit(&document.LineBreak{})
	}
}

// container opens a container, or closes the innermost one when the
// identifier matches it. A line break follows the container in the scope
// that holds it.
func (c *parseContext) container(identifier string, lineBreak bool) {
	c.resetList()
	c.resetQuote()

	if n := len(c.containers); n > 0 && c.containers[n-1].Identifier == identifier {
		c.containers = c.containers[:n-1]
		if lineBreak {
			c.emit(&document.LineBreak{})
		}
		return
	}

	opened := &document.Container{Identifier: identifier}
	c.emit(opened)
	if lineBreak {
		c.emit(&document.LineBreak{})
	}
	c.containers = append(c.containers, opened)
}

func (c *parseContext) listItem(raw string, marker ListMarker) {
	c.resetQuote()
	indent := Indentation(raw)

	if c.list == nil {
		c.openList(marker, indent)
		return
	}

	switch {
	case indent > c.listIndent:
		owner := c.list.LastItem()
		c.listIndent = indent
		if owner.Nested != nil {
			c.listStack = append(c.listStack, c.list)
			c.list = owner.Nested
			break
		}
		sub := newList(marker)
		owner.Nested = sub
		c.listStack = append(c.listStack, c.list)
		c.list = sub
		appendItem(sub, marker)
		return

	case indent < c.listIndent:
		c.listIndent = indent
		if len(c.listStack) == 0 {
			break
		}
		if indent == 0 {
			c.list = c.listStack[0]
			c.listStack = nil
			break
		}
		// One level per line, however far the indentation dropped.
		c.list = c.listStack[len(c.listStack)-1]
		c.listStack = c.listStack[:len(c.listStack)-1]
	}

	if c.list.Ordered != marker.Ordered {
		c.openList(marker, indent)
		return
	}

	appendItem(c.list, marker)
}

// openList starts a new list in the current scope, closing any open chain.
func (c *parseContext) openList(marker ListMarker, indent int) {
	list := newList(marker)
	appendItem(list, marker)
	c.emit(list)

	c.list = list
	c.listStack = nil
	c.listIndent = indent
}

func newList(marker ListMarker) *document.List {
	list := &document.List{Ordered: marker.Ordered}
	if marker.Ordered {
		list.Start = marker.Number
	}
	return list
}

func appendItem(list *document.List, marker ListMarker) {
	text, links := ExtractLinks(marker.Content, 0)
	list.Items = append(list.Items, &document.ListItem{Text: text, Links: links})
}

func (c *parseContext) blockquote(depth int, content string) {
	c.resetList()

	if len(c.quotes) == 0 {
		root := &document.Blockquote{}
		c.emit(root)
		c.quotes = []*document.Blockquote{root}
		c.quoteDepth = depth
		c.startQuoteParagraph(content)
		return
	}

	current := c.quotes[len(c.quotes)-1]

	switch {
	case depth > c.quoteDepth:
		child := &document.Blockquote{}
		current.Children = append(current.Children, child)
		c.quotes = append(c.quotes, child)
		c.quoteDepth = depth
		c.startQuoteParagraph(content)

	case depth < c.quoteDepth:
		up := min(c.quoteDepth-depth, len(c.quotes)-1)
		c.quotes = c.quotes[:len(c.quotes)-up]
		c.quoteDepth = depth
		c.startQuoteParagraph(content)

	case content == "":
		c.quotePending = true

	case c.quotePending:
		c.startQuoteParagraph(content)

	default:
		last, ok := current.LastChild().(*document.Paragraph)
		if !ok {
			c.startQuoteParagraph(content)
			return
		}
		text, links := ExtractLinks(content, len(last.Links))
		last.Text += " " + text
		last.Links = append(last.Links, links...)
	}
}

// startQuoteParagraph appends a paragraph to the innermost open
// blockquote. Blank content defers the paragraph to the next line.
func (c *parseContext) startQuoteParagraph(content string) {
	if content == "" {
		c.quotePending = true
		return
	}
	current := c.quotes[len(c.quotes)-1]
	text, links := ExtractLinks(content, 0)
	current.Children = append(current.Children, &document.Paragraph{Text: text, Links: links})
	c.quotePending = false
}

func (c *parseContext) text(trimmed string) {
	if level, content, ok := ParseHeading(trimmed); ok {
		text, links := ExtractLinks(content, 0)
		c.emit(&document.Heading{Level: level, Text: text, Links: links})
		return
	}

	if src, alt, title, ok := ParseImage(trimmed); ok {
		c.emit(&document.Image{Src: src, Alt: alt, Title: title})
		return
	}

	text, links := ExtractLinks(trimmed, 0)
	c.emit(&document.Paragraph{Text: text, Links: links})
}
