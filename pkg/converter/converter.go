// Package converter serializes a document tree into HTML.
//
// The converter builds golang.org/x/net/html element trees, which can be
// rendered to a writer or mounted onto an existing node that acts as the
// output surface. Link placeholders left in node text by the processor are
// resolved into anchor elements here.
//
// Text is emitted as HTML text nodes; href and src values are passed
// through verbatim. Callers rendering untrusted input must sanitize the
// result.
package converter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/evergreen/pkg/document"
)

// DefaultContainerTag is the element used for container blocks.
const DefaultContainerTag = "div"

// Options configures a Converter.
type Options struct {
	// ContainerTag is the element name for containers. Empty means
	// DefaultContainerTag.
	ContainerTag string
}

// Converter renders document trees. It is stateless and safe for
// concurrent use.
type Converter struct {
	containerTag  string
	containerAtom atom.Atom
}

//nolint:gochecknoglobals // Read-only lookup table.
var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// New creates a Converter.
func New(opts Options) *Converter {
	tag := strings.ToLower(strings.TrimSpace(opts.ContainerTag))
	if tag == "" {
		tag = DefaultContainerTag
	}
	return &Converter{
		containerTag:  tag,
		containerAtom: atom.Lookup([]byte(tag)),
	}
}

// Build converts the forest into detached HTML element trees, one per
// top-level node, walking depth-first in document order.
func (c *Converter) Build(nodes []document.Node) []*html.Node {
	out := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if el := c.build(n); el != nil {
			out = append(out, el)
		}
	}
	return out
}

// Convert renders the forest as an HTML fragment with one top-level
// element per line.
func (c *Converter) Convert(nodes []document.Node) (string, error) {
	var b strings.Builder
	if err := c.Render(&b, nodes); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Render writes the forest to w as an HTML fragment.
func (c *Converter) Render(w io.Writer, nodes []document.Node) error {
	for i, el := range c.Build(nodes) {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return fmt.Errorf("render document: %w", err)
			}
		}
		if err := html.Render(w, el); err != nil {
			return fmt.Errorf("render %s: %w", el.Data, err)
		}
	}
	return nil
}

// Mount replaces every child of surface with the rendered forest.
// Nothing of the surface's previous content is kept.
func (c *Converter) Mount(surface *html.Node, nodes []document.Node) {
	for child := surface.FirstChild; child != nil; {
		next := child.NextSibling
		surface.RemoveChild(child)
		child = next
	}
	for _, el := range c.Build(nodes) {
		surface.AppendChild(el)
	}
}

func (c *Converter) build(n document.Node) *html.Node {
	switch v := n.(type) {
	case *document.Heading:
		level := min(max(v.Level, 1), len(headingAtoms))
		el := element(headingAtoms[level-1])
		appendText(el, v.Text, v.Links)
		return el

	case *document.Paragraph:
		el := element(atom.P)
		appendText(el, v.Text, v.Links)
		return el

	case *document.Image:
		el := element(atom.Img, attr("src", v.Src), attr("alt", v.Alt))
		if v.Title != "" {
			el.Attr = append(el.Attr, attr("title", v.Title))
		}
		return el

	case *document.List:
		return c.list(v)

	case *document.ListItem:
		return c.listItem(v)

	case *document.Blockquote:
		el := element(atom.Blockquote)
		c.appendChildren(el, v.Children)
		return el

	case *document.HorizontalRule:
		return element(atom.Hr)

	case *document.LineBreak:
		return element(atom.Br)

	case *document.Container:
		el := &html.Node{
			Type:     html.ElementNode,
			DataAtom: c.containerAtom,
			Data:     c.containerTag,
			Attr:     []html.Attribute{attr("class", v.Identifier)},
		}
		c.appendChildren(el, v.Children)
		return el
	}

	return nil
}

func (c *Converter) list(l *document.List) *html.Node {
	el := element(atom.Ul)
	if l.Ordered {
		el = element(atom.Ol)
		if l.Start != 1 {
			el.Attr = append(el.Attr, attr("start", strconv.Itoa(l.Start)))
		}
	}
	for _, item := range l.Items {
		el.AppendChild(c.listItem(item))
	}
	return el
}

func (c *Converter) listItem(item *document.ListItem) *html.Node {
	el := element(atom.Li)
	appendText(el, item.Text, item.Links)
	if item.Break {
		el.AppendChild(element(atom.Br))
	}
	if item.Nested != nil {
		el.AppendChild(c.list(item.Nested))
	}
	return el
}

func (c *Converter) appendChildren(parent *html.Node, children []document.Node) {
	for _, child := range children {
		if el := c.build(child); el != nil {
			parent.AppendChild(el)
		}
	}
}

// appendText adds text to parent, turning each link placeholder into an
// anchor element.
func appendText(parent *html.Node, text string, links []document.InlineLink) {
	for _, seg := range document.Segments(text, links) {
		if seg.Link == nil {
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: seg.Text})
			continue
		}
		parent.AppendChild(anchor(*seg.Link))
	}
}

func anchor(link document.InlineLink) *html.Node {
	el := element(atom.A, attr("href", link.Href))
	if link.Title != "" {
		el.Attr = append(el.Attr, attr("title", link.Title))
	}
	el.AppendChild(&html.Node{Type: html.TextNode, Data: link.Text})
	return el
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}
