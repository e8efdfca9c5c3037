package converter

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/evergreen/pkg/document"
)

// PageOptions configures a standalone HTML page.
type PageOptions struct {
	// Title is the page title. Empty means the text of the first heading.
	Title string

	// Stylesheet, when set, is linked from the page head.
	Stylesheet string
}

// Page wraps the rendered forest in a complete HTML document. The body
// element is the mount surface.
func (c *Converter) Page(nodes []document.Node, opts PageOptions) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	root.AppendChild(head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))

	title := opts.Title
	if title == "" {
		title = FirstHeading(nodes)
	}
	if title != "" {
		titleEl := element(atom.Title)
		titleEl.AppendChild(&html.Node{Type: html.TextNode, Data: title})
		head.AppendChild(titleEl)
	}

	if opts.Stylesheet != "" {
		head.AppendChild(element(atom.Link, attr("rel", "stylesheet"), attr("href", opts.Stylesheet)))
	}

	body := element(atom.Body)
	root.AppendChild(body)
	c.Mount(body, nodes)

	return doc
}

// RenderPage writes a standalone HTML page for the forest to w.
func (c *Converter) RenderPage(w io.Writer, nodes []document.Node, opts PageOptions) error {
	if err := html.Render(w, c.Page(nodes, opts)); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// FirstHeading returns the plain text of the first heading in document
// order, or "" if there is none.
func FirstHeading(nodes []document.Node) string {
	headings := document.FindByKind(nodes, document.KindHeading)
	if len(headings) == 0 {
		return ""
	}
	h := headings[0].(*document.Heading)
	return document.PlainText(h.Text, h.Links)
}
