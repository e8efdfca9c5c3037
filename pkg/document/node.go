// Package document defines the document tree produced by the processor
// and consumed by the converter.
//
// The tree is a strict ownership forest: every node is reachable from the
// top-level sequence by following owned children, and no node carries a
// reference back to its owner.
package document

import "strconv"

// Kind classifies the variant of a Node.
type Kind uint8

// Node kinds.
const (
	KindHeading Kind = iota
	KindParagraph
	KindImage
	KindList
	KindListItem
	KindBlockquote
	KindHorizontalRule
	KindLineBreak
	KindContainer
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	KindHeading:        "Heading",
	KindParagraph:      "Paragraph",
	KindImage:          "Image",
	KindList:           "List",
	KindListItem:       "ListItem",
	KindBlockquote:     "Blockquote",
	KindHorizontalRule: "HorizontalRule",
	KindLineBreak:      "LineBreak",
	KindContainer:      "Container",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Node is a single element of the document tree.
// The set of implementations is closed; see the Kind constants.
type Node interface {
	Kind() Kind
	node()
}

// InlineLink is a link extracted from the text of a heading, paragraph or
// list item. The owning text holds Placeholder where the link appeared.
type InlineLink struct {
	Placeholder string `json:"placeholder"`
	Text        string `json:"text"`
	Href        string `json:"href"`
	Title       string `json:"title,omitempty"`
}

// Heading is an ATX-style heading.
type Heading struct {
	// Level is 1..6.
	Level int
	Text  string
	Links []InlineLink
}

// Paragraph is a run of text.
type Paragraph struct {
	Text  string
	Links []InlineLink
}

// Image is a standalone image line.
type Image struct {
	Src   string
	Alt   string
	Title string
}

// List is an ordered or unordered list. All items share Ordered.
type List struct {
	Ordered bool
	// Start is the number of the first item of an ordered list.
	Start int
	Items []*ListItem
}

// ListItem is one entry of a List. Nested, when set, is the sub-list the
// item owns. Break marks a line break written after the item's text.
type ListItem struct {
	Text   string
	Links  []InlineLink
	Break  bool
	Nested *List
}

// Blockquote owns paragraphs and nested blockquotes.
type Blockquote struct {
	Children []Node
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

// LineBreak is a hard line break.
type LineBreak struct{}

// Container is a custom fenced block named by Identifier.
type Container struct {
	Identifier string
	Children   []Node
}

func (*Heading) Kind() Kind        { return KindHeading }
func (*Paragraph) Kind() Kind      { return KindParagraph }
func (*Image) Kind() Kind          { return KindImage }
func (*List) Kind() Kind           { return KindList }
func (*ListItem) Kind() Kind       { return KindListItem }
func (*Blockquote) Kind() Kind     { return KindBlockquote }
func (*HorizontalRule) Kind() Kind { return KindHorizontalRule }
func (*LineBreak) Kind() Kind      { return KindLineBreak }
func (*Container) Kind() Kind      { return KindContainer }

func (*Heading) node()        {}
func (*Paragraph) node()      {}
func (*Image) node()          {}
func (*List) node()           {}
func (*ListItem) node()       {}
func (*Blockquote) node()     {}
func (*HorizontalRule) node() {}
func (*LineBreak) node()      {}
func (*Container) node()      {}

// LastItem returns the most recently appended item, or nil for an empty list.
func (l *List) LastItem() *ListItem {
	if len(l.Items) == 0 {
		return nil
	}
	return l.Items[len(l.Items)-1]
}

// LastChild returns the final child of the blockquote, or nil.
func (b *Blockquote) LastChild() Node {
	if len(b.Children) == 0 {
		return nil
	}
	return b.Children[len(b.Children)-1]
}
