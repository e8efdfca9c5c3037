package document

import (
	"encoding/json"
	"fmt"
)

// TreeNode is the serializable shape of a Node, tagged by kind.
type TreeNode struct {
	Kind       string       `json:"kind"`
	Level      int          `json:"level,omitempty"`
	Text       string       `json:"text,omitempty"`
	Links      []InlineLink `json:"links,omitempty"`
	Src        string       `json:"src,omitempty"`
	Alt        string       `json:"alt,omitempty"`
	Title      string       `json:"title,omitempty"`
	Ordered    bool         `json:"ordered,omitempty"`
	Start      int          `json:"start,omitempty"`
	Identifier string       `json:"identifier,omitempty"`
	Break      bool         `json:"break,omitempty"`
	Items      []TreeNode   `json:"items,omitempty"`
	Nested     *TreeNode    `json:"nested,omitempty"`
	Children   []TreeNode   `json:"children,omitempty"`
}

// Tree converts a forest into its serializable form.
func Tree(nodes []Node) []TreeNode {
	out := make([]TreeNode, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		out = append(out, treeNode(n))
	}
	return out
}

func treeNode(n Node) TreeNode {
	tn := TreeNode{Kind: n.Kind().String()}

	switch v := n.(type) {
	case *Heading:
		tn.Level = v.Level
		tn.Text = v.Text
		tn.Links = v.Links
	case *Paragraph:
		tn.Text = v.Text
		tn.Links = v.Links
	case *Image:
		tn.Src = v.Src
		tn.Alt = v.Alt
		tn.Title = v.Title
	case *List:
		tn.Ordered = v.Ordered
		tn.Start = v.Start
		tn.Items = make([]TreeNode, 0, len(v.Items))
		for _, item := range v.Items {
			tn.Items = append(tn.Items, treeNode(item))
		}
	case *ListItem:
		tn.Text = v.Text
		tn.Links = v.Links
		tn.Break = v.Break
		if v.Nested != nil {
			nested := treeNode(v.Nested)
			tn.Nested = &nested
		}
	case *Blockquote:
		tn.Children = Tree(v.Children)
	case *Container:
		tn.Identifier = v.Identifier
		tn.Children = Tree(v.Children)
	case *HorizontalRule, *LineBreak:
	}

	return tn
}

// MarshalTree encodes the forest as indented JSON.
func MarshalTree(nodes []Node) ([]byte, error) {
	data, err := json.MarshalIndent(Tree(nodes), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document tree: %w", err)
	}
	return data, nil
}
