// Package reference renders markdown with goldmark so evergreen output can
// be compared against a standard CommonMark or GFM rendering.
package reference

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Supported markdown flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Renderer renders markdown through goldmark.
type Renderer struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a Renderer for the given flavor.
// Unknown flavors fall back to "commonmark".
func New(flavor string) *Renderer {
	f := FlavorOrDefault(flavor)
	return &Renderer{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured flavor.
func (r *Renderer) Flavor() string {
	return r.flavor
}

// Render converts src to HTML.
func (r *Renderer) Render(ctx context.Context, src []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("reference render cancelled: %w", err)
	}

	doc := r.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return "", fmt.Errorf("reference render: %w", err)
	}
	return buf.String(), nil
}

// IsValidFlavor reports whether flavor is supported.
func IsValidFlavor(flavor string) bool {
	return flavor == FlavorCommonMark || flavor == FlavorGFM
}

// FlavorOrDefault returns flavor if it is supported, otherwise
// FlavorCommonMark.
func FlavorOrDefault(flavor string) string {
	if IsValidFlavor(flavor) {
		return flavor
	}
	return FlavorCommonMark
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(opts...)
}
