package converter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/yaklabco/evergreen/pkg/converter"
	"github.com/yaklabco/evergreen/pkg/document"
	"github.com/yaklabco/evergreen/pkg/processor"
)

// render parses lines and returns a queryable document of the output.
func render(t *testing.T, lines ...string) *goquery.Document {
	t.Helper()

	nodes := processor.New(processor.Options{}).Parse(lines)
	out, err := converter.New(converter.Options{}).Convert(nodes)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	return doc
}

func TestConvertSimpleBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		nodes []document.Node
		want  string
	}{
		{
			name:  "paragraph",
			nodes: []document.Node{&document.Paragraph{Text: "hello"}},
			want:  "<p>hello</p>",
		},
		{
			name:  "heading",
			nodes: []document.Node{&document.Heading{Level: 3, Text: "Three"}},
			want:  "<h3>Three</h3>",
		},
		{
			name: "two blocks on separate lines",
			nodes: []document.Node{
				&document.Heading{Level: 1, Text: "A"},
				&document.Paragraph{Text: "b"},
			},
			want: "<h1>A</h1>\n<p>b</p>",
		},
		{
			name:  "text is escaped",
			nodes: []document.Node{&document.Paragraph{Text: "a < b & c"}},
			want:  "<p>a &lt; b &amp; c</p>",
		},
		{
			name:  "empty forest",
			nodes: nil,
			want:  "",
		},
	}

	conv := converter.New(converter.Options{})
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.Convert(tc.nodes)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConvertHeadingLevelClamped(t *testing.T) {
	t.Parallel()

	doc := render(t, "######## deep")
	assert.Equal(t, 1, doc.Find("h6").Length())
	assert.Equal(t, "deep", doc.Find("h6").Text())
}

func TestConvertImage(t *testing.T) {
	t.Parallel()

	doc := render(t, "![alt](src.png title text)")
	img := doc.Find("img")
	require.Equal(t, 1, img.Length())

	src, _ := img.Attr("src")
	alt, _ := img.Attr("alt")
	title, _ := img.Attr("title")
	assert.Equal(t, "src.png", src)
	assert.Equal(t, "alt", alt)
	assert.Equal(t, "title text", title)

	t.Run("missing title is omitted", func(t *testing.T) {
		t.Parallel()

		doc := render(t, "![a](b.png)")
		_, ok := doc.Find("img").Attr("title")
		assert.False(t, ok)
	})
}

func TestConvertLists(t *testing.T) {
	t.Parallel()

	doc := render(t, "- a", "- b", "1. c")
	assert.Equal(t, 1, doc.Find("body > ul").Length())
	assert.Equal(t, 2, doc.Find("body > ul > li").Length())
	assert.Equal(t, 1, doc.Find("body > ol > li").Length())

	t.Run("nested list lives inside its item", func(t *testing.T) {
		t.Parallel()

		doc := render(t, "- a", "  - a1", "  - a2", "- b")
		assert.Equal(t, 2, doc.Find("body > ul > li").Length())
		assert.Equal(t, 2, doc.Find("body > ul > li:first-child > ul > li").Length())
	})

	t.Run("ordered start", func(t *testing.T) {
		t.Parallel()

		doc := render(t, "5. five")
		start, ok := doc.Find("ol").Attr("start")
		require.True(t, ok)
		assert.Equal(t, "5", start)

		doc = render(t, "1. one")
		_, ok = doc.Find("ol").Attr("start")
		assert.False(t, ok)

		doc = render(t, "1234567890. long")
		_, ok = doc.Find("ol").Attr("start")
		assert.False(t, ok)
	})
}

func TestConvertBlockquote(t *testing.T) {
	t.Parallel()

	doc := render(t, "> first", "> second")
	assert.Equal(t, 1, doc.Find("blockquote > p").Length())
	assert.Equal(t, "first second", doc.Find("blockquote > p").Text())

	doc = render(t, "> first", ">", "> second", ">> nested")
	assert.Equal(t, 2, doc.Find("body > blockquote > p").Length())
	assert.Equal(t, "nested", doc.Find("blockquote > blockquote > p").Text())
}

func TestConvertContainer(t *testing.T) {
	t.Parallel()

	doc := render(t, ":::warning", "# Careful", ":::warning")
	box := doc.Find("div.warning")
	require.Equal(t, 1, box.Length())
	assert.Equal(t, "Careful", box.Find("h1").Text())

	t.Run("custom tag", func(t *testing.T) {
		t.Parallel()

		nodes := []document.Node{&document.Container{Identifier: "side", Children: []document.Node{
			&document.Paragraph{Text: "x"},
		}}}
		out, err := converter.New(converter.Options{ContainerTag: "Aside"}).Convert(nodes)
		require.NoError(t, err)
		assert.Equal(t, `<aside class="side"><p>x</p></aside>`, out)
	})
}

func TestConvertRuleAndBreak(t *testing.T) {
	t.Parallel()

	doc := render(t, "***", "text  ")
	assert.Equal(t, 1, doc.Find("hr").Length())

	// The break directly follows the paragraph it came from.
	assert.Equal(t, 1, doc.Find("p + br").Length())
}

func TestConvertBreakStaysWithItsLine(t *testing.T) {
	t.Parallel()

	nodes := processor.New(processor.Options{}).Parse([]string{"- a  ", "- b"})
	out, err := converter.New(converter.Options{}).Convert(nodes)
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>a<br/></li><li>b</li></ul>", out)

	doc := render(t, "> first  ", "> second")
	assert.Equal(t, 2, doc.Find("blockquote > p").Length())
	assert.Equal(t, 1, doc.Find("blockquote > p + br + p").Length())
	assert.Equal(t, 0, doc.Find("blockquote + br").Length())
}

func TestConvertLinks(t *testing.T) {
	t.Parallel()

	doc := render(t, `see [the docs](https://example.com/docs "Docs") and [home](/)`)

	links := doc.Find("p > a")
	require.Equal(t, 2, links.Length())

	first := links.First()
	href, _ := first.Attr("href")
	title, _ := first.Attr("title")
	assert.Equal(t, "https://example.com/docs", href)
	assert.Equal(t, "Docs", title)
	assert.Equal(t, "the docs", first.Text())

	_, hasTitle := links.Last().Attr("title")
	assert.False(t, hasTitle)

	assert.Equal(t, "see the docs and home", doc.Find("p").Text())

	t.Run("links in headings and list items", func(t *testing.T) {
		t.Parallel()

		doc := render(t, "## [Top](#top)", "- [item](/item)")
		assert.Equal(t, 1, doc.Find("h2 > a").Length())
		assert.Equal(t, 1, doc.Find("li > a").Length())
	})
}

func TestMountReplacesSurface(t *testing.T) {
	t.Parallel()

	surface := &html.Node{Type: html.ElementNode, Data: "main"}
	surface.AppendChild(&html.Node{Type: html.TextNode, Data: "stale"})

	conv := converter.New(converter.Options{})
	conv.Mount(surface, []document.Node{&document.Paragraph{Text: "one"}})
	conv.Mount(surface, []document.Node{&document.Paragraph{Text: "two"}, &document.HorizontalRule{}})

	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, surface))
	assert.Equal(t, "<main><p>two</p><hr/></main>", buf.String())
}

func TestRenderPage(t *testing.T) {
	t.Parallel()

	nodes := processor.New(processor.Options{}).Parse([]string{"# Hello [world](/w)", "body text"})
	conv := converter.New(converter.Options{})

	var buf bytes.Buffer
	require.NoError(t, conv.RenderPage(&buf, nodes, converter.PageOptions{Stylesheet: "style.css"}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "Hello world", doc.Find("head > title").Text())

	href, ok := doc.Find(`head > link[rel="stylesheet"]`).Attr("href")
	require.True(t, ok)
	assert.Equal(t, "style.css", href)

	assert.Equal(t, 1, doc.Find("body > h1").Length())
	assert.Equal(t, 1, doc.Find("body > p").Length())
}

func TestFirstHeading(t *testing.T) {
	t.Parallel()

	assert.Empty(t, converter.FirstHeading(nil))
	nodes := []document.Node{
		&document.Paragraph{Text: "intro"},
		&document.Container{Identifier: "c", Children: []document.Node{
			&document.Heading{Level: 2, Text: "Inside"},
		}},
	}
	assert.Equal(t, "Inside", converter.FirstHeading(nodes))
}
