package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// markdownRenderer converts narrative text to sanitized HTML nodes
type markdownRenderer struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

func newMarkdownRenderer() *markdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Linkify,
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowURLSchemes("http", "https", "mailto", "tel")
	policy.RequireNoFollowOnLinks(true)

	return &markdownRenderer{markdown: md, policy: policy}
}

var fragmentContext = &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}

func (m *markdownRenderer) render(text string) ([]*html.Node, error) {
	var buf bytes.Buffer
	if err := m.markdown.Convert([]byte(text), &buf); err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}

	clean := m.policy.SanitizeReader(&buf)
	nodes, err := html.ParseFragment(clean, fragmentContext)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markdown output: %w", err)
	}
	return nodes, nil
}
