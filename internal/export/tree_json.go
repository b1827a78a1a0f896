package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/user/pagesmith/internal/render"
	"github.com/user/pagesmith/internal/schema"
	"golang.org/x/net/html"
)

// TreeDocument is the JSON projection of a rendered page
type TreeDocument struct {
	Metadata Metadata             `json:"metadata"`
	Nav      []schema.NavItem     `json:"nav"`
	Viewer   []render.ViewerImage `json:"viewer"`
	Root     *Node                `json:"root"`
}

// Metadata describes the page and when the projection was made
type Metadata struct {
	Title       string    `json:"title"`
	Language    string    `json:"language"`
	GeneratedAt time.Time `json:"generated_at"`
	Generator   Generator `json:"generator"`
	NodeCount   int       `json:"node_count"`
}

// Generator information
type Generator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Node is one element or text run of the visual tree
type Node struct {
	Tag      string      `json:"tag,omitempty"`
	Attrs    []Attribute `json:"attrs,omitempty"`
	Text     string      `json:"text,omitempty"`
	Children []*Node     `json:"children,omitempty"`
}

// Attribute keeps attributes in document order
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// GeneratorVersion is reported in tree projections
var GeneratorVersion = "dev"

// BuildTreeDocument projects tree into its JSON shape
func BuildTreeDocument(tree *render.Tree, meta schema.Meta) *TreeDocument {
	count := 0
	root := projectNode(tree.Root, &count)

	return &TreeDocument{
		Metadata: Metadata{
			Title:       meta.Title,
			Language:    tree.Locale,
			GeneratedAt: time.Now().UTC(),
			Generator:   Generator{Name: "pagesmith", Version: GeneratorVersion},
			NodeCount:   count,
		},
		Nav:    tree.Nav,
		Viewer: tree.Viewer,
		Root:   root,
	}
}

// TreeJSON renders cfg and returns its indented JSON projection
func (e *Exporter) TreeJSON(cfg schema.PageConfig) ([]byte, error) {
	tree, err := e.renderer.Render(cfg)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(BuildTreeDocument(tree, cfg.Meta), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tree: %w", err)
	}
	return data, nil
}

func projectNode(n *html.Node, count *int) *Node {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		*count++
		return &Node{Text: n.Data}
	case html.ElementNode:
		*count++
		out := &Node{Tag: n.Data}
		for _, a := range n.Attr {
			out.Attrs = append(out.Attrs, Attribute{Key: a.Key, Value: a.Val})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := projectNode(c, count); child != nil {
				out.Children = append(out.Children, child)
			}
		}
		return out
	default:
		return nil
	}
}
