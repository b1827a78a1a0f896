// Package render turns a validated page configuration into a visual node
// tree. The same tree backs the live preview and the static export.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/user/pagesmith/internal/errors"
	"github.com/user/pagesmith/internal/i18n"
	"github.com/user/pagesmith/internal/nav"
	"github.com/user/pagesmith/internal/sanitize"
	"github.com/user/pagesmith/internal/schema"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// heroSecondaryLimit is how many secondary hero images are shown
const heroSecondaryLimit = 2

// Tree is the rendered page
type Tree struct {
	Root   *html.Node
	Nav    []schema.NavItem
	Viewer []ViewerImage
	Locale string
}

// Markup serializes the tree to HTML
func (t *Tree) Markup() string {
	var buf bytes.Buffer
	if _, err := t.WriteTo(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// WriteTo writes the serialized tree to w
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := html.Render(cw, t.Root)
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Renderer builds trees. It holds no per-page state and is safe for concurrent use.
type Renderer struct {
	locale   string
	markdown *markdownRenderer
}

// Option configures a Renderer
type Option func(*Renderer)

// WithLocale fixes the locale of fallback labels. By default they follow
// meta.language of each page.
func WithLocale(locale string) Option {
	return func(r *Renderer) {
		r.locale = locale
	}
}

// WithNarrativeMarkdown renders narrative card text as sanitized Markdown
func WithNarrativeMarkdown(enabled bool) Option {
	return func(r *Renderer) {
		if enabled {
			r.markdown = newMarkdownRenderer()
		} else {
			r.markdown = nil
		}
	}
}

// New creates a renderer
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render builds the tree for cfg. cfg must already be validated; a section
// without content is reported as a *errors.RenderError.
func (r *Renderer) Render(cfg schema.PageConfig) (tree *Tree, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			tree = nil
			err = errors.NewRenderError(fmt.Sprint(rec))
		}
	}()

	for i, section := range cfg.Sections {
		if section.Content == nil {
			return nil, errors.NewRenderError(fmt.Sprintf("section %d (%q) has no content", i+1, section.ID))
		}
	}

	locale := r.locale
	if locale == "" {
		locale = string(cfg.Meta.Language)
	}
	catalog := i18n.For(locale)

	p := &page{
		r:       r,
		catalog: catalog,
		nav:     nav.NewDeriver(catalog.Locale()).Derive(cfg.Sections),
	}
	root := p.root(cfg)

	return &Tree{
		Root:   root,
		Nav:    p.nav,
		Viewer: p.viewer,
		Locale: catalog.Locale(),
	}, nil
}

// page carries the state of one render pass
type page struct {
	r       *Renderer
	catalog *i18n.Catalog
	nav     []schema.NavItem
	viewer  []ViewerImage
}

func (p *page) untitled(s string) string {
	if strings.TrimSpace(s) == "" {
		return p.catalog.Text("render.untitled")
	}
	return s
}

func (p *page) root(cfg schema.PageConfig) *html.Node {
	theme := string(cfg.Theme.Background)
	if theme == "" {
		theme = string(schema.BackgroundLight)
	}

	root := el(atom.Div,
		"class", "render-root",
		"data-theme", theme,
		"data-label-close", p.catalog.Text("render.lightbox_close"),
		"data-label-prev", p.catalog.Text("render.lightbox_prev"),
		"data-label-next", p.catalog.Text("render.lightbox_next"),
	)
	if cfg.Theme.Radius != "" {
		setAttr(root, "data-radius", string(cfg.Theme.Radius))
	}
	if accent := sanitize.CSSColor(cfg.Theme.AccentColor); accent != "" {
		setAttr(root, "style", "--accent: "+accent)
	}

	add(root,
		el(atom.Div, "class", "render-noise", "aria-hidden", "true"),
		p.topbar(cfg.Nav.Brand),
		p.hero(cfg.Hero),
	)
	for _, section := range cfg.Sections {
		add(root, p.section(section))
	}
	return add(root, p.footer(cfg.Nav.Brand, cfg.Footer))
}

func (p *page) topbar(brand string) *html.Node {
	links := el(atom.Nav)
	for _, item := range p.nav {
		add(links, textEl(atom.A, item.Label,
			"class", "render-nav-link",
			"href", "#"+item.ID,
			"data-nav-target", item.ID,
		))
	}
	return add(el(atom.Header, "class", "render-topbar"),
		textEl(atom.Strong, brand),
		links,
	)
}

func (p *page) hero(hero schema.Hero) *html.Node {
	copyBlock := el(atom.Div, "class", "hero-copy")
	if hero.Eyebrow != "" {
		add(copyBlock, textEl(atom.Div, hero.Eyebrow, "class", "hero-eyebrow"))
	}
	stats := el(atom.Div, "class", "hero-stats")
	for _, stat := range hero.Stats {
		add(stats, add(el(atom.Article),
			textEl(atom.Strong, stat.Value),
			textEl(atom.Span, stat.Label),
		))
	}
	add(copyBlock,
		textEl(atom.H2, p.untitled(hero.Title)),
		textEl(atom.P, hero.Lead),
		stats,
	)

	gallery := el(atom.Div, "class", "hero-gallery")
	main, secondary := heroLayout(hero.Gallery)
	if main != nil {
		add(gallery, add(el(atom.Div, "class", "hero-main"), p.heroImage(main.Image)))
	}
	for _, item := range secondary {
		add(gallery, add(el(atom.Div, "class", "hero-sub"), p.heroImage(item.Image)))
	}

	return add(el(atom.Section, "class", "render-hero"), copyBlock, gallery)
}

// heroLayout picks the main item (first with role main, else the first item)
// and at most two secondary items in their original order
func heroLayout(gallery []schema.HeroGalleryItem) (*schema.HeroGalleryItem, []schema.HeroGalleryItem) {
	if len(gallery) == 0 {
		return nil, nil
	}
	mainIndex := 0
	for i, item := range gallery {
		if item.Role == schema.RoleMain {
			mainIndex = i
			break
		}
	}

	var secondary []schema.HeroGalleryItem
	for i, item := range gallery {
		if i == mainIndex {
			continue
		}
		if len(secondary) == heroSecondaryLimit {
			break
		}
		secondary = append(secondary, item)
	}
	return &gallery[mainIndex], secondary
}

func (p *page) heroImage(img schema.ImageAsset) *html.Node {
	src := sanitize.ImageSrc(img.Src)
	if src == "" {
		return textEl(atom.Div, p.catalog.Text("render.placeholder"), "class", "media-placeholder")
	}
	alt := img.Title
	if alt == "" {
		alt = p.catalog.Text("render.image_alt")
	}
	return p.trigger(src, img.Title, el(atom.Img, "src", src, "alt", alt))
}

// trigger wraps content in the openable-image button and registers the image
// with the viewer list
func (p *page) trigger(src, title string, content ...*html.Node) *html.Node {
	index := len(p.viewer)
	viewerTitle := p.untitled(title)
	p.viewer = append(p.viewer, ViewerImage{Index: index, Src: src, Title: viewerTitle})

	button := el(atom.Button,
		"type", "button",
		"class", TriggerClass,
		"data-viewer-index", strconv.Itoa(index),
		"data-viewer-src", src,
		"data-viewer-title", viewerTitle,
		"aria-label", p.catalog.Message("render.open_image", map[string]any{"Title": viewerTitle}),
	)
	return add(button, content...)
}

func (p *page) section(section schema.Section) *html.Node {
	header := add(el(atom.Header), textEl(atom.H3, p.untitled(section.Title)))
	if section.Subtitle != "" {
		add(header, textEl(atom.P, section.Subtitle))
	}

	block := el(atom.Section,
		"id", section.ID,
		"class", "render-section section-anim",
		"data-section-kind", string(section.Kind()),
	)
	return add(block, header, schema.Match[*html.Node](section.Content, contentRenderer{p}))
}

func (p *page) footer(brand string, footer schema.Footer) *html.Node {
	links := el(atom.Nav, "class", "render-footer-links")
	for _, link := range footer.Links {
		add(links, textEl(atom.A, p.untitled(link.Label), "href", sanitize.LinkHref(link.Href)))
	}

	block := add(el(atom.Footer, "class", "render-footer"),
		add(el(atom.Div, "class", "render-footer-brand"),
			textEl(atom.Strong, brand),
			textEl(atom.P, footer.Slogan),
		),
		links,
	)
	if footer.Copyright != "" {
		add(block, textEl(atom.Div,
			p.catalog.Message("render.copyright", map[string]any{"Text": footer.Copyright}),
			"class", "render-footer-copy",
		))
	}
	return block
}

var defaultRenderer = New()

// Render builds the tree with the default renderer
func Render(cfg schema.PageConfig) (*Tree, error) {
	return defaultRenderer.Render(cfg)
}

// MustRender is Render for configurations known to be valid. It panics on
// a *errors.RenderError.
func MustRender(cfg schema.PageConfig) *Tree {
	tree, err := Render(cfg)
	if err != nil {
		panic(err)
	}
	return tree
}

// Markup renders cfg and serializes it
func Markup(cfg schema.PageConfig) (string, error) {
	tree, err := Render(cfg)
	if err != nil {
		return "", err
	}
	return tree.Markup(), nil
}
