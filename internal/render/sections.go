package render

import (
	"strings"

	"github.com/user/pagesmith/internal/sanitize"
	"github.com/user/pagesmith/internal/schema"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tagSeparator joins the tags under a media card title
const tagSeparator = " / "

// contentRenderer lays out the payload of each section kind
type contentRenderer struct {
	p *page
}

func grid(layout string) *html.Node {
	return el(atom.Div, "class", "section-grid section-grid-"+layout)
}

func (c contentRenderer) Narrative(content schema.NarrativeContent) *html.Node {
	g := grid("narrative")
	for _, card := range content.Cards {
		add(g, add(el(atom.Article, "class", "narrative-card"),
			textEl(atom.H4, c.p.untitled(card.Title)),
			c.p.narrativeText(card.Text),
		))
	}
	return g
}

func (c contentRenderer) StripGallery(content schema.StripGalleryContent) *html.Node {
	return c.cards(grid("strip"), content.Items)
}

func (c contentRenderer) ModelStage(content schema.ModelStageContent) *html.Node {
	secondary := c.cards(el(atom.Div, "class", "model-secondary-grid"), content.Secondary)
	return add(grid("model"), c.p.galleryCard(content.Main), secondary)
}

func (c contentRenderer) AtlasGrid(content schema.AtlasGridContent) *html.Node {
	g := grid("atlas")
	for _, item := range content.Items {
		var img schema.ImageAsset
		if item.Image != nil {
			img = *item.Image
		}
		add(g, c.p.mediaCard(img, item.Tags, item.Placeholder))
	}
	return g
}

func (c contentRenderer) MasonryGallery(content schema.MasonryGalleryContent) *html.Node {
	return c.cards(grid("masonry"), content.Items)
}

func (c contentRenderer) cards(parent *html.Node, items []schema.GalleryItem) *html.Node {
	for _, item := range items {
		add(parent, c.p.galleryCard(item))
	}
	return parent
}

func (p *page) galleryCard(item schema.GalleryItem) *html.Node {
	return p.mediaCard(item.Image, item.Tags, false)
}

// mediaCard shows the placeholder marker when the item is flagged or its
// sanitized source is empty, and an openable image otherwise
func (p *page) mediaCard(img schema.ImageAsset, tags []string, placeholder bool) *html.Node {
	card := el(atom.Article, "class", "media-card")

	src := sanitize.ImageSrc(img.Src)
	if placeholder || src == "" {
		add(card, textEl(atom.Div, p.catalog.Text("render.placeholder"), "class", "media-placeholder"))
	} else {
		alt := img.Title
		if alt == "" {
			alt = p.catalog.Text("render.image_alt")
		}
		add(card, p.trigger(src, img.Title,
			el(atom.Img, "src", src, "alt", alt, "loading", "lazy"),
			textEl(atom.Span, p.catalog.Text("render.zoom_hint"), "class", "zoom-hint"),
		))
	}

	body := add(el(atom.Div, "class", "media-body"), textEl(atom.H4, p.untitled(img.Title)))
	if len(tags) > 0 {
		add(body, textEl(atom.P, strings.Join(tags, tagSeparator)))
	}
	return add(card, body)
}

// narrativeText renders card text as a paragraph, or as sanitized Markdown
// when the renderer has it enabled
func (p *page) narrativeText(text string) *html.Node {
	if p.r.markdown == nil {
		return textEl(atom.P, text)
	}
	nodes, err := p.r.markdown.render(text)
	if err != nil {
		return textEl(atom.P, text)
	}
	return add(el(atom.Div, "class", "narrative-body"), nodes...)
}
