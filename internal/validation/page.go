package validation

import (
	"strings"

	"github.com/user/pagesmith/internal/schema"
)

var (
	languageOptions   = enumStrings(schema.Languages)
	backgroundOptions = enumStrings(schema.Backgrounds)
	radiusOptions     = enumStrings(schema.Radii)
	roleOptions       = enumStrings(schema.GalleryRoles)
	kindOptions       = enumStrings(schema.SectionKinds)

	imageKeys       = []string{"src", "title", "note"}
	galleryItemKeys = []string{"image", "tags"}
	envelopeKeys    = []string{"id", "kind", "title", "subtitle", "navLabel", "includeInNav", "content"}
)

// page walks the whole configuration and builds the typed value
func (w *walker) page(input any) schema.PageConfig {
	var cfg schema.PageConfig

	root := w.objectAt(nil, input, input != nil, []string{"meta", "theme", "nav", "hero", "footer", "sections"})
	if root == nil {
		return cfg
	}

	cfg.Meta = w.meta(root.object("meta", "title", "description", "language"))
	cfg.Theme = w.theme(root.object("theme", "background", "accentColor", "radius"))
	cfg.Nav = w.nav(root.object("nav", "brand", "items"))
	cfg.Hero = w.hero(root.object("hero", "eyebrow", "title", "lead", "stats", "gallery"))
	cfg.Footer = w.footer(root.object("footer", "slogan", "links", "copyright"))
	cfg.Sections = w.sections(root)

	root.done()
	return cfg
}

func (w *walker) meta(o *object) schema.Meta {
	if o == nil {
		return schema.Meta{}
	}
	defer o.done()
	return schema.Meta{
		Title:       o.requiredString("title"),
		Description: o.optionalString("description"),
		Language:    schema.Language(o.enum("language", languageOptions, string(schema.DefaultLanguage))),
	}
}

func (w *walker) theme(o *object) schema.Theme {
	if o == nil {
		return schema.Theme{}
	}
	defer o.done()
	return schema.Theme{
		Background:  schema.Background(o.enum("background", backgroundOptions, "")),
		AccentColor: o.optionalString("accentColor"),
		Radius:      schema.Radius(o.optionalEnum("radius", radiusOptions)),
	}
}

func (w *walker) nav(o *object) schema.Nav {
	if o == nil {
		return schema.Nav{}
	}
	defer o.done()

	nav := schema.Nav{Brand: o.requiredString("brand"), Items: []schema.NavItem{}}
	items, ok := o.list("items", 0)
	if !ok {
		return nav
	}
	w.each(o.path.Key("items"), items, []string{"id", "label"}, func(_ int, item *object) {
		nav.Items = append(nav.Items, schema.NavItem{
			ID:    item.requiredString("id"),
			Label: item.requiredString("label"),
		})
	})
	return nav
}

func (w *walker) hero(o *object) schema.Hero {
	if o == nil {
		return schema.Hero{}
	}
	defer o.done()

	hero := schema.Hero{
		Eyebrow: o.optionalString("eyebrow"),
		Title:   o.requiredString("title"),
		Lead:    o.requiredString("lead"),
	}

	if stats, ok := o.optionalList("stats"); ok {
		hero.Stats = []schema.HeroStat{}
		w.each(o.path.Key("stats"), stats, []string{"value", "label"}, func(_ int, stat *object) {
			hero.Stats = append(hero.Stats, schema.HeroStat{
				Value: stat.requiredString("value"),
				Label: stat.requiredString("label"),
			})
		})
	}

	if gallery, ok := o.list("gallery", 1); ok {
		w.each(o.path.Key("gallery"), gallery, []string{"role", "image"}, func(_ int, item *object) {
			hero.Gallery = append(hero.Gallery, schema.HeroGalleryItem{
				Role:  schema.GalleryRole(item.enum("role", roleOptions, "")),
				Image: w.image(item.object("image", imageKeys...)),
			})
		})
	}
	return hero
}

func (w *walker) footer(o *object) schema.Footer {
	if o == nil {
		return schema.Footer{}
	}
	defer o.done()

	footer := schema.Footer{
		Slogan:    o.requiredString("slogan"),
		Links:     []schema.FooterLink{},
		Copyright: o.optionalString("copyright"),
	}
	if links, ok := o.list("links", 0); ok {
		w.each(o.path.Key("links"), links, []string{"label", "href"}, func(_ int, link *object) {
			footer.Links = append(footer.Links, schema.FooterLink{
				Label: link.requiredString("label"),
				Href:  link.requiredString("href"),
			})
		})
	}
	return footer
}

func (w *walker) image(o *object) schema.ImageAsset {
	if o == nil {
		return schema.ImageAsset{}
	}
	defer o.done()
	return schema.ImageAsset{
		Src:   o.requiredString("src"),
		Title: o.optionalString("title"),
		Note:  o.optionalString("note"),
	}
}

func (w *walker) galleryItem(o *object) schema.GalleryItem {
	if o == nil {
		return schema.GalleryItem{}
	}
	defer o.done()
	return schema.GalleryItem{
		Image: w.image(o.object("image", imageKeys...)),
		Tags:  o.stringList("tags"),
	}
}

func (w *walker) galleryItems(o *object, key string, required bool) []schema.GalleryItem {
	var items []any
	var ok bool
	if required {
		items, ok = o.list(key, 0)
	} else {
		items, ok = o.optionalList(key)
	}
	if !ok {
		return nil
	}

	out := []schema.GalleryItem{}
	path := o.path.Key(key)
	for i, raw := range items {
		item := w.objectAt(path.Index(i), raw, true, galleryItemKeys)
		if item == nil {
			continue
		}
		out = append(out, w.galleryItem(item))
	}
	return out
}

func (w *walker) sections(root *object) []schema.Section {
	items, ok := root.list("sections", 1)
	if !ok {
		return nil
	}

	path := root.path.Key("sections")
	sections := make([]schema.Section, 0, len(items))
	firstOwner := map[string]int{}

	for i, raw := range items {
		o := w.objectAt(path.Index(i), raw, true, envelopeKeys)
		if o == nil {
			continue
		}
		section, ok := w.section(i, o)
		if !ok {
			continue
		}

		if owner, seen := firstOwner[section.ID]; seen {
			w.add(Issue{Path: o.path.Key("id"), Code: CodeDuplicateID, Value: section.ID, Index: owner + 1})
		} else {
			firstOwner[section.ID] = i
		}
		sections = append(sections, section)
	}
	return sections
}

// section validates one section. The kind is checked first; a bad kind stops
// the walk for this section since the payload shape depends on it.
func (w *walker) section(index int, o *object) (schema.Section, bool) {
	kindValue, present := o.get("kind")
	if !present {
		w.add(Issue{Path: o.path.Key("kind"), Code: CodeRequired})
		return schema.Section{}, false
	}
	kindName := w.enumValue(o.path.Key("kind"), kindValue, kindOptions)
	kind, ok := schema.ParseSectionKind(kindName)
	if !ok {
		return schema.Section{}, false
	}
	defer o.done()

	section := schema.Section{
		ID:       w.sectionID(index, o),
		Title:    o.requiredString("title"),
		Subtitle: o.optionalString("subtitle"),
		NavLabel: o.optionalString("navLabel"),
	}
	section.IncludeInNav, _ = o.optionalBool("includeInNav")
	section.Content = w.content(kind, o)
	return section, true
}

// sectionID trims the id and assigns section-N to blank or absent ids
func (w *walker) sectionID(index int, o *object) string {
	v, ok := o.get("id")
	if !ok {
		return defaultSectionID(index)
	}
	s, ok := v.(string)
	if !ok {
		w.add(Issue{Path: o.path.Key("id"), Code: CodeWrongType, Expected: typeString})
		return defaultSectionID(index)
	}
	if blank(s) {
		return defaultSectionID(index)
	}
	return strings.TrimSpace(s)
}

func (w *walker) content(kind schema.SectionKind, section *object) schema.SectionContent {
	switch kind {
	case schema.KindNarrative:
		o := section.object("content", "cards")
		content := schema.NarrativeContent{}
		if o == nil {
			return content
		}
		defer o.done()
		if cards, ok := o.list("cards", 0); ok {
			content.Cards = []schema.NarrativeCard{}
			w.each(o.path.Key("cards"), cards, []string{"title", "text"}, func(_ int, card *object) {
				content.Cards = append(content.Cards, schema.NarrativeCard{
					Title: card.requiredString("title"),
					Text:  card.requiredString("text"),
				})
			})
		}
		return content

	case schema.KindStripGallery:
		o := section.object("content", "items")
		if o == nil {
			return schema.StripGalleryContent{}
		}
		defer o.done()
		return schema.StripGalleryContent{Items: w.galleryItems(o, "items", true)}

	case schema.KindModelStage:
		o := section.object("content", "main", "secondary")
		if o == nil {
			return schema.ModelStageContent{}
		}
		defer o.done()
		return schema.ModelStageContent{
			Main:      w.galleryItem(o.object("main", galleryItemKeys...)),
			Secondary: w.galleryItems(o, "secondary", false),
		}

	case schema.KindAtlasGrid:
		o := section.object("content", "items")
		content := schema.AtlasGridContent{}
		if o == nil {
			return content
		}
		defer o.done()
		if items, ok := o.list("items", 0); ok {
			content.Items = []schema.AtlasItem{}
			w.each(o.path.Key("items"), items, []string{"image", "placeholder", "tags"}, func(_ int, item *object) {
				atlas := schema.AtlasItem{}
				if img, present := item.optionalObject("image", imageKeys...); present && img != nil {
					asset := w.image(img)
					atlas.Image = &asset
				}
				if placeholder, ok := item.optionalBool("placeholder"); ok {
					atlas.Placeholder = *placeholder
				}
				atlas.Tags = item.stringList("tags")
				content.Items = append(content.Items, atlas)
			})
		}
		return content

	case schema.KindMasonryGallery:
		o := section.object("content", "items")
		if o == nil {
			return schema.MasonryGalleryContent{}
		}
		defer o.done()
		return schema.MasonryGalleryContent{Items: w.galleryItems(o, "items", true)}
	}
	return nil
}
