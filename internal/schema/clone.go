package schema

import "slices"

// Clone returns a deep copy sharing no slices or pointers with c
func (c PageConfig) Clone() PageConfig {
	out := c
	out.Nav.Items = slices.Clone(c.Nav.Items)
	out.Hero.Stats = slices.Clone(c.Hero.Stats)
	out.Hero.Gallery = slices.Clone(c.Hero.Gallery)
	out.Footer.Links = slices.Clone(c.Footer.Links)

	if c.Sections != nil {
		out.Sections = make([]Section, len(c.Sections))
		for i, s := range c.Sections {
			out.Sections[i] = s.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the section
func (s Section) Clone() Section {
	out := s
	if s.IncludeInNav != nil {
		out.IncludeInNav = Bool(*s.IncludeInNav)
	}
	if s.Content != nil {
		out.Content = cloneContent(s.Content)
	}
	return out
}

// With returns a copy of c modified by patch. c itself is never touched.
func (c PageConfig) With(patch func(*PageConfig)) PageConfig {
	out := c.Clone()
	if patch != nil {
		patch(&out)
	}
	return out
}

func cloneContent(content SectionContent) SectionContent {
	return Match[SectionContent](content, contentCloner{})
}

type contentCloner struct{}

func (contentCloner) Narrative(c NarrativeContent) SectionContent {
	return NarrativeContent{Cards: slices.Clone(c.Cards)}
}

func (contentCloner) StripGallery(c StripGalleryContent) SectionContent {
	return StripGalleryContent{Items: cloneGalleryItems(c.Items)}
}

func (contentCloner) ModelStage(c ModelStageContent) SectionContent {
	return ModelStageContent{
		Main:      cloneGalleryItem(c.Main),
		Secondary: cloneGalleryItems(c.Secondary),
	}
}

func (contentCloner) AtlasGrid(c AtlasGridContent) SectionContent {
	if c.Items == nil {
		return AtlasGridContent{}
	}
	items := make([]AtlasItem, len(c.Items))
	for i, item := range c.Items {
		items[i] = item
		items[i].Tags = slices.Clone(item.Tags)
		if item.Image != nil {
			img := *item.Image
			items[i].Image = &img
		}
	}
	return AtlasGridContent{Items: items}
}

func (contentCloner) MasonryGallery(c MasonryGalleryContent) SectionContent {
	return MasonryGalleryContent{Items: cloneGalleryItems(c.Items)}
}

func cloneGalleryItem(item GalleryItem) GalleryItem {
	item.Tags = slices.Clone(item.Tags)
	return item
}

func cloneGalleryItems(items []GalleryItem) []GalleryItem {
	if items == nil {
		return nil
	}
	out := make([]GalleryItem, len(items))
	for i, item := range items {
		out[i] = cloneGalleryItem(item)
	}
	return out
}
