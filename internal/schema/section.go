package schema

import "fmt"

// SectionKind discriminates the section content union
type SectionKind string

const (
	KindNarrative      SectionKind = "narrative"
	KindStripGallery   SectionKind = "strip-gallery"
	KindModelStage     SectionKind = "model-stage"
	KindAtlasGrid      SectionKind = "atlas-grid"
	KindMasonryGallery SectionKind = "masonry-gallery"
)

// SectionKinds lists every section kind in schema order
var SectionKinds = []SectionKind{
	KindNarrative,
	KindStripGallery,
	KindModelStage,
	KindAtlasGrid,
	KindMasonryGallery,
}

// Section is one ordered content block. The envelope fields are shared by
// every kind; Content carries the kind-specific payload.
type Section struct {
	ID           string
	Title        string
	Subtitle     string
	NavLabel     string
	IncludeInNav *bool
	Content      SectionContent
}

// Kind returns the discriminator of the section's content, or "" when unset
func (s Section) Kind() SectionKind {
	if s.Content == nil {
		return ""
	}
	return s.Content.Kind()
}

// InNav reports whether the section appears in the derived navigation
func (s Section) InNav() bool {
	return s.IncludeInNav == nil || *s.IncludeInNav
}

// SectionContent is the closed set of section payloads. Only the types in
// this package implement it.
type SectionContent interface {
	Kind() SectionKind
	sealed()
}

// NarrativeContent is a grid of title/text cards
type NarrativeContent struct {
	Cards []NarrativeCard `json:"cards"`
}

type NarrativeCard struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// StripGalleryContent is a horizontal run of media cards
type StripGalleryContent struct {
	Items []GalleryItem `json:"items"`
}

// ModelStageContent is one prominent card plus secondary cards
type ModelStageContent struct {
	Main      GalleryItem   `json:"main"`
	Secondary []GalleryItem `json:"secondary,omitempty"`
}

// AtlasGridContent mixes placeholder cells with media cards
type AtlasGridContent struct {
	Items []AtlasItem `json:"items"`
}

// MasonryGalleryContent is a multi-column grid of media cards
type MasonryGalleryContent struct {
	Items []GalleryItem `json:"items"`
}

// GalleryItem is an image with optional tags
type GalleryItem struct {
	Image ImageAsset `json:"image"`
	Tags  []string   `json:"tags,omitempty"`
}

// AtlasItem is either a placeholder cell or an image. Use WithPlaceholder and
// WithImage to switch between the two so only one is ever set.
type AtlasItem struct {
	Image       *ImageAsset `json:"image,omitempty"`
	Placeholder bool        `json:"placeholder,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
}

// WithPlaceholder returns the item turned into a placeholder cell
func (a AtlasItem) WithPlaceholder() AtlasItem {
	a.Image = nil
	a.Placeholder = true
	return a
}

// WithImage returns the item showing img
func (a AtlasItem) WithImage(img ImageAsset) AtlasItem {
	a.Image = &img
	a.Placeholder = false
	return a
}

func (NarrativeContent) Kind() SectionKind      { return KindNarrative }
func (StripGalleryContent) Kind() SectionKind   { return KindStripGallery }
func (ModelStageContent) Kind() SectionKind     { return KindModelStage }
func (AtlasGridContent) Kind() SectionKind      { return KindAtlasGrid }
func (MasonryGalleryContent) Kind() SectionKind { return KindMasonryGallery }

func (NarrativeContent) sealed()      {}
func (StripGalleryContent) sealed()   {}
func (ModelStageContent) sealed()     {}
func (AtlasGridContent) sealed()      {}
func (MasonryGalleryContent) sealed() {}

// ContentVisitor has one method per section kind. Adding a kind adds a
// method here, which breaks every visitor until it handles the new case.
type ContentVisitor[T any] interface {
	Narrative(NarrativeContent) T
	StripGallery(StripGalleryContent) T
	ModelStage(ModelStageContent) T
	AtlasGrid(AtlasGridContent) T
	MasonryGallery(MasonryGalleryContent) T
}

// Match dispatches content to the visitor method for its kind
func Match[T any](content SectionContent, v ContentVisitor[T]) T {
	switch c := content.(type) {
	case NarrativeContent:
		return v.Narrative(c)
	case StripGalleryContent:
		return v.StripGallery(c)
	case ModelStageContent:
		return v.ModelStage(c)
	case AtlasGridContent:
		return v.AtlasGrid(c)
	case MasonryGalleryContent:
		return v.MasonryGallery(c)
	default:
		panic(fmt.Sprintf("schema: unknown section content %T", content))
	}
}

// ParseSectionKind returns the kind named s
func ParseSectionKind(s string) (SectionKind, bool) {
	for _, k := range SectionKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Bool returns a pointer to b, for optional flags such as IncludeInNav
func Bool(b bool) *bool {
	return &b
}
