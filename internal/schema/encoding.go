package schema

import (
	"encoding/json"
	"fmt"
)

// sectionWire is the JSON shape of a section: envelope, kind, and content
type sectionWire struct {
	ID           string          `json:"id"`
	Kind         SectionKind     `json:"kind"`
	Title        string          `json:"title"`
	Subtitle     string          `json:"subtitle,omitempty"`
	NavLabel     string          `json:"navLabel,omitempty"`
	IncludeInNav *bool           `json:"includeInNav,omitempty"`
	Content      json.RawMessage `json:"content"`
}

// MarshalJSON encodes the section with its kind next to the envelope fields
func (s Section) MarshalJSON() ([]byte, error) {
	if s.Content == nil {
		return nil, fmt.Errorf("section %q has no content", s.ID)
	}
	content, err := json.Marshal(s.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(sectionWire{
		ID:           s.ID,
		Kind:         s.Content.Kind(),
		Title:        s.Title,
		Subtitle:     s.Subtitle,
		NavLabel:     s.NavLabel,
		IncludeInNav: s.IncludeInNav,
		Content:      content,
	})
}

// UnmarshalJSON decodes trusted section JSON. Untrusted input goes through
// the validation package instead, which reports every mismatch.
func (s *Section) UnmarshalJSON(data []byte) error {
	var wire sectionWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var content SectionContent
	var err error
	switch wire.Kind {
	case KindNarrative:
		content, err = decodeContent[NarrativeContent](wire.Content)
	case KindStripGallery:
		content, err = decodeContent[StripGalleryContent](wire.Content)
	case KindModelStage:
		content, err = decodeContent[ModelStageContent](wire.Content)
	case KindAtlasGrid:
		content, err = decodeContent[AtlasGridContent](wire.Content)
	case KindMasonryGallery:
		content, err = decodeContent[MasonryGalleryContent](wire.Content)
	default:
		return fmt.Errorf("unknown section kind %q", wire.Kind)
	}
	if err != nil {
		return fmt.Errorf("section %q content: %w", wire.ID, err)
	}

	*s = Section{
		ID:           wire.ID,
		Title:        wire.Title,
		Subtitle:     wire.Subtitle,
		NavLabel:     wire.NavLabel,
		IncludeInNav: wire.IncludeInNav,
		Content:      content,
	}
	return nil
}

func decodeContent[T SectionContent](raw json.RawMessage) (SectionContent, error) {
	var c T
	if len(raw) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return c, nil
}

// MarshalJSON always emits items as a list
func (n Nav) MarshalJSON() ([]byte, error) {
	type plain Nav
	p := plain(n)
	if p.Items == nil {
		p.Items = []NavItem{}
	}
	return json.Marshal(p)
}

// MarshalJSON always emits links as a list
func (f Footer) MarshalJSON() ([]byte, error) {
	type plain Footer
	p := plain(f)
	if p.Links == nil {
		p.Links = []FooterLink{}
	}
	return json.Marshal(p)
}

// ToInput converts the config into the generic JSON shape accepted by the
// validator: maps, slices, strings, numbers, and booleans.
func (c PageConfig) ToInput() (map[string]any, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
