package schema

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
)

// SchemaID is the $id of the published page schema
const SchemaID = "https://github.com/user/pagesmith/page.schema.json"

type sectionEnvelope struct {
	ID           string `json:"id,omitempty" jsonschema:"description=Anchor id; blank ids become section-N"`
	Title        string `json:"title" jsonschema:"minLength=1"`
	Subtitle     string `json:"subtitle,omitempty"`
	NavLabel     string `json:"navLabel,omitempty"`
	IncludeInNav *bool  `json:"includeInNav,omitempty" jsonschema:"default=true"`
}

type narrativeSection struct {
	sectionEnvelope
	Kind    string           `json:"kind" jsonschema:"enum=narrative"`
	Content NarrativeContent `json:"content"`
}

type stripGallerySection struct {
	sectionEnvelope
	Kind    string              `json:"kind" jsonschema:"enum=strip-gallery"`
	Content StripGalleryContent `json:"content"`
}

type modelStageSection struct {
	sectionEnvelope
	Kind    string            `json:"kind" jsonschema:"enum=model-stage"`
	Content ModelStageContent `json:"content"`
}

type atlasGridSection struct {
	sectionEnvelope
	Kind    string           `json:"kind" jsonschema:"enum=atlas-grid"`
	Content AtlasGridContent `json:"content"`
}

type masonryGallerySection struct {
	sectionEnvelope
	Kind    string                `json:"kind" jsonschema:"enum=masonry-gallery"`
	Content MasonryGalleryContent `json:"content"`
}

func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
}

// JSONSchema describes Section as one variant per kind
func (Section) JSONSchema() *jsonschema.Schema {
	r := newReflector()
	variants := []any{
		narrativeSection{},
		stripGallerySection{},
		modelStageSection{},
		atlasGridSection{},
		masonryGallerySection{},
	}

	out := &jsonschema.Schema{}
	for _, v := range variants {
		s := r.ReflectFromType(reflect.TypeOf(v))
		s.Version = ""
		out.OneOf = append(out.OneOf, s)
	}
	return out
}

// JSONSchema returns the JSON Schema of the page configuration
func JSONSchema() *jsonschema.Schema {
	s := newReflector().Reflect(&PageConfig{})
	s.ID = SchemaID
	s.Title = "pagesmith page configuration"
	return s
}

// JSONSchemaBytes returns the indented JSON encoding of JSONSchema
func JSONSchemaBytes() ([]byte, error) {
	return json.MarshalIndent(JSONSchema(), "", "  ")
}
