package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/user/pagesmith/internal/i18n"
	"github.com/user/pagesmith/internal/interact"
	"github.com/user/pagesmith/internal/render"
	"github.com/user/pagesmith/internal/schema"
)

//go:embed assets/export.js
var exportScript string

// Target selects which document shell wraps the rendered markup
type Target string

const (
	// TargetExport is the standalone download: inert markup plus the vanilla script
	TargetExport Target = "export"
	// TargetPreview is the live preview page served by the preview host
	TargetPreview Target = "preview"
)

// staticBodyClass makes every section visible without running any script
const staticBodyClass = "static-export"

// Exporter wraps rendered pages into complete HTML documents
type Exporter struct {
	renderer *render.Renderer
	tmpl     *template.Template
}

// Document is the data for the document template
type Document struct {
	Lang        string
	Title       string
	Description string
	BodyClass   string
	CSS         template.CSS  // shared stylesheet, trusted
	Markup      template.HTML // output of the renderer, already escaped
	Script      template.JS   // embedded behaviour layer, trusted
}

// Option configures an Exporter
type Option func(*Exporter)

// WithRenderer uses r instead of the default renderer
func WithRenderer(r *render.Renderer) Option {
	return func(e *Exporter) {
		if r != nil {
			e.renderer = r
		}
	}
}

// NewExporter creates an exporter with the document template parsed
func NewExporter(opts ...Option) (*Exporter, error) {
	tmpl, err := loadDocumentTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load document template: %w", err)
	}

	e := &Exporter{renderer: render.New(), tmpl: tmpl}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Document renders cfg as the standalone export document
func (e *Exporter) Document(cfg schema.PageConfig) (string, error) {
	return e.Build(cfg, TargetExport)
}

// Build renders cfg and wraps it in the shell of target
func (e *Exporter) Build(cfg schema.PageConfig, target Target) (string, error) {
	tree, err := e.renderer.Render(cfg)
	if err != nil {
		return "", err
	}
	return e.Wrap(tree, cfg.Meta, target)
}

// Wrap puts an already rendered tree into the shell of target
func (e *Exporter) Wrap(tree *render.Tree, meta schema.Meta, target Target) (string, error) {
	catalog := i18n.For(tree.Locale)

	title := meta.Title
	if strings.TrimSpace(title) == "" {
		title = catalog.Text("render.untitled_page")
	}
	lang := string(meta.Language)
	if lang == "" {
		lang = string(schema.DefaultLanguage)
	}

	doc := Document{
		Lang:        lang,
		Title:       title,
		Description: meta.Description,
		CSS:         template.CSS(render.Stylesheet()),
		Markup:      template.HTML(tree.Markup()),
	}
	prelude, err := interact.DefaultRuntime().Prelude()
	if err != nil {
		return "", fmt.Errorf("failed to encode runtime settings: %w", err)
	}
	switch target {
	case TargetPreview:
		doc.Script = template.JS(prelude + render.LiveScript())
	default:
		doc.BodyClass = staticBodyClass
		doc.Script = template.JS(prelude + exportScript)
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// Script returns the embedded export behaviour layer
func Script() string {
	return exportScript
}

// loadDocumentTemplate parses the document shell
func loadDocumentTemplate() (*template.Template, error) {
	const tmpl = `<!doctype html>
<html lang="{{.Lang}}">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>{{.Title}}</title>
<meta name="description" content="{{.Description}}" />
<style>{{.CSS}}</style>
</head>
<body{{if .BodyClass}} class="{{.BodyClass}}"{{end}}>
{{.Markup}}
<script>{{.Script}}</script>
</body>
</html>
`
	return template.New("document").Parse(tmpl)
}
