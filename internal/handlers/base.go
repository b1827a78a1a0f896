package handlers

import (
	"context"
	"io"
	"os"

	"github.com/user/pagesmith/internal/config"
	"github.com/user/pagesmith/internal/export"
	"github.com/user/pagesmith/internal/logging"
	"github.com/user/pagesmith/internal/render"
	"github.com/user/pagesmith/internal/validation"
)

// Handler is the interface that all handlers must implement
type Handler interface {
	// Handle executes the handler logic
	Handle(ctx context.Context) error
}

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	Settings *config.Settings
	Logger   *logging.Logger
	// Out receives command output; nil means stdout
	Out io.Writer
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(settings *config.Settings, logger *logging.Logger) *BaseHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &BaseHandler{
		Settings: settings,
		Logger:   logger,
	}
}

func (b *BaseHandler) out() io.Writer {
	if b.Out == nil {
		return os.Stdout
	}
	return b.Out
}

func (b *BaseHandler) locale() string {
	if b.Settings == nil {
		return ""
	}
	return b.Settings.Locale
}

// Validator returns a validator speaking the configured locale
func (b *BaseHandler) Validator() *validation.Validator {
	return validation.NewValidator(validation.WithLocale(b.locale()))
}

// Exporter returns an exporter honouring the render settings
func (b *BaseHandler) Exporter() (*export.Exporter, error) {
	markdown := b.Settings != nil && b.Settings.Render.NarrativeMarkdown
	return export.NewExporter(export.WithRenderer(render.New(render.WithNarrativeMarkdown(markdown))))
}

// pageFiles falls back to the configured page file when none are given
func (b *BaseHandler) pageFiles(files []string) []string {
	if len(files) > 0 {
		return files
	}
	if b.Settings != nil && b.Settings.Page != "" {
		return []string{b.Settings.Page}
	}
	return []string{"page.json"}
}
