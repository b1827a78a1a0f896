package handlers

import (
	"context"
	"fmt"

	"github.com/user/pagesmith/internal/logging"
	"github.com/user/pagesmith/internal/preview"
	"github.com/user/pagesmith/internal/store"
	"github.com/user/pagesmith/internal/tui"
)

// PreviewConfig holds preview command options
type PreviewConfig struct {
	File string
	// Addr overrides preview.addr from the settings
	Addr string
}

// PreviewHandler runs the live-preview host until its context is cancelled
type PreviewHandler struct {
	*BaseHandler
	config PreviewConfig
}

// NewPreviewHandler creates a new preview handler
func NewPreviewHandler(cfg PreviewConfig, base *BaseHandler) *PreviewHandler {
	return &PreviewHandler{BaseHandler: base, config: cfg}
}

// ServerConfig resolves the preview server configuration from the settings
// and command options
func (h *PreviewHandler) ServerConfig() preview.Config {
	cfg := preview.Config{
		Addr:     h.config.Addr,
		PagePath: h.pageFiles(nonEmpty(h.config.File))[0],
		Locale:   h.locale(),
	}
	if s := h.Settings; s != nil {
		if cfg.Addr == "" {
			cfg.Addr = s.Preview.Addr
		}
		cfg.AllowedOrigins = s.Preview.AllowedOrigins
		cfg.Watch = s.Preview.Watch
		cfg.CacheSize = s.Preview.CacheSize
		cfg.ReadTimeout = s.Preview.GetReadTimeout()
		cfg.WriteTimeout = s.Preview.GetWriteTimeout()
		cfg.NarrativeMarkdown = s.Render.NarrativeMarkdown
	}
	if cfg.Addr == "" {
		cfg.Addr = preview.DefaultAddr
	}
	return cfg
}

// NewServer builds the preview server and loads the page file. A page that
// is missing or invalid is reported and the starter page is served until
// the file is fixed.
func (h *PreviewHandler) NewServer() (*preview.Server, error) {
	cfg := h.ServerConfig()
	st := store.New(store.WithValidator(h.Validator()), store.WithLogger(h.Logger.Named("store")))

	server, err := preview.New(cfg, st, h.Logger.Named("preview"))
	if err != nil {
		return nil, err
	}

	sp := tui.NewSimpleProgress("Preview")
	sp.SetWriter(h.out())
	if err := server.LoadPage(); err != nil {
		h.Logger.Warn("Serving starter page", logging.String("path", cfg.PagePath), logging.Error(err))
		sp.Warning(fmt.Sprintf("%s not loaded, serving the starter page", cfg.PagePath))
		sp.Info(err.Error())
	}
	sp.Success(fmt.Sprintf("Preview at http://%s", cfg.Addr))
	if cfg.Watch {
		sp.Info("Watching " + cfg.PagePath)
	}
	return server, nil
}

func (h *PreviewHandler) Handle(ctx context.Context) error {
	server, err := h.NewServer()
	if err != nil {
		return err
	}
	return server.Run(ctx)
}
