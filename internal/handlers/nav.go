package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/user/pagesmith/internal/errors"
	"github.com/user/pagesmith/internal/logging"
	"github.com/user/pagesmith/internal/nav"
	"github.com/user/pagesmith/internal/tui"
)

// NavConfig holds nav command options
type NavConfig struct {
	File   string
	Output string
	// Write stores the derived items back into the page file
	Write bool
}

// NavHandler prints the nav items derived from a page's sections
type NavHandler struct {
	*BaseHandler
	config NavConfig
}

// NewNavHandler creates a new nav handler
func NewNavHandler(cfg NavConfig, base *BaseHandler) *NavHandler {
	return &NavHandler{BaseHandler: base, config: cfg}
}

func (h *NavHandler) Handle(ctx context.Context) error {
	file := h.pageFiles(nonEmpty(h.config.File))[0]

	cfg, err := h.Validator().ValidateFile(file)
	if err != nil {
		return err
	}
	synced := nav.Sync(cfg)

	if h.config.Write {
		if err := writePage(file, synced); err != nil {
			return err
		}
		h.Logger.Info("Nav items written", logging.String("file", file), logging.Int("items", len(synced.Nav.Items)))
	}

	switch h.config.Output {
	case OutputJSON:
		enc := json.NewEncoder(h.out())
		enc.SetIndent("", "  ")
		if err := enc.Encode(synced.Nav.Items); err != nil {
			return errors.WrapError(err, "Failed to write nav items", errors.ExitIOError)
		}
	case "", OutputText:
		_, _ = fmt.Fprintln(h.out(), tui.NavTable(synced.Nav.Items))
	default:
		return errors.NewConfigurationError(fmt.Sprintf("unknown output format %q, use text or json", h.config.Output))
	}
	return nil
}

func nonEmpty(file string) []string {
	if file == "" {
		return nil
	}
	return []string{file}
}
