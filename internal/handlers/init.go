package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/user/pagesmith/internal/errors"
	"github.com/user/pagesmith/internal/logging"
	"github.com/user/pagesmith/internal/schema"
	"github.com/user/pagesmith/internal/tui"
)

// InitConfig holds init command options
type InitConfig struct {
	File  string
	Force bool
}

// InitHandler writes the starter page
type InitHandler struct {
	*BaseHandler
	config InitConfig
}

// NewInitHandler creates a new init handler
func NewInitHandler(cfg InitConfig, base *BaseHandler) *InitHandler {
	return &InitHandler{BaseHandler: base, config: cfg}
}

func (h *InitHandler) Handle(ctx context.Context) error {
	file := h.pageFiles(nonEmpty(h.config.File))[0]

	if _, err := os.Stat(file); err == nil && !h.config.Force {
		return errors.WrapErrorWithContext(nil, fmt.Sprintf("%s already exists", file), errors.ExitIOError, &errors.ErrorContext{
			Operation:   "Writing starter page",
			Component:   "Init",
			Suggestions: []string{"Pass --force to overwrite it"},
		})
	}

	if err := writePage(file, schema.Default()); err != nil {
		return err
	}
	h.Logger.Info("Starter page written", logging.String("file", file), logging.Bool("force", h.config.Force))

	sp := tui.NewSimpleProgress("Init")
	sp.SetWriter(h.out())
	sp.Success(fmt.Sprintf("Wrote %s", file))
	sp.Info("Preview it with: pagesmith preview " + file)
	return nil
}
