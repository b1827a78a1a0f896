package handlers

import (
	"context"
	"fmt"

	"github.com/user/pagesmith/internal/config"
	"github.com/user/pagesmith/internal/errors"
	"github.com/user/pagesmith/internal/logging"
)

// Settings save targets
const (
	SaveGlobal  = "global"
	SaveProject = "project"
)

// SettingsConfig holds settings command options
type SettingsConfig struct {
	ProjectDir string
	// Save writes the effective settings to the global or project file
	Save string
}

// SettingsHandler prints, and optionally saves, the effective settings
type SettingsHandler struct {
	*BaseHandler
	config SettingsConfig
	saver  *config.Saver
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(cfg SettingsConfig, base *BaseHandler) *SettingsHandler {
	return &SettingsHandler{BaseHandler: base, config: cfg, saver: config.NewSaver()}
}

func (h *SettingsHandler) Handle(ctx context.Context) error {
	if h.Settings == nil {
		return errors.NewConfigurationError("no settings loaded")
	}

	var (
		path string
		err  error
	)
	switch h.config.Save {
	case "":
	case SaveGlobal:
		path, err = h.saver.SaveGlobalSettings(h.Settings)
	case SaveProject:
		path, err = h.saver.SaveProjectSettings(h.config.ProjectDir, h.Settings)
	default:
		return errors.NewConfigurationError(fmt.Sprintf("unknown save target %q, use global or project", h.config.Save))
	}
	if err != nil {
		if _, ok := errors.AsUserFacing(err); ok {
			return err
		}
		return errors.NewConfigFileError(path, err)
	}
	if path != "" {
		h.Logger.Info("Settings saved", logging.String("path", path))
	}

	data, err := config.Marshal(h.Settings)
	if err != nil {
		return errors.WrapError(err, "Failed to render settings", errors.ExitGeneralError)
	}
	if _, err := h.out().Write(data); err != nil {
		return errors.WrapError(err, "Failed to write settings", errors.ExitIOError)
	}
	return nil
}
