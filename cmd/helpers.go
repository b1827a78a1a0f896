package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/pagesmith/internal/config"
	"github.com/user/pagesmith/internal/errors"
	"github.com/user/pagesmith/internal/handlers"
	"github.com/user/pagesmith/internal/logging"
	"github.com/user/pagesmith/internal/tui"
)

// errOut receives error messages; tests replace it
var errOut io.Writer = os.Stderr

// CommandContext holds common resources used by CLI commands.
type CommandContext struct {
	// Settings are the merged and validated application settings
	Settings *config.Settings

	// Logger is the configured logger for the command
	Logger *logging.Logger

	// ShowProgress indicates whether to show progress UI (true) or verbose output (false)
	ShowProgress bool

	// ProjectDir is the directory settings and logs are resolved against
	ProjectDir string
}

// Base returns a handler base writing to the command's output
func (c *CommandContext) Base(cmd *cobra.Command) *handlers.BaseHandler {
	base := handlers.NewBaseHandler(c.Settings, c.Logger)
	base.Out = cmd.OutOrStdout()
	return base
}

// Close flushes the logger
func (c *CommandContext) Close() {
	_ = c.Logger.Sync()
}

// InitLogger creates the command logger from the logging settings.
// Console output is enabled only in verbose mode, where it replaces the
// progress UI; debug lowers both levels and adds caller information.
// The caller is responsible for calling logger.Sync() when done.
func InitLogger(settings *config.Settings, projectDir string, debug bool, verbose bool) (*logging.Logger, error) {
	logCfg := settings.Logging.LoggerConfig(projectDir)
	logCfg.EnableCaller = debug
	logCfg.ConsoleEnabled = verbose
	if debug {
		logCfg.FileLevel = logging.LevelFromString("debug")
		logCfg.ConsoleLevel = logging.LevelFromString("debug")
	}

	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return nil, errors.WrapError(err, "Failed to initialize logger", errors.ExitIOError)
	}
	return logger, nil
}

// NewCommandContext loads settings with the global flags and the command's
// overrides applied, then creates the logger
func NewCommandContext(overrides map[string]interface{}) (*CommandContext, error) {
	merged := map[string]interface{}{}
	if localeFlag != "" {
		merged["locale"] = localeFlag
	}
	for key, value := range overrides {
		merged[key] = value
	}

	settings, err := config.LoadSettings(projectDirFlag, merged)
	if err != nil {
		return nil, err
	}

	logger, err := InitLogger(settings, projectDirFlag, debugFlag, verboseFlag)
	if err != nil {
		return nil, err
	}
	logger.Debug("Settings loaded",
		logging.String("project_dir", projectDirFlag),
		logging.String("locale", settings.Locale),
		logging.String("page", settings.Page))

	return &CommandContext{
		Settings:     settings,
		Logger:       logger,
		ShowProgress: !verboseFlag,
		ProjectDir:   projectDirFlag,
	}, nil
}

// flagOverride returns value when the flag was set on the command line, nil otherwise
func flagOverride(cmd *cobra.Command, name string, value interface{}) interface{} {
	if cmd.Flags().Changed(name) {
		return value
	}
	return nil
}

// HandleCommandError reports err to the user:
//  1. Errors carrying an *errors.AppError print their user message
//  2. The message goes to the progress UI when shown, otherwise to stderr
//  3. The original error is returned for exit code handling
func HandleCommandError(err error, progress *tui.SimpleProgress, showProgress bool) error {
	if err == nil {
		return nil
	}

	if uf, ok := errors.AsUserFacing(err); ok {
		if showProgress && progress != nil {
			progress.Error(uf.GetUserMessage())
			progress.Failed(nil)
		} else {
			_, _ = fmt.Fprintln(errOut, uf.GetUserMessage())
		}
		return err
	}

	if showProgress && progress != nil {
		progress.Failed(err)
	} else {
		_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
	}
	return err
}
