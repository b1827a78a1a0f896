package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/user/pagesmith/internal/errors"
	"github.com/user/pagesmith/internal/logging"
	"github.com/user/pagesmith/internal/tui"
)

// Output formats for report commands
const (
	OutputText = "text"
	OutputJSON = "json"
)

// ValidateConfig holds validate command options
type ValidateConfig struct {
	Files  []string
	Output string
}

// FileReport is the validation outcome of one page file
type FileReport struct {
	File   string               `json:"file"`
	Valid  bool                 `json:"valid"`
	Error  string               `json:"error,omitempty"`
	Issues []errors.IssueDetail `json:"issues,omitempty"`
}

// ValidateHandler validates page files
type ValidateHandler struct {
	*BaseHandler
	config ValidateConfig
}

// NewValidateHandler creates a new validate handler
func NewValidateHandler(cfg ValidateConfig, base *BaseHandler) *ValidateHandler {
	return &ValidateHandler{BaseHandler: base, config: cfg}
}

// Handle validates every file and fails with exit code 3 when any is invalid
func (h *ValidateHandler) Handle(ctx context.Context) error {
	if h.config.Output != "" && h.config.Output != OutputText && h.config.Output != OutputJSON {
		return errors.NewConfigurationError(fmt.Sprintf("unknown output format %q, use text or json", h.config.Output))
	}

	files := h.pageFiles(h.config.Files)
	reports := make([]FileReport, 0, len(files))
	failed := 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		report := h.check(file)
		if !report.Valid {
			failed++
		}
		reports = append(reports, report)
	}

	if h.config.Output == OutputJSON {
		enc := json.NewEncoder(h.out())
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return errors.WrapError(err, "Failed to write report", errors.ExitIOError)
		}
	} else {
		h.printText(reports)
	}

	if failed > 0 {
		return errors.NewError(fmt.Sprintf("%d of %d page files failed validation", failed, len(files)), errors.ExitValidationError)
	}
	return nil
}

func (h *ValidateHandler) check(file string) FileReport {
	_, err := h.Validator().ValidateFile(file)
	if err == nil {
		h.Logger.Debug("Page file is valid", logging.String("file", file))
		return FileReport{File: file, Valid: true}
	}

	h.Logger.Info("Page file is invalid", logging.String("file", file), logging.Error(err))
	report := FileReport{File: file, Error: err.Error()}
	var validationErr *errors.ValidationError
	if stderrors.As(err, &validationErr) {
		report.Issues = validationErr.Issues
	}
	return report
}

func (h *ValidateHandler) printText(reports []FileReport) {
	sp := tui.NewSimpleProgress("Validate")
	sp.SetWriter(h.out())
	for _, r := range reports {
		if r.Valid {
			sp.Success(r.File)
			continue
		}
		sp.Error(r.File)
		if len(r.Issues) > 0 {
			sp.Block(tui.FormatIssues(r.Issues))
		} else {
			sp.Info(r.Error)
		}
	}
}
