package errors

import (
	"fmt"
)

// RenderError signals that the renderer was handed a configuration that never
// went through validation. It is an integration bug, not a user error.
type RenderError struct {
	*AppError
}

// NewRenderError creates a new render error
func NewRenderError(reason string) *RenderError {
	return &RenderError{
		AppError: &AppError{
			Message: fmt.Sprintf("Render failed: %s", reason),
			Context: &ErrorContext{
				Operation: "Rendering page",
				Component: "Renderer",
				Suggestions: []string{
					"Validate the configuration before rendering it",
				},
			},
			ExitCode: ExitRenderError,
		},
	}
}

// ExportError is raised when the export artifact cannot be produced or written
type ExportError struct {
	*AppError
}

// NewExportError creates a new export error
func NewExportError(target string, cause error) *ExportError {
	return &ExportError{
		AppError: &AppError{
			Message: fmt.Sprintf("Export failed: %s", target),
			Cause:   cause,
			Context: &ErrorContext{
				Operation: "Exporting page",
				Component: "Exporter",
				Details: map[string]interface{}{
					"target": target,
				},
				Suggestions: []string{
					"Check that the output directory is writable",
				},
			},
			ExitCode: ExitIOError,
		},
	}
}
