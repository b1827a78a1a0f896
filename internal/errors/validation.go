package errors

import (
	"fmt"
)

// IssueDetail is one localized validation issue
type IssueDetail struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Code   string `json:"code"`
}

// ValidationError is returned when raw input does not match the page schema.
// Message holds the complete localized text; Issues keeps the ordered parts.
type ValidationError struct {
	*AppError
	Issues []IssueDetail
}

// NewValidationError creates a new validation error from a formatted message and its issues
func NewValidationError(message string, issues []IssueDetail) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message:  message,
			ExitCode: ExitValidationError,
		},
		Issues: issues,
	}
}

// GetUserMessage lists every issue on its own line after the message
func (e *ValidationError) GetUserMessage() string {
	msg := fmt.Sprintf("ERROR: %s", e.Message)
	if len(e.Issues) > 1 {
		msg += "\n"
		for _, issue := range e.Issues {
			msg += fmt.Sprintf("\n  - %s: %s", issue.Path, issue.Reason)
		}
		msg += "\n"
	}
	if e.Context != nil {
		msg += e.Context.Format()
	}
	return msg
}

// MissingFileError is raised when a required file is not found
type MissingFileError struct {
	*AppError
}

// NewMissingFileError creates a new missing file error
func NewMissingFileError(filePath string) *MissingFileError {
	return &MissingFileError{
		AppError: &AppError{
			Message: fmt.Sprintf("Required file not found: %s", filePath),
			Context: &ErrorContext{
				Operation: "Reading page configuration",
				Component: "Filesystem",
				Details: map[string]interface{}{
					"file_path": filePath,
				},
				Suggestions: []string{
					"Check that the file exists",
					"Run 'pagesmith init' to create a starter page",
				},
			},
			ExitCode: ExitIOError,
		},
	}
}

// PageSourceError is raised when a page file exists but cannot be read or decoded
type PageSourceError struct {
	*AppError
}

// NewPageSourceError creates a new page source error
func NewPageSourceError(filePath string, cause error) *PageSourceError {
	return &PageSourceError{
		AppError: &AppError{
			Message: fmt.Sprintf("Failed to read page configuration: %s", filePath),
			Cause:   cause,
			Context: &ErrorContext{
				Operation: "Reading page configuration",
				Component: "Page Source",
				Details: map[string]interface{}{
					"file_path": filePath,
				},
				Suggestions: []string{
					"Use a .json, .yaml or .yml file",
					"Check the file syntax",
				},
				Recoverable: true,
			},
			ExitCode: ExitValidationError,
		},
	}
}
