package errors

import (
	"errors"
	"fmt"
)

// AppError is the base error type for all pagesmith errors
type AppError struct {
	Message  string        // Human-readable error message
	Context  *ErrorContext // Rich error context
	Cause    error         // Underlying error (for wrapping)
	ExitCode ExitCode      // Exit code for CLI
}

// Error returns the error message with cause if present
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// GetUserMessage returns a user-friendly error message with context
func (e *AppError) GetUserMessage() string {
	msg := fmt.Sprintf("ERROR: %s", e.Message)

	if e.Cause != nil {
		msg += fmt.Sprintf("\nCause: %v", e.Cause)
	}

	if e.Context != nil {
		msg += e.Context.Format()
	}

	return msg
}

// NewError creates a new AppError with the given message and exit code
func NewError(message string, exitCode ExitCode) *AppError {
	return &AppError{
		Message:  message,
		ExitCode: exitCode,
	}
}

// WrapError wraps an existing error with additional context
func WrapError(cause error, message string, exitCode ExitCode) *AppError {
	return &AppError{
		Message:  message,
		Cause:    cause,
		ExitCode: exitCode,
	}
}

// WrapErrorWithContext wraps an error with full context
func WrapErrorWithContext(cause error, message string, exitCode ExitCode, context *ErrorContext) *AppError {
	return &AppError{
		Message:  message,
		Context:  context,
		Cause:    cause,
		ExitCode: exitCode,
	}
}

// userFacing is implemented by every typed error embedding *AppError
type userFacing interface {
	error
	GetUserMessage() string
	Code() ExitCode
}

// Code returns the exit code carried by the error
func (e *AppError) Code() ExitCode {
	return e.ExitCode
}

// AsUserFacing finds the first AppError-derived error in the chain
func AsUserFacing(err error) (userFacing, bool) {
	var target userFacing
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// ExitCodeOf returns the exit code for err, ExitGeneralError when err carries none
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	if uf, ok := AsUserFacing(err); ok {
		return uf.Code()
	}
	return ExitGeneralError
}
