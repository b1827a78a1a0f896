package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigurationError is raised when application settings are invalid or missing
type ConfigurationError struct {
	*AppError
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{
		AppError: &AppError{
			Message:  message,
			ExitCode: ExitConfigError,
		},
	}
}

// InvalidSettingError is raised when one or more settings fail validation
type InvalidSettingError struct {
	*AppError
	Fields map[string]string
}

// NewInvalidSettingError creates a settings error; fields maps a setting key to its failed rule
func NewInvalidSettingError(fields map[string]string) *InvalidSettingError {
	details := make(map[string]interface{}, len(fields))
	keys := make([]string, 0, len(fields))
	for key, rule := range fields {
		details[key] = rule
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return &InvalidSettingError{
		AppError: &AppError{
			Message: fmt.Sprintf("Invalid settings: %s", strings.Join(keys, ", ")),
			Context: &ErrorContext{
				Operation: "Validating settings",
				Component: "Settings",
				Details:   details,
				Suggestions: []string{
					"Check .pagesmith/config.yaml and ~/.pagesmith.yaml",
					"Check PAGESMITH_* environment variables and your .env file",
					"Run 'pagesmith settings' to print the effective values",
				},
			},
			ExitCode: ExitConfigError,
		},
		Fields: fields,
	}
}

// ConfigFileError is raised when a settings file cannot be read or parsed
type ConfigFileError struct {
	*AppError
}

// NewConfigFileError creates a new config file error
func NewConfigFileError(filePath string, cause error) *ConfigFileError {
	return &ConfigFileError{
		AppError: &AppError{
			Message: fmt.Sprintf("Failed to load settings file: %s", filePath),
			Cause:   cause,
			Context: &ErrorContext{
				Operation: "Loading settings",
				Component: "Config File",
				Details: map[string]interface{}{
					"file_path": filePath,
				},
				Suggestions: []string{
					"Check that the file exists and is readable",
					"Validate YAML syntax",
				},
			},
			ExitCode: ExitConfigError,
		},
	}
}
