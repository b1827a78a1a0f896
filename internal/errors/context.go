package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorContext provides rich error information for user-friendly error messages
type ErrorContext struct {
	Operation   string                 // The operation that failed
	Component   string                 // The component that failed
	Details     map[string]interface{} // Additional details about the error
	Suggestions []string               // Actionable suggestions for the user
	Recoverable bool                   // Whether the user can fix the input and retry
}

// Format renders the context as an indented block appended to user messages.
// Details are printed in key order so output is stable.
func (ec *ErrorContext) Format() string {
	var sb strings.Builder

	switch {
	case ec.Operation != "" && ec.Component != "":
		fmt.Fprintf(&sb, "\nWhat happened:\n  %s failed in %s.\n", ec.Operation, ec.Component)
	case ec.Operation != "":
		fmt.Fprintf(&sb, "\nWhat happened:\n  %s failed.\n", ec.Operation)
	case ec.Component != "":
		fmt.Fprintf(&sb, "\nWhat happened:\n  Failure in %s.\n", ec.Component)
	}

	if len(ec.Details) > 0 {
		keys := make([]string, 0, len(ec.Details))
		for key := range ec.Details {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		sb.WriteString("\nDetails:\n")
		for _, key := range keys {
			fmt.Fprintf(&sb, "  - %s: %v\n", key, ec.Details[key])
		}
	}

	if len(ec.Suggestions) > 0 {
		sb.WriteString("\nWhat you can do:\n")
		for i, suggestion := range ec.Suggestions {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, suggestion)
		}
	}

	if ec.Recoverable {
		sb.WriteString("\nRecoverable: Yes (fix the input and run again)\n")
	}

	return sb.String()
}
