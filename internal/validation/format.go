package validation

import (
	"strings"

	"github.com/user/pagesmith/internal/errors"
)

// issueSeparator joins the issues of one failure
const issueSeparator = "; "

// failure localizes issues into a single *errors.ValidationError whose
// message reads "<banner><sep><path><sep><reason>; ..."
func (v *Validator) failure(issues []Issue) *errors.ValidationError {
	sep := v.catalog.Text("validation.separator")

	details := make([]errors.IssueDetail, len(issues))
	parts := make([]string, len(issues))
	for i, issue := range issues {
		path := v.FormatPath(issue.Path)
		reason := v.Reason(issue)
		details[i] = errors.IssueDetail{Path: path, Reason: reason, Code: string(issue.Code)}
		parts[i] = path + sep + reason
	}

	message := v.catalog.Text("validation.banner") + sep + strings.Join(parts, issueSeparator)
	return errors.NewValidationError(message, details)
}

// FormatPath renders a path with localized field labels and 1-based item
// numbers, joined by " > "
func (v *Validator) FormatPath(path Path) string {
	if len(path) == 0 {
		return v.catalog.Text("validation.root")
	}

	parts := make([]string, len(path))
	for i, elem := range path {
		if elem.IsKey {
			parts[i] = v.catalog.Label(elem.Key)
			continue
		}
		parts[i] = v.catalog.Message("validation.item", map[string]any{"Index": elem.Index + 1})
	}
	return strings.Join(parts, " > ")
}

// Reason renders the localized explanation of an issue
func (v *Validator) Reason(issue Issue) string {
	switch issue.Code {
	case CodeRequired:
		return v.catalog.Text("validation.required")
	case CodeWrongType:
		return v.catalog.Message("validation.wrong_type", map[string]any{"Expected": v.catalog.Text("type." + issue.Expected)})
	case CodeEmptyString:
		return v.catalog.Text("validation.empty_string")
	case CodeEmptyList:
		return v.catalog.Text("validation.empty_list")
	case CodeInvalidEnum:
		return v.catalog.Message("validation.invalid_option", map[string]any{"Options": issue.Options})
	case CodeUnknownKeys:
		return v.catalog.Message("validation.unknown_keys", map[string]any{"Keys": issue.Keys})
	case CodeDuplicateID:
		return v.catalog.Message("validation.duplicate_id", map[string]any{"Value": issue.Value, "Index": issue.Index})
	case CodeUnparsable:
		return v.catalog.Message("validation.unparsable", map[string]any{"Detail": issue.Detail})
	default:
		return v.catalog.Text("validation.invalid")
	}
}
