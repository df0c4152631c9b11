package validation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-scriptlink/pkg/model"
)

// Issue represents a validation error with optional location metadata. Path
// is a JSON pointer into the wire document; Field is the dotted form.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationResult captures the outcome of ValidateOption.
type ValidationResult struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Err folds the issues into a single error, or nil when the option is valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	messages := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if issue.Field != "" {
			messages = append(messages, issue.Field+": "+issue.Message)
			continue
		}
		messages = append(messages, issue.Message)
	}
	return fmt.Errorf("validation: %s", strings.Join(messages, "; "))
}

// ValidateOption checks option against OptionSchema and then applies the
// rules a schema cannot express: a required field must be enabled and a
// field number may appear only once per row. A nil container is valid.
func ValidateOption(option model.FormsContainer) ValidationResult {
	result := ValidationResult{Valid: true}
	if option == nil {
		return result
	}

	document, err := toJSONValue(option)
	if err != nil {
		result.add(Issue{Message: err.Error()})
		return result
	}
	if document == nil {
		return result
	}

	if err := OptionSchema().VisitJSON(document, openapi3.MultiErrors()); err != nil {
		for _, issue := range issuesFromError(err) {
			result.add(issue)
		}
	}
	for _, issue := range ruleIssues(option.FormList()) {
		result.add(issue)
	}
	return result
}

func (r *ValidationResult) add(issue Issue) {
	r.Valid = false
	r.Issues = append(r.Issues, issue)
}

func toJSONValue(option model.FormsContainer) (any, error) {
	raw, err := json.Marshal(option)
	if err != nil {
		return nil, fmt.Errorf("validation: encode option: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("validation: decode option: %w", err)
	}
	return out, nil
}

func issuesFromError(err error) []Issue {
	switch e := err.(type) {
	case openapi3.MultiError:
		var out []Issue
		for _, nested := range e {
			out = append(out, issuesFromError(nested)...)
		}
		return out
	case *openapi3.SchemaError:
		if nested, ok := e.Origin.(openapi3.MultiError); ok {
			return issuesFromError(nested)
		}
		path := pointerFromSegments(e.JSONPointer())
		return []Issue{{
			Path:    path,
			Field:   fieldPathFromPointer(path),
			Message: strings.TrimSpace(e.Reason),
		}}
	default:
		return []Issue{{Message: strings.TrimSpace(err.Error())}}
	}
}

func ruleIssues(forms []model.Form) []Issue {
	var out []Issue
	for fi, form := range forms {
		base := "/Forms/" + strconv.Itoa(fi)
		if form.CurrentRow != nil {
			out = append(out, rowIssues(base+"/CurrentRow", *form.CurrentRow)...)
		}
		for ri, row := range form.OtherRows {
			out = append(out, rowIssues(base+"/OtherRows/"+strconv.Itoa(ri), row)...)
		}
	}
	return out
}

func rowIssues(base string, row model.Row) []Issue {
	var out []Issue
	seen := make(map[string]int, len(row.Fields))
	for idx, field := range row.Fields {
		path := base + "/Fields/" + strconv.Itoa(idx)
		if field.IsRequired() && !field.IsEnabled() {
			out = append(out, newIssue(path+"/Required", fmt.Sprintf("field %q is required but disabled", field.FieldNumber)))
		}
		if field.FieldNumber == "" {
			continue
		}
		if first, ok := seen[field.FieldNumber]; ok {
			out = append(out, newIssue(path+"/FieldNumber",
				fmt.Sprintf("field number %q repeats field %d", field.FieldNumber, first)))
			continue
		}
		seen[field.FieldNumber] = idx
	}
	return out
}

func newIssue(path, message string) Issue {
	return Issue{Path: path, Field: fieldPathFromPointer(path), Message: message}
}

func pointerFromSegments(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		segment = strings.ReplaceAll(segment, "~", "~0")
		escaped[i] = strings.ReplaceAll(segment, "/", "~1")
	}
	return "/" + strings.Join(escaped, "/")
}

func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		parts[i] = strings.ReplaceAll(part, "~0", "~")
	}
	return strings.Join(parts, ".")
}
