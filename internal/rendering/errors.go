// Package rendering turns résumé documents into LaTeX source using one of the
// registered template variants.
package rendering

import "fmt"

// ValidationError reports a rejected render input such as an unknown
// template identifier or a malformed section order.
type ValidationError struct {
	Field   string
	Message string
	Value   string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation error: %s: %s (got %q)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// TemplateError represents an error parsing or executing a header template.
type TemplateError struct {
	Template TemplateID
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %s: %v", e.Template, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s: %s", e.Template, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a defect inside a renderer variant.
type RenderError struct {
	Template TemplateID
	Section  string
	Message  string
	Cause    error
}

func (e *RenderError) Error() string {
	where := string(e.Template)
	if e.Section != "" {
		where += "/" + e.Section
	}
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s: %s", where, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
