// Package schemas validates incoming résumé documents against the embedded
// JSON Schema before they are decoded.
package schemas

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/achint227/Resume-Generator/internal/types"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema string

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// FirstField returns the path of the first failing field.
func (ve *ValidationError) FirstField() string {
	if len(ve.Errors) == 0 {
		return ""
	}
	return ve.Errors[0].Field
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var compiledResumeSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(resumeSchema))
})

// ValidateResumeJSON validates raw JSON against the résumé schema.
func ValidateResumeJSON(data []byte) error {
	schema, err := compiledResumeSchema()
	if err != nil {
		return &SchemaLoadError{Path: "resume.schema.json", Message: "invalid embedded schema", Cause: err}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		// The document is not parseable JSON.
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// DecodeResume validates data and decodes it into a normalized document.
func DecodeResume(data []byte) (*types.Resume, error) {
	if err := ValidateResumeJSON(data); err != nil {
		return nil, err
	}
	doc, err := types.ParseResume(data)
	if err != nil {
		return nil, &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if err := doc.Validate(); err != nil {
		return nil, &ValidationError{Errors: []FieldError{{Field: "basic_info", Message: err.Error()}}}
	}
	return doc, nil
}

// DecodeResumeFile reads and decodes a résumé document from disk.
func DecodeResumeFile(path string) (*types.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return DecodeResume(data)
}
