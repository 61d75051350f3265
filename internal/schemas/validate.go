// Package schemas provides JSON Schema validation for catalog and config documents.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var files embed.FS

// Name identifies an embedded schema.
type Name string

const (
	// Catalog is an array of {"Address", "Title"} objects
	Catalog Name = "catalog.schema.json"
	// Config is the JSON config file
	Config Name = "config.schema.json"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema Name
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading the schema or parsing the document
type SchemaLoadError struct {
	Schema  Name
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Schema, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	parts := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return fmt.Sprintf("%s validation failed: %s", ve.Schema, strings.Join(parts, "; "))
}

// Validate checks a JSON document against the named embedded schema.
func Validate(name Name, document []byte) error {
	schema, err := files.ReadFile(string(name))
	if err != nil {
		return &SchemaLoadError{Schema: name, Message: "schema not found", Cause: err}
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &SchemaLoadError{Schema: name, Message: "validation failed during load", Cause: err}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: name,
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
