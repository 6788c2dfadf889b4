// Package schema builds and validates the JSON schemas handed to the
// inference provider's structured-output mechanism. Builders produce
// types.JSONSchema trees; a capability profile describes which constraint
// keywords a backend can express natively, and Sanitize strips the rest so
// they can be re-checked procedurally after the call returns.
package schema

import "github.com/repforge/repforge/internal/types"

// Object creates an object schema with the given properties and required fields.
func Object(properties map[string]*types.JSONSchema, required ...string) *types.JSONSchema {
	return &types.JSONSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// Array creates an array schema with the given item schema.
func Array(items *types.JSONSchema) *types.JSONSchema {
	return &types.JSONSchema{
		Type:  "array",
		Items: items,
	}
}

// String creates a string field with a description.
func String(description string) *types.JSONSchema {
	return &types.JSONSchema{Type: "string", Description: description}
}

// Integer creates an integer field with a description.
func Integer(description string) *types.JSONSchema {
	return &types.JSONSchema{Type: "integer", Description: description}
}

// Number creates a number field with a description.
func Number(description string) *types.JSONSchema {
	return &types.JSONSchema{Type: "number", Description: description}
}

// Boolean creates a boolean field with a description.
func Boolean(description string) *types.JSONSchema {
	return &types.JSONSchema{Type: "boolean", Description: description}
}

// StringEnum creates a string field constrained to the given values.
func StringEnum(description string, values ...string) *types.JSONSchema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return &types.JSONSchema{Type: "string", Description: description, Enum: enum}
}

// WithRange sets minimum and maximum on a numeric field.
func WithRange(field *types.JSONSchema, min, max float64) *types.JSONSchema {
	field.Minimum = &min
	field.Maximum = &max
	return field
}

// WithMinItems sets a minimum array length.
func WithMinItems(field *types.JSONSchema, n int) *types.JSONSchema {
	field.MinItems = &n
	return field
}

// Closed marks an object schema as rejecting additional properties.
func Closed(field *types.JSONSchema) *types.JSONSchema {
	f := false
	field.AdditionalProperties = &f
	return field
}
