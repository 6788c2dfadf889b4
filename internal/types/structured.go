package types

import "fmt"

// ResponseFormatType specifies how the model should format its response
type ResponseFormatType string

const (
	// ResponseFormatText indicates default, free-form text output
	ResponseFormatText ResponseFormatType = "text"
	// ResponseFormatJSONSchema indicates JSON output matching a specific schema
	ResponseFormatJSONSchema ResponseFormatType = "json_schema"
)

// String returns the string representation of ResponseFormatType
func (r ResponseFormatType) String() string {
	return string(r)
}

// IsValid checks if the response format type is valid
func (r ResponseFormatType) IsValid() bool {
	switch r {
	case ResponseFormatText, ResponseFormatJSONSchema:
		return true
	default:
		return false
	}
}

// JSONSchema represents a JSON Schema for structured output validation.
type JSONSchema struct {
	// Type specifies the JSON type (object, array, string, number, boolean)
	Type string `json:"type,omitempty"`

	// Properties defines object properties (for type: object)
	Properties map[string]*JSONSchema `json:"properties,omitempty"`

	// Required lists required property names (for type: object)
	Required []string `json:"required,omitempty"`

	// Items defines array item schema (for type: array)
	Items *JSONSchema `json:"items,omitempty"`

	// Description provides human-readable schema documentation
	Description string `json:"description,omitempty"`

	// Enum constrains values to a specific set
	Enum []any `json:"enum,omitempty"`

	// Minimum specifies minimum numeric value
	Minimum *float64 `json:"minimum,omitempty"`

	// Maximum specifies maximum numeric value
	Maximum *float64 `json:"maximum,omitempty"`

	// MinLength specifies minimum string length
	MinLength *int `json:"minLength,omitempty"`

	// MaxLength specifies maximum string length
	MaxLength *int `json:"maxLength,omitempty"`

	// MinItems specifies minimum array length
	MinItems *int `json:"minItems,omitempty"`

	// AdditionalProperties controls whether extra object properties are allowed
	AdditionalProperties *bool `json:"additionalProperties,omitempty"`
}

// ResponseFormat specifies the desired response structure from the model.
type ResponseFormat struct {
	// Type specifies the response format (text, json_schema)
	Type ResponseFormatType `json:"type"`

	// Name is a schema name for tracing and debugging
	Name string `json:"name,omitempty"`

	// Schema defines the JSON schema (required for json_schema type)
	Schema *JSONSchema `json:"schema,omitempty"`
}

// NewTextFormat creates a ResponseFormat for plain text output
func NewTextFormat() ResponseFormat {
	return ResponseFormat{Type: ResponseFormatText}
}

// NewJSONSchemaFormat creates a ResponseFormat with a specific JSON schema
func NewJSONSchemaFormat(name string, schema *JSONSchema) ResponseFormat {
	return ResponseFormat{
		Type:   ResponseFormatJSONSchema,
		Name:   name,
		Schema: schema,
	}
}

// Validate checks if the ResponseFormat is valid
func (r ResponseFormat) Validate() error {
	if !r.Type.IsValid() {
		return fmt.Errorf("invalid response format type: %q", r.Type)
	}

	if r.Type == ResponseFormatJSONSchema {
		if r.Schema == nil {
			return fmt.Errorf("schema is required for json_schema format")
		}
		if r.Name == "" {
			return fmt.Errorf("name is required for json_schema format")
		}
	}

	return nil
}
