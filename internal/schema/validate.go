package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/repforge/repforge/internal/types"
)

// ValidationError represents a schema validation error at a specific path.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors aggregates every violation found in one pass.
type ValidationErrors []ValidationError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// Validate checks raw JSON against a schema, returning nil on success or a
// ValidationErrors listing every violation. This runs against the full,
// unsanitized schema so constraints the backend could not express natively
// are still enforced after the call.
func Validate(raw []byte, s *types.JSONSchema) error {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return ValidationErrors{{Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}

	errs := validateValue("", s, data)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateValue checks an already-decoded value against a schema.
func ValidateValue(data any, s *types.JSONSchema) error {
	errs := validateValue("", s, data)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateValue(path string, s *types.JSONSchema, value any) ValidationErrors {
	if s == nil {
		return nil
	}

	var errs ValidationErrors

	actual := jsonType(value)
	if s.Type != "" && !typeCompatible(s.Type, value) {
		return ValidationErrors{{
			Path:    path,
			Message: fmt.Sprintf("expected type %s, got %s", s.Type, actual),
		}}
	}

	switch s.Type {
	case "object":
		errs = append(errs, validateObject(path, s, value)...)
	case "array":
		errs = append(errs, validateArray(path, s, value)...)
	case "string":
		errs = append(errs, validateString(path, s, value)...)
	case "number", "integer":
		errs = append(errs, validateNumber(path, s, value)...)
	}

	if len(s.Enum) > 0 {
		errs = append(errs, validateEnum(path, s, value)...)
	}

	return errs
}

func validateObject(path string, s *types.JSONSchema, value any) ValidationErrors {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	var errs ValidationErrors

	for _, field := range s.Required {
		if _, exists := obj[field]; !exists {
			errs = append(errs, ValidationError{
				Path:    joinPath(path, field),
				Message: "required field is missing",
			})
		}
	}

	for name, fieldValue := range obj {
		fieldSchema, hasSchema := s.Properties[name]
		if !hasSchema {
			if s.AdditionalProperties != nil && !*s.AdditionalProperties {
				errs = append(errs, ValidationError{
					Path:    joinPath(path, name),
					Message: "additional property not allowed",
				})
			}
			continue
		}
		errs = append(errs, validateValue(joinPath(path, name), fieldSchema, fieldValue)...)
	}

	return errs
}

func validateArray(path string, s *types.JSONSchema, value any) ValidationErrors {
	arr, ok := value.([]any)
	if !ok {
		return nil
	}

	var errs ValidationErrors

	if s.MinItems != nil && len(arr) < *s.MinItems {
		errs = append(errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("array must have at least %d items, got %d", *s.MinItems, len(arr)),
		})
	}

	if s.Items != nil {
		for i, item := range arr {
			errs = append(errs, validateValue(fmt.Sprintf("%s[%d]", path, i), s.Items, item)...)
		}
	}

	return errs
}

func validateString(path string, s *types.JSONSchema, value any) ValidationErrors {
	str, ok := value.(string)
	if !ok {
		return nil
	}

	var errs ValidationErrors

	if s.MinLength != nil && len(str) < *s.MinLength {
		errs = append(errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("string must be at least %d characters, got %d", *s.MinLength, len(str)),
		})
	}
	if s.MaxLength != nil && len(str) > *s.MaxLength {
		errs = append(errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("string must be at most %d characters, got %d", *s.MaxLength, len(str)),
		})
	}

	return errs
}

func validateNumber(path string, s *types.JSONSchema, value any) ValidationErrors {
	num, ok := value.(float64)
	if !ok {
		return nil
	}

	var errs ValidationErrors

	if s.Type == "integer" && num != math.Trunc(num) {
		errs = append(errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("expected integer, got %v", num),
		})
	}
	if s.Minimum != nil && num < *s.Minimum {
		errs = append(errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("value %v is below minimum %v", num, *s.Minimum),
		})
	}
	if s.Maximum != nil && num > *s.Maximum {
		errs = append(errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("value %v is above maximum %v", num, *s.Maximum),
		})
	}

	return errs
}

func validateEnum(path string, s *types.JSONSchema, value any) ValidationErrors {
	for _, allowed := range s.Enum {
		if value == allowed {
			return nil
		}
	}
	return ValidationErrors{{
		Path:    path,
		Message: fmt.Sprintf("value %v is not one of the allowed values", value),
	}}
}

func typeCompatible(schemaType string, value any) bool {
	switch schemaType {
	case "object":
		_, ok := value.(map[string]any)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		_, ok := value.(float64)
		return ok
	case "integer":
		num, ok := value.(float64)
		return ok && num == math.Trunc(num)
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "null":
		return value == nil
	default:
		return true
	}
}

func jsonType(value any) string {
	switch value.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}

func joinPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}
