package schema

import "github.com/repforge/repforge/internal/types"

// CapabilityProfile describes which schema constraint keywords an inference
// backend can express natively. Constraints a backend cannot express are
// stripped before the call and re-checked procedurally afterward; the full
// schema remains the source of truth for post-call validation.
type CapabilityProfile struct {
	// NumericBounds allows minimum/maximum on numeric fields.
	NumericBounds bool

	// StringLengthBounds allows minLength/maxLength on string fields.
	StringLengthBounds bool

	// MultiItemArrayMinimums allows minItems greater than one.
	MultiItemArrayMinimums bool
}

// FullCapabilities returns a profile with every constraint keyword allowed.
func FullCapabilities() CapabilityProfile {
	return CapabilityProfile{
		NumericBounds:          true,
		StringLengthBounds:     true,
		MultiItemArrayMinimums: true,
	}
}

// RestrictedCapabilities returns the profile for backends whose structured
// output rejects numeric bounds, string length bounds, and array minimums
// above one. Range enforcement must then live in the prompt plus the
// post-call validator.
func RestrictedCapabilities() CapabilityProfile {
	return CapabilityProfile{}
}

// Sanitize returns a deep copy of s with every constraint the profile
// cannot express removed. The input schema is never modified.
func Sanitize(s *types.JSONSchema, profile CapabilityProfile) *types.JSONSchema {
	if s == nil {
		return nil
	}

	out := *s

	if !profile.NumericBounds {
		out.Minimum = nil
		out.Maximum = nil
	}
	if !profile.StringLengthBounds {
		out.MinLength = nil
		out.MaxLength = nil
	}
	if !profile.MultiItemArrayMinimums && out.MinItems != nil && *out.MinItems > 1 {
		out.MinItems = nil
	}

	if s.Items != nil {
		out.Items = Sanitize(s.Items, profile)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]*types.JSONSchema, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = Sanitize(prop, profile)
		}
		out.Properties = props
	}

	return &out
}
