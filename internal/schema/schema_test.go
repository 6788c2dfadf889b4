package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repforge/repforge/internal/types"
)

func weekSchema() *types.JSONSchema {
	return Object(map[string]*types.JSONSchema{
		"number":    WithRange(Integer("week number"), 1, 52),
		"phase":     StringEnum("training phase", "accumulation", "intensification", "deload"),
		"intensity": WithRange(Number("relative intensity"), 0, 1),
		"label":     String("display label"),
		"days": WithMinItems(Array(Object(map[string]*types.JSONSchema{
			"day_of_week": WithRange(Integer("0=Monday"), 0, 6),
		}, "day_of_week")), 2),
	}, "number", "days")
}

func TestBuilders(t *testing.T) {
	s := weekSchema()

	assert.Equal(t, "object", s.Type)
	assert.ElementsMatch(t, []string{"number", "days"}, s.Required)

	number := s.Properties["number"]
	require.NotNil(t, number)
	assert.Equal(t, "integer", number.Type)
	require.NotNil(t, number.Minimum)
	assert.Equal(t, float64(1), *number.Minimum)

	phase := s.Properties["phase"]
	assert.Equal(t, "string", phase.Type)
	assert.Equal(t, []string{"accumulation", "intensification", "deload"}, phase.Enum)

	days := s.Properties["days"]
	assert.Equal(t, "array", days.Type)
	require.NotNil(t, days.MinItems)
	assert.Equal(t, 2, *days.MinItems)
	require.NotNil(t, days.Items)
	assert.Equal(t, "object", days.Items.Type)
}

func TestSanitize_RestrictedStripsConstraints(t *testing.T) {
	original := weekSchema()
	sanitized := Sanitize(original, RestrictedCapabilities())

	assert.Nil(t, sanitized.Properties["number"].Minimum)
	assert.Nil(t, sanitized.Properties["number"].Maximum)
	assert.Nil(t, sanitized.Properties["intensity"].Minimum)
	assert.Nil(t, sanitized.Properties["days"].MinItems)
	// Nested object constraints are stripped too.
	assert.Nil(t, sanitized.Properties["days"].Items.Properties["day_of_week"].Minimum)

	// Enums and required lists survive: backends accept those.
	assert.Equal(t, original.Properties["phase"].Enum, sanitized.Properties["phase"].Enum)
	assert.Equal(t, original.Required, sanitized.Required)

	// The original is untouched.
	require.NotNil(t, original.Properties["number"].Minimum)
	require.NotNil(t, original.Properties["days"].MinItems)
}

func TestSanitize_MinItemsOfOneSurvives(t *testing.T) {
	s := WithMinItems(Array(String("goal")), 1)
	sanitized := Sanitize(s, RestrictedCapabilities())

	require.NotNil(t, sanitized.MinItems)
	assert.Equal(t, 1, *sanitized.MinItems)
}

func TestSanitize_FullCapabilitiesIsIdentity(t *testing.T) {
	original := weekSchema()
	sanitized := Sanitize(original, FullCapabilities())

	require.NotNil(t, sanitized.Properties["number"].Minimum)
	require.NotNil(t, sanitized.Properties["days"].MinItems)
	assert.Equal(t, 2, *sanitized.Properties["days"].MinItems)
}

func TestValidate_Passes(t *testing.T) {
	doc := []byte(`{
		"number": 1,
		"phase": "accumulation",
		"intensity": 0.8,
		"days": [{"day_of_week": 0}, {"day_of_week": 2}]
	}`)

	assert.NoError(t, Validate(doc, weekSchema()))
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing required", `{"number": 1}`},
		{"out of range", `{"number": 0, "days": [{"day_of_week": 0}, {"day_of_week": 1}]}`},
		{"bad enum", `{"number": 1, "phase": "taper", "days": [{"day_of_week": 0}, {"day_of_week": 1}]}`},
		{"too few items", `{"number": 1, "days": [{"day_of_week": 0}]}`},
		{"wrong type", `{"number": "one", "days": [{"day_of_week": 0}, {"day_of_week": 1}]}`},
		{"fractional integer", `{"number": 1.5, "days": [{"day_of_week": 0}, {"day_of_week": 1}]}`},
		{"nested violation", `{"number": 1, "days": [{"day_of_week": 9}, {"day_of_week": 1}]}`},
		{"not json", `not json at all`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Validate([]byte(tt.doc), weekSchema()))
		})
	}
}

func TestValidate_ClosedObjectRejectsExtraFields(t *testing.T) {
	s := Closed(Object(map[string]*types.JSONSchema{
		"pass": Boolean("verdict"),
	}, "pass"))

	assert.NoError(t, Validate([]byte(`{"pass": true}`), s))
	assert.Error(t, Validate([]byte(`{"pass": true, "extra": 1}`), s))
}

func TestValidate_ReportsPath(t *testing.T) {
	err := Validate([]byte(`{"number": 1, "days": [{"day_of_week": 0}, {"day_of_week": 99}]}`), weekSchema())
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.NotEmpty(t, verrs)
	assert.Contains(t, verrs[0].Path, "days[1]")
}
