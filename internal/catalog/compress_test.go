package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repforge/repforge/internal/program"
	"github.com/repforge/repforge/internal/types"
)

func fullExercise() Exercise {
	return Exercise{
		ID:                types.NewID(),
		Name:              "Barbell Back Squat",
		Categories:        []string{"strength", "lower body"},
		Difficulty:        DifficultyIntermediate,
		MuscleGroup:       "legs",
		Pattern:           program.PatternSquat,
		PrimaryMuscles:    []string{"quads", "glutes"},
		SecondaryMuscles:  []string{"core"},
		ForceType:         "push",
		Laterality:        LateralityBilateral,
		EquipmentRequired: []string{"barbell", "rack"},
		Compound:          true,
		Active:            true,
		Description:       "A long paragraph about squatting that bloats prompts.",
		Instructions:      []string{"Unrack the bar", "Squat to depth", "Stand up"},
		VideoURL:          "https://example.com/squat.mp4",
		ImageURL:          "https://example.com/squat.jpg",
	}
}

func TestCompress_DropsProseFields(t *testing.T) {
	ex := fullExercise()
	c := Compress(ex)

	assert.Equal(t, ex.ID, c.ID)
	assert.Equal(t, ex.Name, c.Name)
	assert.Equal(t, ex.Pattern, c.Pattern)
	assert.Equal(t, ex.PrimaryMuscles, c.PrimaryMuscles)
	assert.Equal(t, ex.EquipmentRequired, c.EquipmentRequired)

	// Every dropped field would otherwise bloat the prompt.
	line := c.PromptLine()
	assert.NotContains(t, line, ex.Description)
	assert.NotContains(t, line, ex.VideoURL)
	assert.NotContains(t, line, "Unrack")
}

func TestCompressAll(t *testing.T) {
	exercises := []Exercise{fullExercise(), fullExercise()}
	compressed := CompressAll(exercises)

	assert.Len(t, compressed, 2)
	assert.Equal(t, exercises[0].Name, compressed[0].Name)
}

func TestPromptLine_FullRecord(t *testing.T) {
	line := Compress(fullExercise()).PromptLine()

	assert.Equal(t,
		"Barbell Back Squat | strength, lower body | intermediate | squat | legs | "+
			"primary: quads, glutes | secondary: core | compound | equipment: barbell, rack",
		line)
}

func TestPromptLine_MinimalRecord(t *testing.T) {
	c := Compressed{
		Name:        "Plank",
		Difficulty:  DifficultyBeginner,
		MuscleGroup: "core",
		Pattern:     program.PatternIsometric,
		Bodyweight:  true,
	}

	assert.Equal(t, "Plank | beginner | isometric | core | isolation | bodyweight", c.PromptLine())
}

func TestDifficultyRank(t *testing.T) {
	assert.Equal(t, 0, DifficultyBeginner.Rank())
	assert.Equal(t, 1, DifficultyIntermediate.Rank())
	assert.Equal(t, 2, DifficultyAdvanced.Rank())
	assert.Equal(t, -1, Difficulty("expert").Rank())
}
