// Package catalog holds the exercise catalog types and the compressor that
// strips full records down to the fields model reasoning needs.
package catalog

import (
	"github.com/repforge/repforge/internal/program"
	"github.com/repforge/repforge/internal/types"
)

// Difficulty is the ordered exercise difficulty scale.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// IsValid checks if the difficulty is a known value
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	default:
		return false
	}
}

// Rank returns the difficulty's position on the ordered scale, or -1 for
// unknown values.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyBeginner:
		return 0
	case DifficultyIntermediate:
		return 1
	case DifficultyAdvanced:
		return 2
	default:
		return -1
	}
}

// Laterality describes whether an exercise works limbs together or singly.
type Laterality string

const (
	LateralityBilateral  Laterality = "bilateral"
	LateralityUnilateral Laterality = "unilateral"
)

// Exercise is a full catalog record as stored. Description, instructions
// and media fields exist only here; the compressor drops them.
type Exercise struct {
	ID                types.ID                `json:"id"`
	Name              string                  `json:"name"`
	Categories        []string                `json:"categories"`
	Difficulty        Difficulty              `json:"difficulty"`
	MuscleGroup       string                  `json:"muscle_group"`
	Pattern           program.MovementPattern `json:"pattern"`
	PrimaryMuscles    []string                `json:"primary_muscles"`
	SecondaryMuscles  []string                `json:"secondary_muscles"`
	ForceType         string                  `json:"force_type"`
	Laterality        Laterality              `json:"laterality"`
	EquipmentRequired []string                `json:"equipment_required"`
	Bodyweight        bool                    `json:"bodyweight"`
	Compound          bool                    `json:"compound"`
	Active            bool                    `json:"active"`

	// Fields below never reach a prompt.
	Description  string   `json:"description,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	VideoURL     string   `json:"video_url,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
}
