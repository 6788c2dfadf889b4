package catalog

import (
	"strings"

	"github.com/repforge/repforge/internal/program"
	"github.com/repforge/repforge/internal/types"
)

// Compressed is the minimal exercise view used for model reasoning and
// scoring. Dropping description, instructions and media cuts prompt size by
// roughly 60% while keeping every field the scorer and the model need.
type Compressed struct {
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
}

// Compress strips a full catalog record to its reasoning fields.
func Compress(ex Exercise) Compressed {
	return Compressed{
		ID:                ex.ID,
		Name:              ex.Name,
		Categories:        ex.Categories,
		Difficulty:        ex.Difficulty,
		MuscleGroup:       ex.MuscleGroup,
		Pattern:           ex.Pattern,
		PrimaryMuscles:    ex.PrimaryMuscles,
		SecondaryMuscles:  ex.SecondaryMuscles,
		ForceType:         ex.ForceType,
		Laterality:        ex.Laterality,
		EquipmentRequired: ex.EquipmentRequired,
		Bodyweight:        ex.Bodyweight,
		Compound:          ex.Compound,
	}
}

// CompressAll compresses a slice of catalog records.
func CompressAll(exercises []Exercise) []Compressed {
	out := make([]Compressed, len(exercises))
	for i, ex := range exercises {
		out[i] = Compress(ex)
	}
	return out
}

// PromptLine renders the canonical pipe-joined text serialization of one
// exercise, used for prompt embedding and for semantic-embedding input.
func (c Compressed) PromptLine() string {
	parts := []string{c.Name}

	if len(c.Categories) > 0 {
		parts = append(parts, strings.Join(c.Categories, ", "))
	}
	parts = append(parts, string(c.Difficulty), string(c.Pattern), c.MuscleGroup)

	if len(c.PrimaryMuscles) > 0 {
		parts = append(parts, "primary: "+strings.Join(c.PrimaryMuscles, ", "))
	}
	if len(c.SecondaryMuscles) > 0 {
		parts = append(parts, "secondary: "+strings.Join(c.SecondaryMuscles, ", "))
	}

	if c.Compound {
		parts = append(parts, "compound")
	} else {
		parts = append(parts, "isolation")
	}
	if c.Bodyweight {
		parts = append(parts, "bodyweight")
	}
	if len(c.EquipmentRequired) > 0 {
		parts = append(parts, "equipment: "+strings.Join(c.EquipmentRequired, ", "))
	}

	return strings.Join(parts, " | ")
}
