package program

import (
	"fmt"

	"github.com/repforge/repforge/internal/types"
)

// SlotAssignment binds one skeleton slot to a concrete catalog exercise.
type SlotAssignment struct {
	SlotID           string   `json:"slot_id"`
	ExerciseID       types.ID `json:"exercise_id"`
	ExerciseName     string   `json:"exercise_name"`
	SubstitutionNote string   `json:"substitution_note,omitempty"`
}

// ExerciseAssignment maps every skeleton slot to a chosen exercise, plus
// run-level substitution rationale notes.
type ExerciseAssignment struct {
	Assignments []SlotAssignment `json:"assignments"`
	Notes       []string         `json:"notes,omitempty"`
}

// BySlot indexes the assignments by slot identifier.
func (a ExerciseAssignment) BySlot() map[string]SlotAssignment {
	out := make(map[string]SlotAssignment, len(a.Assignments))
	for _, sa := range a.Assignments {
		out[sa.SlotID] = sa
	}
	return out
}

// Merge combines assignments from per-session selector calls into one.
func Merge(parts ...ExerciseAssignment) ExerciseAssignment {
	var merged ExerciseAssignment
	for _, part := range parts {
		merged.Assignments = append(merged.Assignments, part.Assignments...)
		merged.Notes = append(merged.Notes, part.Notes...)
	}
	return merged
}

// CheckAgainst verifies that every assignment references a slot present in
// the skeleton. An assignment naming an unknown slot must be rejected
// before persistence.
func (a ExerciseAssignment) CheckAgainst(skeleton ProgramSkeleton) error {
	known := skeleton.SlotIDs()
	for _, sa := range a.Assignments {
		if !known[sa.SlotID] {
			return types.NewError(types.ASSIGNMENT_SLOT_MISS,
				fmt.Sprintf("assignment references unknown slot %q", sa.SlotID))
		}
	}
	return nil
}
