package program

import (
	"fmt"

	"github.com/repforge/repforge/internal/types"
)

// ExerciseRow is one concrete per-day exercise entry, the shape the
// persistence boundary stores as a program line item.
type ExerciseRow struct {
	Week         int       `json:"week"`
	DayOfWeek    int       `json:"day_of_week"`
	DayLabel     string    `json:"day_label"`
	Order        int       `json:"order"`
	SlotID       string    `json:"slot_id"`
	ExerciseID   types.ID  `json:"exercise_id"`
	ExerciseName string    `json:"exercise_name"`
	Role         SlotRole  `json:"role"`
	Sets         int       `json:"sets"`
	Reps         string    `json:"reps"`
	RestSeconds  int       `json:"rest_seconds"`
	RPE          float64   `json:"rpe,omitempty"`
	Tempo        string    `json:"tempo,omitempty"`
	GroupTag     string    `json:"group_tag,omitempty"`
	Technique    Technique `json:"technique"`
	Note         string    `json:"note,omitempty"`
}

// Flatten combines a skeleton and its assignment into concrete per-day
// exercise rows, in program order. Every slot must have an assignment and
// every assignment must reference a known slot.
func Flatten(skeleton ProgramSkeleton, assignment ExerciseAssignment) ([]ExerciseRow, error) {
	if err := assignment.CheckAgainst(skeleton); err != nil {
		return nil, err
	}

	bySlot := assignment.BySlot()
	var rows []ExerciseRow

	for _, week := range skeleton.Weeks {
		for _, day := range week.Days {
			for order, slot := range day.Slots {
				sa, ok := bySlot[slot.ID]
				if !ok {
					return nil, types.NewError(types.ASSIGNMENT_SLOT_MISS,
						fmt.Sprintf("slot %q has no exercise assigned", slot.ID))
				}
				rows = append(rows, ExerciseRow{
					Week:         week.Number,
					DayOfWeek:    day.DayOfWeek,
					DayLabel:     day.Label,
					Order:        order,
					SlotID:       slot.ID,
					ExerciseID:   sa.ExerciseID,
					ExerciseName: sa.ExerciseName,
					Role:         slot.Role,
					Sets:         slot.Sets,
					Reps:         slot.Reps,
					RestSeconds:  slot.RestSeconds,
					RPE:          slot.RPE,
					Tempo:        slot.Tempo,
					GroupTag:     slot.GroupTag,
					Technique:    slot.Technique,
					Note:         sa.SubstitutionNote,
				})
			}
		}
	}

	return rows, nil
}
