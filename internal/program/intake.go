// Package program defines the data model for generated training programs:
// the client intake request, the profile analysis, the week/day/slot
// skeleton, the exercise assignment, and the validation and orchestration
// results that wrap a pipeline run.
package program

import (
	"fmt"

	"github.com/repforge/repforge/internal/types"
)

// IntakeRequest is the immutable input to the generation pipeline.
type IntakeRequest struct {
	// ClientID identifies the athlete the program is for.
	ClientID types.ID `json:"client_id" yaml:"client_id"`

	// Goals lists the training goals, most important first.
	Goals []string `json:"goals" yaml:"goals"`

	// DurationWeeks is the program length.
	DurationWeeks int `json:"duration_weeks" yaml:"duration_weeks"`

	// SessionsPerWeek is the number of training days per week.
	SessionsPerWeek int `json:"sessions_per_week" yaml:"sessions_per_week"`

	// SessionMinutes is the optional target session length.
	SessionMinutes int `json:"session_minutes,omitempty" yaml:"session_minutes"`

	// SplitPreference is an optional requested split (e.g. "upper/lower").
	SplitPreference string `json:"split_preference,omitempty" yaml:"split_preference"`

	// PeriodizationPreference is an optional requested periodization scheme.
	PeriodizationPreference string `json:"periodization_preference,omitempty" yaml:"periodization_preference"`

	// Instructions carries free-text coach or client notes.
	Instructions string `json:"instructions,omitempty" yaml:"instructions"`

	// EquipmentOverride replaces the athlete's stored equipment list when set.
	EquipmentOverride []string `json:"equipment_override,omitempty" yaml:"equipment_override"`
}

// Validate checks the intake request for structural problems.
func (r IntakeRequest) Validate() error {
	if r.ClientID.IsZero() {
		return types.NewError(types.INTAKE_INVALID, "client_id is required")
	}
	if len(r.Goals) == 0 {
		return types.NewError(types.INTAKE_INVALID, "at least one goal is required")
	}
	if r.DurationWeeks < 1 {
		return types.NewError(types.INTAKE_INVALID,
			fmt.Sprintf("duration_weeks must be positive, got %d", r.DurationWeeks))
	}
	if r.SessionsPerWeek < 1 || r.SessionsPerWeek > 7 {
		return types.NewError(types.INTAKE_INVALID,
			fmt.Sprintf("sessions_per_week must be between 1 and 7, got %d", r.SessionsPerWeek))
	}
	return nil
}
