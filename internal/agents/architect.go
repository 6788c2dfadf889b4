package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/repforge/repforge/internal/llm"
	"github.com/repforge/repforge/internal/program"
	"github.com/repforge/repforge/internal/types"
)

// ProgramArchitect builds the week/day/slot skeleton from the intake and
// profile analysis.
type ProgramArchitect struct {
	cfg Config
}

// NewProgramArchitect creates the second-stage agent.
func NewProgramArchitect(cfg Config) *ProgramArchitect {
	return &ProgramArchitect{cfg: cfg}
}

// Design runs the architecture stage.
func (a *ProgramArchitect) Design(ctx context.Context, intake program.IntakeRequest, profile program.ProfileAnalysis) (program.ProgramSkeleton, llm.TokenUsage, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Build a %d-week skeleton with %d training days per week.\n\n",
		intake.DurationWeeks, intake.SessionsPerWeek)
	fmt.Fprintf(&sb, "Goals: %s\n", strings.Join(intake.Goals, "; "))
	if intake.Instructions != "" {
		fmt.Fprintf(&sb, "Client instructions: %s\n", intake.Instructions)
	}
	fmt.Fprintf(&sb, "\nProfile analysis:\n%s\n", mustJSON(profile))

	var skeleton program.ProgramSkeleton
	usage, err := call(ctx, a.cfg, StageArchitect, architectSystemPrompt, sb.String(),
		llm.TierStandard, skeletonSchema(), &skeleton)
	if err != nil {
		return program.ProgramSkeleton{}, usage, err
	}

	if err := checkSkeleton(skeleton, intake); err != nil {
		return program.ProgramSkeleton{}, usage, err
	}

	return skeleton, usage, nil
}

// checkSkeleton enforces the structural rules the output schema cannot
// express for restricted backends.
func checkSkeleton(s program.ProgramSkeleton, intake program.IntakeRequest) error {
	if len(s.Weeks) != intake.DurationWeeks {
		return types.NewError(types.PIPELINE_STAGE_FAILED,
			fmt.Sprintf("skeleton has %d weeks, intake asked for %d", len(s.Weeks), intake.DurationWeeks))
	}

	seen := make(map[string]bool)
	for _, week := range s.Weeks {
		if len(week.Days) != intake.SessionsPerWeek {
			return types.NewError(types.PIPELINE_STAGE_FAILED,
				fmt.Sprintf("week %d has %d days, intake asked for %d",
					week.Number, len(week.Days), intake.SessionsPerWeek))
		}
		for _, day := range week.Days {
			if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
				return types.NewError(types.PIPELINE_STAGE_FAILED,
					fmt.Sprintf("week %d has invalid day index %d", week.Number, day.DayOfWeek))
			}
			if len(day.Slots) == 0 {
				return types.NewError(types.PIPELINE_STAGE_FAILED,
					fmt.Sprintf("week %d day %d has no slots", week.Number, day.DayOfWeek))
			}
			for _, slot := range day.Slots {
				if slot.ID == "" || seen[slot.ID] {
					return types.NewError(types.PIPELINE_STAGE_FAILED,
						fmt.Sprintf("slot identifier %q is missing or duplicated", slot.ID))
				}
				seen[slot.ID] = true
				if !slot.Role.IsValid() || !slot.Pattern.IsValid() || !slot.Technique.IsValid() {
					return types.NewError(types.PIPELINE_STAGE_FAILED,
						fmt.Sprintf("slot %q carries an unknown role, pattern, or technique", slot.ID))
				}
				if slot.Sets < 1 || slot.Sets > 10 {
					return types.NewError(types.PIPELINE_STAGE_FAILED,
						fmt.Sprintf("slot %q prescribes %d sets", slot.ID, slot.Sets))
				}
				if slot.RPE != 0 && (slot.RPE < 5 || slot.RPE > 10) {
					return types.NewError(types.PIPELINE_STAGE_FAILED,
						fmt.Sprintf("slot %q prescribes RPE %.1f", slot.ID, slot.RPE))
				}
			}
		}
	}

	return nil
}
