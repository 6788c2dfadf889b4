package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/repforge/repforge/internal/llm"
	"github.com/repforge/repforge/internal/program"
	"github.com/repforge/repforge/internal/scoring"
	"github.com/repforge/repforge/internal/types"
)

// ExerciseSelector maps skeleton slots to concrete catalog exercises from
// the scored candidate set. It runs either over the whole program in one
// call or day by day when the skeleton is too large for one call's budget.
type ExerciseSelector struct {
	cfg Config
}

// NewExerciseSelector creates the third-stage agent.
func NewExerciseSelector(cfg Config) *ExerciseSelector {
	return &ExerciseSelector{cfg: cfg}
}

// SystemPrompt exposes the fixed prompt for pre-flight budget estimates.
func (a *ExerciseSelector) SystemPrompt() string {
	return selectorSystemPrompt
}

// WholeProgramPrompt builds the user message for a single whole-program
// selection call. The orchestrator sizes this against the token budget
// before choosing whole-program versus per-session invocation.
func (a *ExerciseSelector) WholeProgramPrompt(skeleton program.ProgramSkeleton, candidates []scoring.ScoredExercise) string {
	var sb strings.Builder
	sb.WriteString("Candidate exercises:\n")
	writeCandidates(&sb, candidates)
	fmt.Fprintf(&sb, "\nProgram skeleton:\n%s\n", mustJSON(skeleton))
	sb.WriteString("\nAssign an exercise to every slot in the skeleton.\n")
	return sb.String()
}

// SelectWholeProgram assigns exercises to every slot in one call.
func (a *ExerciseSelector) SelectWholeProgram(ctx context.Context, skeleton program.ProgramSkeleton, candidates []scoring.ScoredExercise) (program.ExerciseAssignment, llm.TokenUsage, error) {
	var assignment program.ExerciseAssignment
	usage, err := call(ctx, a.cfg, StageSelector, selectorSystemPrompt,
		a.WholeProgramPrompt(skeleton, candidates),
		llm.TierStandard, assignmentSchema(), &assignment)
	if err != nil {
		return program.ExerciseAssignment{}, usage, err
	}

	if err := checkAssignment(assignment, slotIDsOf(skeleton.AllSlots()), candidates); err != nil {
		return program.ExerciseAssignment{}, usage, err
	}

	return assignment, usage, nil
}

// sessionPlan is the per-day selector output: one day's assignments plus
// an echo of which week and day the model planned.
type sessionPlan struct {
	Week      int `json:"week"`
	DayOfWeek int `json:"day_of_week"`
	program.ExerciseAssignment
}

// SelectSession assigns exercises for a single day using the narrower
// session-plan schema. Per-session calls are independent and may run
// concurrently.
func (a *ExerciseSelector) SelectSession(ctx context.Context, week program.Week, day program.Day, candidates []scoring.ScoredExercise) (program.ExerciseAssignment, llm.TokenUsage, error) {
	var sb strings.Builder
	sb.WriteString("Candidate exercises:\n")
	writeCandidates(&sb, candidates)
	fmt.Fprintf(&sb, "\nWeek %d (%s phase), day %d (%s, focus: %s):\n%s\n",
		week.Number, week.Phase, day.DayOfWeek, day.Label, day.Focus, mustJSON(day.Slots))
	sb.WriteString("\nAssign an exercise to every slot listed, echoing the week and day you planned.\n")

	var plan sessionPlan
	usage, err := call(ctx, a.cfg, StageSelector, selectorSystemPrompt, sb.String(),
		llm.TierFast, sessionPlanSchema(), &plan)
	if err != nil {
		return program.ExerciseAssignment{}, usage, err
	}

	if plan.Week != week.Number || plan.DayOfWeek != day.DayOfWeek {
		return program.ExerciseAssignment{}, usage, types.NewError(types.PIPELINE_STAGE_FAILED,
			fmt.Sprintf("selector planned week %d day %d, wanted week %d day %d",
				plan.Week, plan.DayOfWeek, week.Number, day.DayOfWeek))
	}

	if err := checkAssignment(plan.ExerciseAssignment, slotIDsOf(day.Slots), candidates); err != nil {
		return program.ExerciseAssignment{}, usage, err
	}

	return plan.ExerciseAssignment, usage, nil
}

// checkAssignment verifies slot coverage and that every chosen exercise
// exists in the candidate set.
func checkAssignment(assignment program.ExerciseAssignment, slotIDs map[string]bool, candidates []scoring.ScoredExercise) error {
	known := make(map[types.ID]bool, len(candidates))
	for _, c := range candidates {
		known[c.Exercise.ID] = true
	}

	assigned := make(map[string]bool, len(assignment.Assignments))
	for _, sa := range assignment.Assignments {
		if !slotIDs[sa.SlotID] {
			return types.NewError(types.ASSIGNMENT_SLOT_MISS,
				fmt.Sprintf("selector assigned unknown slot %q", sa.SlotID))
		}
		if assigned[sa.SlotID] {
			return types.NewError(types.PIPELINE_STAGE_FAILED,
				fmt.Sprintf("selector assigned slot %q twice", sa.SlotID))
		}
		assigned[sa.SlotID] = true
		if !known[sa.ExerciseID] {
			return types.NewError(types.EXERCISE_NOT_FOUND,
				fmt.Sprintf("selector chose exercise %q outside the candidate set", sa.ExerciseID))
		}
	}

	for id := range slotIDs {
		if !assigned[id] {
			return types.NewError(types.PIPELINE_STAGE_FAILED,
				fmt.Sprintf("selector left slot %q unassigned", id))
		}
	}

	return nil
}

func writeCandidates(sb *strings.Builder, candidates []scoring.ScoredExercise) {
	for _, c := range candidates {
		fmt.Fprintf(sb, "- [%s] %s\n", c.Exercise.ID, c.Exercise.PromptLine())
	}
}

func slotIDsOf(slots []program.Slot) map[string]bool {
	ids := make(map[string]bool, len(slots))
	for _, slot := range slots {
		ids[slot.ID] = true
	}
	return ids
}
