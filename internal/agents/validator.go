package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/repforge/repforge/internal/llm"
	"github.com/repforge/repforge/internal/program"
	"github.com/repforge/repforge/internal/types"
)

// PlanValidator audits the fully assembled program: skeleton plus
// assignments, judged against the profile analysis.
type PlanValidator struct {
	cfg Config
}

// NewPlanValidator creates the fourth-stage agent.
func NewPlanValidator(cfg Config) *PlanValidator {
	return &PlanValidator{cfg: cfg}
}

// Validate runs the validation stage over the final assignment.
func (a *PlanValidator) Validate(ctx context.Context, skeleton program.ProgramSkeleton, assignment program.ExerciseAssignment, profile program.ProfileAnalysis) (program.ValidationResult, llm.TokenUsage, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Profile analysis:\n%s\n", mustJSON(profile))
	fmt.Fprintf(&sb, "\nProgram skeleton:\n%s\n", mustJSON(skeleton))
	fmt.Fprintf(&sb, "\nExercise assignment:\n%s\n", mustJSON(assignment))
	sb.WriteString("\nAudit this program and report issues.\n")

	var result program.ValidationResult
	usage, err := call(ctx, a.cfg, StageValidator, validatorSystemPrompt, sb.String(),
		llm.TierFast, validationSchema(), &result)
	if err != nil {
		return program.ValidationResult{}, usage, err
	}

	for _, issue := range result.Issues {
		if !issue.Severity.IsValid() {
			return program.ValidationResult{}, usage, types.NewError(types.PIPELINE_STAGE_FAILED,
				fmt.Sprintf("validator returned unknown severity %q", issue.Severity))
		}
	}

	// A pass verdict alongside error issues is self-contradictory; trust
	// the issues.
	if result.Pass && result.HasErrors() {
		result.Pass = false
	}

	return result, usage, nil
}
