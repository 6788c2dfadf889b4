package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/repforge/repforge/internal/llm"
	"github.com/repforge/repforge/internal/program"
	"github.com/repforge/repforge/internal/types"
)

// ProfileAnalyzer derives a training profile from an intake request.
type ProfileAnalyzer struct {
	cfg Config
}

// NewProfileAnalyzer creates the first-stage agent.
func NewProfileAnalyzer(cfg Config) *ProfileAnalyzer {
	return &ProfileAnalyzer{cfg: cfg}
}

// Analyze runs the profile analysis stage.
func (a *ProfileAnalyzer) Analyze(ctx context.Context, intake program.IntakeRequest, equipment []string) (program.ProfileAnalysis, llm.TokenUsage, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Client intake:\n")
	fmt.Fprintf(&sb, "- Goals: %s\n", strings.Join(intake.Goals, "; "))
	fmt.Fprintf(&sb, "- Duration: %d weeks, %d sessions per week\n", intake.DurationWeeks, intake.SessionsPerWeek)
	if intake.SessionMinutes > 0 {
		fmt.Fprintf(&sb, "- Session length: %d minutes\n", intake.SessionMinutes)
	}
	if intake.SplitPreference != "" {
		fmt.Fprintf(&sb, "- Preferred split: %s\n", intake.SplitPreference)
	}
	if intake.PeriodizationPreference != "" {
		fmt.Fprintf(&sb, "- Preferred periodization: %s\n", intake.PeriodizationPreference)
	}
	if len(equipment) > 0 {
		fmt.Fprintf(&sb, "- Available equipment: %s\n", strings.Join(equipment, ", "))
	} else {
		sb.WriteString("- Available equipment: bodyweight only\n")
	}
	if intake.Instructions != "" {
		fmt.Fprintf(&sb, "- Instructions: %s\n", intake.Instructions)
	}

	var analysis program.ProfileAnalysis
	usage, err := call(ctx, a.cfg, StageProfile, profileSystemPrompt, sb.String(),
		llm.TierStandard, profileSchema(), &analysis)
	if err != nil {
		return program.ProfileAnalysis{}, usage, err
	}

	if !analysis.TrainingAge.IsValid() {
		return program.ProfileAnalysis{}, usage, types.NewError(types.PIPELINE_STAGE_FAILED,
			fmt.Sprintf("profile analysis returned unknown training age %q", analysis.TrainingAge))
	}
	if len(analysis.VolumeTargets) == 0 {
		return program.ProfileAnalysis{}, usage, types.NewError(types.PIPELINE_STAGE_FAILED,
			"profile analysis returned no volume targets")
	}

	return analysis, usage, nil
}
