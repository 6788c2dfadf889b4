package program

import (
	"time"

	"github.com/repforge/repforge/internal/llm"
	"github.com/repforge/repforge/internal/types"
)

// OrchestrationResult is what a pipeline run hands back to its caller.
type OrchestrationResult struct {
	// ProgramID identifies the persisted program record.
	ProgramID types.ID `json:"program_id"`

	// Validation is the verdict on the final assignment, never an
	// intermediate one.
	Validation ValidationResult `json:"validation"`

	// UsageByStage breaks token consumption down per agent.
	UsageByStage []llm.StageUsage `json:"usage_by_stage"`

	// TotalUsage sums usage across all agent calls, including retried runs.
	TotalUsage llm.TokenUsage `json:"total_usage"`

	// Duration is total wall-clock time for the run.
	Duration time.Duration `json:"duration"`

	// PipelineRetries counts full pipeline restarts. Per-call transient
	// retries are invisible at this level.
	PipelineRetries int `json:"pipeline_retries"`
}
