package llm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsageTracker_RecordAndStage(t *testing.T) {
	tracker := NewUsageTracker()

	tracker.Record("profile_analyzer", TokenUsage{InputTokens: 100, OutputTokens: 50})
	tracker.Record("profile_analyzer", TokenUsage{InputTokens: 20, OutputTokens: 10})
	tracker.Record("plan_validator", TokenUsage{InputTokens: 5, OutputTokens: 5})

	profile := tracker.Stage("profile_analyzer")
	assert.Equal(t, 120, profile.Usage.InputTokens)
	assert.Equal(t, 60, profile.Usage.OutputTokens)
	assert.Equal(t, 2, profile.CallCount)

	unknown := tracker.Stage("never_ran")
	assert.Zero(t, unknown.CallCount)
	assert.Zero(t, unknown.Usage.Total())
}

func TestUsageTracker_BreakdownSorted(t *testing.T) {
	tracker := NewUsageTracker()
	tracker.Record("exercise_selector", TokenUsage{InputTokens: 1})
	tracker.Record("program_architect", TokenUsage{InputTokens: 1})
	tracker.Record("plan_validator", TokenUsage{InputTokens: 1})

	breakdown := tracker.Breakdown()
	assert.Equal(t, []string{"exercise_selector", "plan_validator", "program_architect"},
		[]string{breakdown[0].Stage, breakdown[1].Stage, breakdown[2].Stage})
}

func TestUsageTracker_Total(t *testing.T) {
	tracker := NewUsageTracker()
	tracker.Record("a", TokenUsage{InputTokens: 10, OutputTokens: 20})
	tracker.Record("b", TokenUsage{InputTokens: 1, OutputTokens: 2})

	total := tracker.Total()
	assert.Equal(t, 11, total.InputTokens)
	assert.Equal(t, 22, total.OutputTokens)
	assert.Equal(t, 33, total.Total())
}

func TestUsageTracker_ConcurrentRecord(t *testing.T) {
	tracker := NewUsageTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Record("exercise_selector", TokenUsage{InputTokens: 1, OutputTokens: 1})
		}()
	}
	wg.Wait()

	stage := tracker.Stage("exercise_selector")
	assert.Equal(t, 50, stage.CallCount)
	assert.Equal(t, 100, stage.Usage.Total())
}
