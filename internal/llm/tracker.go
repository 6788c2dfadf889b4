package llm

import (
	"sort"
	"sync"
)

// StageUsage is the accumulated token usage for one pipeline stage.
type StageUsage struct {
	Stage     string     `json:"stage"`
	Usage     TokenUsage `json:"usage"`
	CallCount int        `json:"call_count"`
}

// UsageTracker accumulates token usage per pipeline stage. It is safe for
// concurrent use: per-session selector calls record into it in parallel.
type UsageTracker struct {
	mu     sync.Mutex
	stages map[string]*StageUsage
}

// NewUsageTracker creates an empty UsageTracker.
func NewUsageTracker() *UsageTracker {
	return &UsageTracker{
		stages: make(map[string]*StageUsage),
	}
}

// Record adds usage for a stage.
func (t *UsageTracker) Record(stage string, usage TokenUsage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, ok := t.stages[stage]
	if !ok {
		record = &StageUsage{Stage: stage}
		t.stages[stage] = record
	}
	record.Usage.Add(usage)
	record.CallCount++
}

// Stage returns the accumulated usage for one stage. The zero value is
// returned for stages that never recorded.
func (t *UsageTracker) Stage(stage string) StageUsage {
	t.mu.Lock()
	defer t.mu.Unlock()

	if record, ok := t.stages[stage]; ok {
		return *record
	}
	return StageUsage{Stage: stage}
}

// Breakdown returns per-stage usage sorted by stage name.
func (t *UsageTracker) Breakdown() []StageUsage {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]StageUsage, 0, len(t.stages))
	for _, record := range t.stages {
		out = append(out, *record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stage < out[j].Stage })
	return out
}

// Total returns usage summed across all stages.
func (t *UsageTracker) Total() TokenUsage {
	t.mu.Lock()
	defer t.mu.Unlock()

	var total TokenUsage
	for _, record := range t.stages {
		total.Add(record.Usage)
	}
	return total
}
