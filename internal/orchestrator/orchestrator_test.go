package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repforge/repforge/internal/agents"
	"github.com/repforge/repforge/internal/catalog"
	"github.com/repforge/repforge/internal/llm"
	"github.com/repforge/repforge/internal/llm/providers"
	"github.com/repforge/repforge/internal/program"
	"github.com/repforge/repforge/internal/schema"
	"github.com/repforge/repforge/internal/types"
)

// fakeCatalog implements CatalogReader over an in-memory slice.
type fakeCatalog struct {
	exercises      []catalog.Exercise
	equipment      []string
	equipmentCalls int
}

func (f *fakeCatalog) ActiveExercises(ctx context.Context) ([]catalog.Exercise, error) {
	return f.exercises, nil
}

func (f *fakeCatalog) AvailableEquipment(ctx context.Context, clientID types.ID) ([]string, error) {
	f.equipmentCalls++
	return f.equipment, nil
}

// fakeWriter implements ProgramWriter, capturing the write.
type fakeWriter struct {
	mu     sync.Mutex
	record ProgramRecord
	rows   []program.ExerciseRow
	writes int
	err    error
}

func (f *fakeWriter) CreateProgram(ctx context.Context, record ProgramRecord, rows []program.ExerciseRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.record = record
	f.rows = rows
	f.writes++
	return nil
}

func testExercises(n int) []catalog.Exercise {
	out := make([]catalog.Exercise, n)
	for i := range out {
		out[i] = catalog.Exercise{
			ID:             types.NewID(),
			Name:           fmt.Sprintf("Exercise %02d", i),
			Difficulty:     catalog.DifficultyIntermediate,
			Pattern:        program.PatternSquat,
			PrimaryMuscles: []string{"quads"},
			Bodyweight:     true,
			Compound:       true,
			Active:         true,
		}
	}
	return out
}

func testIntake(sessions int) program.IntakeRequest {
	return program.IntakeRequest{
		ClientID:        types.NewID(),
		Goals:           []string{"strength"},
		DurationWeeks:   1,
		SessionsPerWeek: sessions,
	}
}

const profileJSON = `{
	"split_type": "full body",
	"periodization": "linear",
	"volume_targets": [{"muscle_group": "quads", "weekly_sets": 12, "priority": "high"}],
	"constraints": [],
	"session_structure": {
		"warmup_minutes": 10, "main_work_minutes": 45, "cooldown_minutes": 5,
		"compound_exercises": 2, "isolation_exercises": 2
	},
	"training_age": "intermediate"
}`

func slotJSON(id string) string {
	return fmt.Sprintf(`{
		"id": "%s", "role": "primary_compound", "pattern": "squat",
		"target_muscles": ["quads"], "sets": 4, "reps": "5",
		"rest_seconds": 180, "technique": "straight_set"
	}`, id)
}

func skeletonJSON(days int) string {
	dayDocs := ""
	for d := 0; d < days; d++ {
		if d > 0 {
			dayDocs += ","
		}
		dayDocs += fmt.Sprintf(`{
			"day_of_week": %d, "label": "Day %d", "focus": "strength",
			"slots": [%s]
		}`, d, d+1, slotJSON(fmt.Sprintf("w1d%ds1", d+1)))
	}
	return fmt.Sprintf(`{
		"name": "Strength Block",
		"weeks": [{"number": 1, "phase": "accumulation", "intensity": 0.8, "days": [%s]}]
	}`, dayDocs)
}

func assignmentJSON(exerciseID types.ID, slotIDs ...string) string {
	docs := ""
	for i, slotID := range slotIDs {
		if i > 0 {
			docs += ","
		}
		docs += fmt.Sprintf(`{
			"slot_id": "%s", "exercise_id": "%s", "exercise_name": "Exercise 00"
		}`, slotID, exerciseID)
	}
	return fmt.Sprintf(`{"assignments": [%s]}`, docs)
}

func sessionJSON(exerciseID types.ID, week, dayOfWeek int, slotID string) string {
	return fmt.Sprintf(`{
		"week": %d, "day_of_week": %d,
		"assignments": [{
			"slot_id": "%s", "exercise_id": "%s", "exercise_name": "Exercise 00"
		}]
	}`, week, dayOfWeek, slotID, exerciseID)
}

const passJSON = `{"pass": true, "issues": [], "summary": "Well balanced."}`

const failJSON = `{
	"pass": false,
	"issues": [{"severity": "error", "category": "missing_coverage", "message": "no pull work"}],
	"summary": "Program lacks pulling."
}`

const warnJSON = `{
	"pass": false,
	"issues": [{"severity": "warning", "category": "volume_shortfall", "message": "calves light"}],
	"summary": "Minor volume gaps."
}`

func newTestOrchestrator(reader CatalogReader, writer ProgramWriter, responses []string, opts ...Option) (*Orchestrator, *providers.MockProvider) {
	provider := providers.NewMockProvider(responses)
	cfg := agents.Config{
		Client:       llm.NewClient(provider),
		Capabilities: schema.FullCapabilities(),
	}
	return New(cfg, reader, writer, opts...), provider
}

func TestGenerate_HappyPath(t *testing.T) {
	exercises := testExercises(3)
	reader := &fakeCatalog{exercises: exercises, equipment: []string{"barbell"}}
	writer := &fakeWriter{}

	orch, provider := newTestOrchestrator(reader, writer, []string{
		profileJSON,
		skeletonJSON(1),
		assignmentJSON(exercises[0].ID, "w1d1s1"),
		passJSON,
	})

	intake := testIntake(1)
	result, err := orch.Generate(context.Background(), intake, types.NewID())
	require.NoError(t, err)

	assert.False(t, result.ProgramID.IsZero())
	assert.True(t, result.Validation.Pass)
	assert.Zero(t, result.PipelineRetries)
	assert.Positive(t, result.TotalUsage.Total())
	assert.Len(t, provider.Calls(), 4)

	// One call per stage.
	stages := map[string]bool{}
	for _, su := range result.UsageByStage {
		stages[su.Stage] = true
	}
	for _, stage := range []string{agents.StageProfile, agents.StageArchitect, agents.StageSelector, agents.StageValidator} {
		assert.True(t, stages[stage], "missing usage for %s", stage)
	}

	require.Equal(t, 1, writer.writes)
	assert.Equal(t, intake.ClientID, writer.record.ClientID)
	assert.Equal(t, "Strength Block", writer.record.Name)
	assert.Equal(t, "full body", writer.record.SplitType)
	require.Len(t, writer.rows, 1)
	assert.Equal(t, "w1d1s1", writer.rows[0].SlotID)
	assert.Equal(t, exercises[0].ID, writer.rows[0].ExerciseID)
}

func TestGenerate_RetriesOnValidationFailure(t *testing.T) {
	exercises := testExercises(3)
	reader := &fakeCatalog{exercises: exercises}
	writer := &fakeWriter{}

	orch, provider := newTestOrchestrator(reader, writer, []string{
		profileJSON,
		skeletonJSON(1),
		assignmentJSON(exercises[0].ID, "w1d1s1"),
		failJSON,
		skeletonJSON(1),
		assignmentJSON(exercises[0].ID, "w1d1s1"),
		passJSON,
	})

	result, err := orch.Generate(context.Background(), testIntake(1), "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.PipelineRetries)
	assert.True(t, result.Validation.Pass)
	// Profile once, then architect/selector/validator twice.
	assert.Len(t, provider.Calls(), 7)
	assert.Equal(t, 1, writer.writes)
}

func TestGenerate_PersistsDespiteFailingValidation(t *testing.T) {
	exercises := testExercises(3)
	reader := &fakeCatalog{exercises: exercises}
	writer := &fakeWriter{}

	orch, provider := newTestOrchestrator(reader, writer, []string{
		profileJSON,
		skeletonJSON(1),
		assignmentJSON(exercises[0].ID, "w1d1s1"),
		failJSON,
		skeletonJSON(1),
		assignmentJSON(exercises[0].ID, "w1d1s1"),
		failJSON,
	})

	result, err := orch.Generate(context.Background(), testIntake(1), "")
	require.NoError(t, err)

	// The bounded retry is exhausted; the program persists with the
	// failing verdict attached.
	assert.Equal(t, 1, result.PipelineRetries)
	assert.False(t, result.Validation.Pass)
	assert.True(t, result.Validation.HasErrors())
	assert.Len(t, provider.Calls(), 7)
	assert.Equal(t, 1, writer.writes)
}

func TestGenerate_WarningsDoNotRetry(t *testing.T) {
	exercises := testExercises(3)
	reader := &fakeCatalog{exercises: exercises}
	writer := &fakeWriter{}

	orch, provider := newTestOrchestrator(reader, writer, []string{
		profileJSON,
		skeletonJSON(1),
		assignmentJSON(exercises[0].ID, "w1d1s1"),
		warnJSON,
	})

	result, err := orch.Generate(context.Background(), testIntake(1), "")
	require.NoError(t, err)

	assert.Zero(t, result.PipelineRetries)
	assert.False(t, result.Validation.Pass)
	assert.False(t, result.Validation.HasErrors())
	assert.Len(t, provider.Calls(), 4)
	assert.Equal(t, 1, writer.writes)
}

func TestGenerate_EmptyCatalog(t *testing.T) {
	orch, _ := newTestOrchestrator(&fakeCatalog{}, &fakeWriter{}, nil)

	_, err := orch.Generate(context.Background(), testIntake(1), "")
	require.Error(t, err)

	var forgeErr *types.ForgeError
	require.ErrorAs(t, err, &forgeErr)
	assert.Equal(t, types.CATALOG_EMPTY, forgeErr.Code)
}

func TestGenerate_InvalidIntake(t *testing.T) {
	orch, provider := newTestOrchestrator(&fakeCatalog{exercises: testExercises(1)}, &fakeWriter{}, nil)

	_, err := orch.Generate(context.Background(), program.IntakeRequest{}, "")
	require.Error(t, err)

	var forgeErr *types.ForgeError
	require.ErrorAs(t, err, &forgeErr)
	assert.Equal(t, types.INTAKE_INVALID, forgeErr.Code)
	assert.Empty(t, provider.Calls())
}

func TestGenerate_PersistFailureIsFatal(t *testing.T) {
	exercises := testExercises(3)
	reader := &fakeCatalog{exercises: exercises}
	writer := &fakeWriter{err: errors.New("disk full")}

	orch, _ := newTestOrchestrator(reader, writer, []string{
		profileJSON,
		skeletonJSON(1),
		assignmentJSON(exercises[0].ID, "w1d1s1"),
		passJSON,
	})

	_, err := orch.Generate(context.Background(), testIntake(1), "")
	require.Error(t, err)

	var forgeErr *types.ForgeError
	require.ErrorAs(t, err, &forgeErr)
	assert.Equal(t, types.PIPELINE_PERSIST_FAILED, forgeErr.Code)
}

func TestGenerate_EquipmentOverrideSkipsLookup(t *testing.T) {
	exercises := testExercises(3)
	reader := &fakeCatalog{exercises: exercises, equipment: []string{"machine"}}
	writer := &fakeWriter{}

	orch, _ := newTestOrchestrator(reader, writer, []string{
		profileJSON,
		skeletonJSON(1),
		assignmentJSON(exercises[0].ID, "w1d1s1"),
		passJSON,
	})

	intake := testIntake(1)
	intake.EquipmentOverride = []string{"barbell", "rack"}

	_, err := orch.Generate(context.Background(), intake, "")
	require.NoError(t, err)
	assert.Zero(t, reader.equipmentCalls)
}

func TestGenerate_PerSessionFanOut(t *testing.T) {
	exercises := testExercises(3)
	reader := &fakeCatalog{exercises: exercises}
	writer := &fakeWriter{}

	// A one-token budget forces the per-session path. Concurrency of one
	// keeps the mock's response order aligned with submission order.
	orch, provider := newTestOrchestrator(reader, writer, []string{
		profileJSON,
		skeletonJSON(2),
		sessionJSON(exercises[0].ID, 1, 0, "w1d1s1"),
		sessionJSON(exercises[0].ID, 1, 1, "w1d2s1"),
		passJSON,
	},
		WithContextTokens(1),
		WithSessionConcurrency(1),
	)

	result, err := orch.Generate(context.Background(), testIntake(2), "")
	require.NoError(t, err)

	assert.True(t, result.Validation.Pass)
	assert.Len(t, provider.Calls(), 5)

	// Merged rows come back in program order regardless of session split.
	require.Len(t, writer.rows, 2)
	assert.Equal(t, "w1d1s1", writer.rows[0].SlotID)
	assert.Equal(t, "w1d2s1", writer.rows[1].SlotID)
}
