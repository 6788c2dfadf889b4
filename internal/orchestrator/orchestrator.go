// Package orchestrator sequences the four generation agents and the
// deterministic scorer/filter into one pipeline run: analyze the intake,
// architect the skeleton, score and select exercises, validate, and hand
// the finished program to the persistence boundary. Validation failures
// with error-severity issues trigger one bounded retry from the
// architecture stage; the result is persisted regardless and the final
// verdict surfaced to the caller.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/repforge/repforge/internal/agents"
	"github.com/repforge/repforge/internal/catalog"
	"github.com/repforge/repforge/internal/llm"
	"github.com/repforge/repforge/internal/program"
	"github.com/repforge/repforge/internal/scoring"
	"github.com/repforge/repforge/internal/types"
)

// Orchestrator runs the program-generation pipeline. Construct one at
// process start and share it across requests; each Generate call is
// independent and holds its own per-run state.
type Orchestrator struct {
	profiler  *agents.ProfileAnalyzer
	architect *agents.ProgramArchitect
	selector  *agents.ExerciseSelector
	validator *agents.PlanValidator

	catalogReader CatalogReader
	programWriter ProgramWriter
	logger        *slog.Logger

	maxPlanRetries     int
	timeout            time.Duration
	contextTokens      int
	budgetFraction     float64
	sessionConcurrency int
}

// Option is a functional option for configuring the Orchestrator.
type Option func(*Orchestrator)

// WithMaxPlanRetries sets how many full pipeline restarts a failing
// validation may trigger. Default: 1.
func WithMaxPlanRetries(n int) Option {
	return func(o *Orchestrator) {
		if n >= 0 {
			o.maxPlanRetries = n
		}
	}
}

// WithTimeout sets the wall-clock bound for one Generate call.
// Default: 2 minutes.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithContextTokens sets the model context budget used when choosing
// whole-program versus per-session selection. Default: 100000.
func WithContextTokens(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.contextTokens = n
		}
	}
}

// WithSessionConcurrency bounds concurrent per-session selector calls.
// Default: 3.
func WithSessionConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.sessionConcurrency = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// New creates an Orchestrator around the four agents and the persistence
// boundary.
func New(cfg agents.Config, catalogReader CatalogReader, programWriter ProgramWriter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		profiler:           agents.NewProfileAnalyzer(cfg),
		architect:          agents.NewProgramArchitect(cfg),
		selector:           agents.NewExerciseSelector(cfg),
		validator:          agents.NewPlanValidator(cfg),
		catalogReader:      catalogReader,
		programWriter:      programWriter,
		logger:             slog.Default(),
		maxPlanRetries:     1,
		timeout:            2 * time.Minute,
		contextTokens:      100000,
		budgetFraction:     0.8,
		sessionConcurrency: 3,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// planAttempt is what one architecture-through-validation pass produces.
type planAttempt struct {
	skeleton   program.ProgramSkeleton
	assignment program.ExerciseAssignment
	validation program.ValidationResult
}

// Generate runs the full pipeline for one intake request and persists the
// result. The returned OrchestrationResult carries the final validation
// verdict even when it fails: after the bounded retry the best available
// program is persisted anyway and the caller decides what to do with a
// failing verdict.
func (o *Orchestrator) Generate(ctx context.Context, intake program.IntakeRequest, requestedBy types.ID) (*program.OrchestrationResult, error) {
	if err := intake.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	tracker := llm.NewUsageTracker()
	logger := o.logger.With("client_id", intake.ClientID)

	exercises, equipment, err := o.loadCatalog(ctx, intake)
	if err != nil {
		return nil, err
	}
	compressed := catalog.CompressAll(exercises)

	// Stage 1 runs once: profile problems are not what plan retries fix.
	profile, usage, err := o.profiler.Analyze(ctx, intake, equipment)
	tracker.Record(agents.StageProfile, usage)
	if err != nil {
		return nil, stageError(agents.StageProfile, err)
	}
	logger.Info("profile analysis complete",
		"split", profile.SplitType,
		"training_age", profile.TrainingAge,
	)

	// Stages 2-5 as an explicit finite-state loop: generate, validate,
	// and on a blocking validation failure restart once from the
	// architecture stage.
	var attempt *planAttempt
	retries := 0
	for pass := 0; ; pass++ {
		attempt, err = o.runPlanStages(ctx, intake, profile, compressed, equipment, tracker, logger)
		if err != nil {
			return nil, err
		}

		if attempt.validation.Pass || !attempt.validation.HasErrors() {
			break
		}
		if pass >= o.maxPlanRetries {
			logger.Warn("validation still failing after retries, persisting anyway",
				"retries", retries,
				"summary", attempt.validation.Summary,
			)
			break
		}

		retries++
		logger.Info("validation reported blocking errors, retrying plan stages",
			"attempt", pass+1,
			"summary", attempt.validation.Summary,
		)
	}

	programID, err := o.persist(ctx, intake, requestedBy, profile, attempt)
	if err != nil {
		return nil, err
	}

	result := &program.OrchestrationResult{
		ProgramID:       programID,
		Validation:      attempt.validation,
		UsageByStage:    tracker.Breakdown(),
		TotalUsage:      tracker.Total(),
		Duration:        time.Since(start),
		PipelineRetries: retries,
	}

	logger.Info("program generation complete",
		"program_id", programID,
		"pass", attempt.validation.Pass,
		"total_tokens", result.TotalUsage.Total(),
		"duration", result.Duration,
		"retries", retries,
	)

	return result, nil
}

// runPlanStages executes architect, scorer/filter, selector, and validator
// once.
func (o *Orchestrator) runPlanStages(
	ctx context.Context,
	intake program.IntakeRequest,
	profile program.ProfileAnalysis,
	compressed []catalog.Compressed,
	equipment []string,
	tracker *llm.UsageTracker,
	logger *slog.Logger,
) (*planAttempt, error) {
	skeleton, usage, err := o.architect.Design(ctx, intake, profile)
	tracker.Record(agents.StageArchitect, usage)
	if err != nil {
		return nil, stageError(agents.StageArchitect, err)
	}

	candidates := scoring.SelectCandidates(skeleton, compressed, equipment, profile)
	logger.Debug("candidate set selected",
		"candidates", len(candidates),
		"catalog", len(compressed),
	)

	assignment, err := o.selectExercises(ctx, skeleton, candidates, tracker, logger)
	if err != nil {
		return nil, stageError(agents.StageSelector, err)
	}

	validation, usage, err := o.validator.Validate(ctx, skeleton, assignment, profile)
	tracker.Record(agents.StageValidator, usage)
	if err != nil {
		return nil, stageError(agents.StageValidator, err)
	}

	return &planAttempt{
		skeleton:   skeleton,
		assignment: assignment,
		validation: validation,
	}, nil
}

// selectExercises chooses whole-program or per-session selection based on
// a pre-flight token estimate, then runs the selector.
func (o *Orchestrator) selectExercises(
	ctx context.Context,
	skeleton program.ProgramSkeleton,
	candidates []scoring.ScoredExercise,
	tracker *llm.UsageTracker,
	logger *slog.Logger,
) (program.ExerciseAssignment, error) {
	budget := int(float64(o.contextTokens) * o.budgetFraction)
	check := llm.CheckBudget(o.selector.SystemPrompt(), o.selector.WholeProgramPrompt(skeleton, candidates), budget)

	if check.Fits {
		assignment, usage, err := o.selector.SelectWholeProgram(ctx, skeleton, candidates)
		tracker.Record(agents.StageSelector, usage)
		return assignment, err
	}

	logger.Info("skeleton too large for one selection call, splitting per session",
		"estimated_tokens", check.EstimatedTokens,
		"budget", budget,
		"overage", check.Overage,
	)

	// Per-session calls are independent; fan out with bounded concurrency
	// and join before validation.
	type sessionKey struct{ week, day int }
	parts := make(map[sessionKey]program.ExerciseAssignment)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.sessionConcurrency)

	for wi, week := range skeleton.Weeks {
		for di, day := range week.Days {
			week, day := week, day
			key := sessionKey{wi, di}
			g.Go(func() error {
				assignment, usage, err := o.selector.SelectSession(gctx, week, day, candidates)
				tracker.Record(agents.StageSelector, usage)
				if err != nil {
					return err
				}
				mu.Lock()
				parts[key] = assignment
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return program.ExerciseAssignment{}, err
	}

	// Merge in program order so the result is deterministic.
	ordered := make([]program.ExerciseAssignment, 0, len(parts))
	for wi, week := range skeleton.Weeks {
		for di := range week.Days {
			ordered = append(ordered, parts[sessionKey{wi, di}])
		}
	}
	return program.Merge(ordered...), nil
}

// persist flattens the final plan and writes it atomically. Persistence
// failure is fatal for the whole generation request.
func (o *Orchestrator) persist(
	ctx context.Context,
	intake program.IntakeRequest,
	requestedBy types.ID,
	profile program.ProfileAnalysis,
	attempt *planAttempt,
) (types.ID, error) {
	rows, err := program.Flatten(attempt.skeleton, attempt.assignment)
	if err != nil {
		return "", err
	}

	record := ProgramRecord{
		ID:            types.NewID(),
		ClientID:      intake.ClientID,
		RequestedBy:   requestedBy,
		Name:          attempt.skeleton.Name,
		DurationWeeks: intake.DurationWeeks,
		SplitType:     profile.SplitType,
		Periodization: profile.Periodization,
		Notes:         profile.Notes,
		CreatedAt:     time.Now().UTC(),
	}

	if err := o.programWriter.CreateProgram(ctx, record, rows); err != nil {
		return "", types.WrapError(types.PIPELINE_PERSIST_FAILED, "failed to persist program", err)
	}

	return record.ID, nil
}

func (o *Orchestrator) loadCatalog(ctx context.Context, intake program.IntakeRequest) ([]catalog.Exercise, []string, error) {
	exercises, err := o.catalogReader.ActiveExercises(ctx)
	if err != nil {
		return nil, nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to load exercise catalog", err)
	}
	if len(exercises) == 0 {
		return nil, nil, types.NewError(types.CATALOG_EMPTY, "exercise catalog has no active exercises")
	}

	equipment := intake.EquipmentOverride
	if len(equipment) == 0 {
		equipment, err = o.catalogReader.AvailableEquipment(ctx, intake.ClientID)
		if err != nil {
			return nil, nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to load athlete equipment", err)
		}
	}

	return exercises, equipment, nil
}

func stageError(stage string, err error) error {
	var forgeErr *types.ForgeError
	if errors.As(err, &forgeErr) && forgeErr.Code == types.PIPELINE_STAGE_FAILED {
		return err
	}
	return types.WrapError(types.PIPELINE_STAGE_FAILED, fmt.Sprintf("stage %s failed", stage), err)
}
