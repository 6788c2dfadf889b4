package orchestrator

import (
	"context"
	"time"

	"github.com/repforge/repforge/internal/catalog"
	"github.com/repforge/repforge/internal/program"
	"github.com/repforge/repforge/internal/types"
)

// CatalogReader is the inbound view of the exercise catalog and the
// athlete's equipment. Implementations live at the persistence boundary.
type CatalogReader interface {
	// ActiveExercises returns every active catalog exercise.
	ActiveExercises(ctx context.Context) ([]catalog.Exercise, error)

	// AvailableEquipment returns the athlete's stored equipment list.
	AvailableEquipment(ctx context.Context, clientID types.ID) ([]string, error)
}

// ProgramRecord is the program-level row handed to the persistence boundary.
type ProgramRecord struct {
	ID            types.ID
	ClientID      types.ID
	RequestedBy   types.ID
	Name          string
	DurationWeeks int
	SplitType     string
	Periodization string
	Notes         string
	CreatedAt     time.Time
}

// ProgramWriter persists a finished program and its exercise line items.
// The write must be atomic: a half-written program must never be left
// active.
type ProgramWriter interface {
	CreateProgram(ctx context.Context, record ProgramRecord, rows []program.ExerciseRow) error
}
