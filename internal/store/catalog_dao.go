package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/repforge/repforge/internal/catalog"
	"github.com/repforge/repforge/internal/program"
	"github.com/repforge/repforge/internal/types"
)

// CatalogDAO provides database access for exercise catalog entries and
// per-client equipment lists.
type CatalogDAO struct {
	db *DB
}

// NewCatalogDAO creates a new CatalogDAO instance.
func NewCatalogDAO(db *DB) *CatalogDAO {
	return &CatalogDAO{db: db}
}

// Upsert inserts or replaces a catalog exercise.
func (dao *CatalogDAO) Upsert(ctx context.Context, ex catalog.Exercise) error {
	if ex.ID.IsZero() {
		return types.NewError(types.STORE_QUERY_FAILED, "exercise id is required")
	}
	if ex.Name == "" {
		return types.NewError(types.STORE_QUERY_FAILED, "exercise name is required")
	}

	categoriesJSON, err := json.Marshal(ex.Categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}
	primaryJSON, err := json.Marshal(ex.PrimaryMuscles)
	if err != nil {
		return fmt.Errorf("failed to marshal primary muscles: %w", err)
	}
	secondaryJSON, err := json.Marshal(ex.SecondaryMuscles)
	if err != nil {
		return fmt.Errorf("failed to marshal secondary muscles: %w", err)
	}
	equipmentJSON, err := json.Marshal(ex.EquipmentRequired)
	if err != nil {
		return fmt.Errorf("failed to marshal equipment: %w", err)
	}
	instructionsJSON, err := json.Marshal(ex.Instructions)
	if err != nil {
		return fmt.Errorf("failed to marshal instructions: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO exercises (
			id, name, categories, difficulty, muscle_group, pattern,
			primary_muscles, secondary_muscles, force_type, laterality,
			equipment_required, bodyweight, compound, active,
			description, instructions, video_url, image_url
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = dao.db.conn.ExecContext(ctx, query,
		ex.ID.String(),
		ex.Name,
		string(categoriesJSON),
		string(ex.Difficulty),
		ex.MuscleGroup,
		string(ex.Pattern),
		string(primaryJSON),
		string(secondaryJSON),
		ex.ForceType,
		string(ex.Laterality),
		string(equipmentJSON),
		boolToInt(ex.Bodyweight),
		boolToInt(ex.Compound),
		boolToInt(ex.Active),
		ex.Description,
		string(instructionsJSON),
		ex.VideoURL,
		ex.ImageURL,
	)
	if err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "failed to upsert exercise", err)
	}
	return nil
}

// ActiveExercises returns every active catalog exercise, ordered by name.
func (dao *CatalogDAO) ActiveExercises(ctx context.Context) ([]catalog.Exercise, error) {
	query := `
		SELECT id, name, categories, difficulty, muscle_group, pattern,
			primary_muscles, secondary_muscles, force_type, laterality,
			equipment_required, bodyweight, compound, active,
			description, instructions, video_url, image_url
		FROM exercises
		WHERE active = 1
		ORDER BY name
	`

	rows, err := dao.db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to query exercises", err)
	}
	defer rows.Close()

	var exercises []catalog.Exercise
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "exercise row iteration failed", err)
	}
	return exercises, nil
}

// Get returns a single exercise by ID.
func (dao *CatalogDAO) Get(ctx context.Context, id types.ID) (catalog.Exercise, error) {
	query := `
		SELECT id, name, categories, difficulty, muscle_group, pattern,
			primary_muscles, secondary_muscles, force_type, laterality,
			equipment_required, bodyweight, compound, active,
			description, instructions, video_url, image_url
		FROM exercises
		WHERE id = ?
	`

	row := dao.db.conn.QueryRowContext(ctx, query, id.String())
	ex, err := scanExercise(row)
	if err == sql.ErrNoRows {
		return catalog.Exercise{}, types.NewError(types.EXERCISE_NOT_FOUND,
			fmt.Sprintf("exercise %s not found", id))
	}
	return ex, err
}

// AvailableEquipment returns the stored equipment list for a client,
// ordered alphabetically. An empty list is not an error.
func (dao *CatalogDAO) AvailableEquipment(ctx context.Context, clientID types.ID) ([]string, error) {
	query := `SELECT equipment FROM client_equipment WHERE client_id = ? ORDER BY equipment`

	rows, err := dao.db.conn.QueryContext(ctx, query, clientID.String())
	if err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to query equipment", err)
	}
	defer rows.Close()

	var equipment []string
	for rows.Next() {
		var item string
		if err := rows.Scan(&item); err != nil {
			return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to scan equipment", err)
		}
		equipment = append(equipment, item)
	}
	return equipment, rows.Err()
}

// SetEquipment replaces a client's equipment list in one transaction.
func (dao *CatalogDAO) SetEquipment(ctx context.Context, clientID types.ID, equipment []string) error {
	tx, err := dao.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM client_equipment WHERE client_id = ?`, clientID.String()); err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "failed to clear equipment", err)
	}
	for _, item := range equipment {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO client_equipment (client_id, equipment) VALUES (?, ?)`,
			clientID.String(), item); err != nil {
			return types.WrapError(types.STORE_QUERY_FAILED, "failed to insert equipment", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "failed to commit equipment", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanExercise(row scanner) (catalog.Exercise, error) {
	var (
		ex                           catalog.Exercise
		idStr, difficulty, pattern   string
		laterality                   string
		categoriesJSON, primaryJSON  string
		secondaryJSON, equipmentJSON string
		instructionsJSON             string
		bodyweight, compound, active int
	)

	err := row.Scan(
		&idStr, &ex.Name, &categoriesJSON, &difficulty, &ex.MuscleGroup, &pattern,
		&primaryJSON, &secondaryJSON, &ex.ForceType, &laterality,
		&equipmentJSON, &bodyweight, &compound, &active,
		&ex.Description, &instructionsJSON, &ex.VideoURL, &ex.ImageURL,
	)
	if err == sql.ErrNoRows {
		return catalog.Exercise{}, err
	}
	if err != nil {
		return catalog.Exercise{}, types.WrapError(types.STORE_QUERY_FAILED, "failed to scan exercise", err)
	}

	id, err := types.ParseID(idStr)
	if err != nil {
		return catalog.Exercise{}, types.WrapError(types.STORE_QUERY_FAILED, "invalid exercise id", err)
	}
	ex.ID = id
	ex.Difficulty = catalog.Difficulty(difficulty)
	ex.Pattern = program.MovementPattern(pattern)
	ex.Laterality = catalog.Laterality(laterality)
	ex.Bodyweight = bodyweight != 0
	ex.Compound = compound != 0
	ex.Active = active != 0

	jsonColumns := []struct {
		raw string
		dst *[]string
	}{
		{categoriesJSON, &ex.Categories},
		{primaryJSON, &ex.PrimaryMuscles},
		{secondaryJSON, &ex.SecondaryMuscles},
		{equipmentJSON, &ex.EquipmentRequired},
		{instructionsJSON, &ex.Instructions},
	}
	for _, col := range jsonColumns {
		if col.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(col.raw), col.dst); err != nil {
			return catalog.Exercise{}, types.WrapError(types.STORE_QUERY_FAILED, "invalid JSON column", err)
		}
	}

	return ex, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
