package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/repforge/repforge/internal/orchestrator"
	"github.com/repforge/repforge/internal/program"
	"github.com/repforge/repforge/internal/types"
)

// ProgramDAO provides database access for generated programs and their
// exercise line items.
type ProgramDAO struct {
	db *DB
}

var (
	_ orchestrator.ProgramWriter = (*ProgramDAO)(nil)
	_ orchestrator.CatalogReader = (*CatalogDAO)(nil)
)

// NewProgramDAO creates a new ProgramDAO instance.
func NewProgramDAO(db *DB) *ProgramDAO {
	return &ProgramDAO{db: db}
}

// CreateProgram writes a program header and all of its exercise rows in a
// single transaction. On any failure the transaction rolls back, so a
// half-written program is never visible.
func (dao *ProgramDAO) CreateProgram(ctx context.Context, record orchestrator.ProgramRecord, rows []program.ExerciseRow) error {
	if record.ID.IsZero() {
		return types.NewError(types.STORE_WRITE_FAILED, "program id is required")
	}
	if len(rows) == 0 {
		return types.NewError(types.STORE_WRITE_FAILED, "program has no exercise rows")
	}

	tx, err := dao.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return types.WrapError(types.STORE_TX_FAILED, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO programs (
			id, client_id, requested_by, name, duration_weeks,
			split_type, periodization, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.ID.String(),
		record.ClientID.String(),
		record.RequestedBy.String(),
		record.Name,
		record.DurationWeeks,
		record.SplitType,
		record.Periodization,
		record.Notes,
		record.CreatedAt,
	)
	if err != nil {
		return types.WrapError(types.STORE_WRITE_FAILED, "failed to insert program", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO program_exercises (
			program_id, week, day_of_week, day_label, position, slot_id,
			exercise_id, exercise_name, role, sets, reps, rest_seconds,
			rpe, tempo, group_tag, technique, note
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return types.WrapError(types.STORE_WRITE_FAILED, "failed to prepare row insert", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err = stmt.ExecContext(ctx,
			record.ID.String(),
			row.Week,
			row.DayOfWeek,
			row.DayLabel,
			row.Order,
			row.SlotID,
			row.ExerciseID.String(),
			row.ExerciseName,
			string(row.Role),
			row.Sets,
			row.Reps,
			row.RestSeconds,
			row.RPE,
			row.Tempo,
			row.GroupTag,
			string(row.Technique),
			row.Note,
		)
		if err != nil {
			return types.WrapError(types.STORE_WRITE_FAILED,
				fmt.Sprintf("failed to insert exercise row for slot %s", row.SlotID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return types.WrapError(types.STORE_TX_FAILED, "failed to commit program", err)
	}
	return nil
}

// GetProgram loads a program header by ID.
func (dao *ProgramDAO) GetProgram(ctx context.Context, id types.ID) (orchestrator.ProgramRecord, error) {
	var (
		record                   orchestrator.ProgramRecord
		idStr, clientStr, reqStr string
	)

	err := dao.db.conn.QueryRowContext(ctx, `
		SELECT id, client_id, requested_by, name, duration_weeks,
			split_type, periodization, notes, created_at
		FROM programs WHERE id = ?
	`, id.String()).Scan(
		&idStr, &clientStr, &reqStr, &record.Name, &record.DurationWeeks,
		&record.SplitType, &record.Periodization, &record.Notes, &record.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return orchestrator.ProgramRecord{}, types.NewError(types.PROGRAM_NOT_FOUND,
			fmt.Sprintf("program %s not found", id))
	}
	if err != nil {
		return orchestrator.ProgramRecord{}, types.WrapError(types.STORE_QUERY_FAILED, "failed to load program", err)
	}

	if record.ID, err = types.ParseID(idStr); err != nil {
		return orchestrator.ProgramRecord{}, types.WrapError(types.STORE_QUERY_FAILED, "invalid program id", err)
	}
	if record.ClientID, err = types.ParseID(clientStr); err != nil {
		return orchestrator.ProgramRecord{}, types.WrapError(types.STORE_QUERY_FAILED, "invalid client id", err)
	}
	if reqStr != "" {
		if record.RequestedBy, err = types.ParseID(reqStr); err != nil {
			return orchestrator.ProgramRecord{}, types.WrapError(types.STORE_QUERY_FAILED, "invalid requester id", err)
		}
	}
	return record, nil
}

// ProgramRows loads a program's exercise rows in program order.
func (dao *ProgramDAO) ProgramRows(ctx context.Context, id types.ID) ([]program.ExerciseRow, error) {
	rows, err := dao.db.conn.QueryContext(ctx, `
		SELECT week, day_of_week, day_label, position, slot_id,
			exercise_id, exercise_name, role, sets, reps, rest_seconds,
			rpe, tempo, group_tag, technique, note
		FROM program_exercises
		WHERE program_id = ?
		ORDER BY week, day_of_week, position
	`, id.String())
	if err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to query program rows", err)
	}
	defer rows.Close()

	var out []program.ExerciseRow
	for rows.Next() {
		var (
			row                      program.ExerciseRow
			exIDStr, role, technique string
		)
		if err := rows.Scan(
			&row.Week, &row.DayOfWeek, &row.DayLabel, &row.Order, &row.SlotID,
			&exIDStr, &row.ExerciseName, &role, &row.Sets, &row.Reps, &row.RestSeconds,
			&row.RPE, &row.Tempo, &row.GroupTag, &technique, &row.Note,
		); err != nil {
			return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to scan program row", err)
		}
		if row.ExerciseID, err = types.ParseID(exIDStr); err != nil {
			return nil, types.WrapError(types.STORE_QUERY_FAILED, "invalid exercise id", err)
		}
		row.Role = program.SlotRole(role)
		row.Technique = program.Technique(technique)
		out = append(out, row)
	}
	return out, rows.Err()
}
