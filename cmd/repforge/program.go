package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repforge/repforge/internal/store"
	"github.com/repforge/repforge/internal/types"
)

var programCmd = &cobra.Command{
	Use:   "program",
	Short: "Inspect generated programs",
}

var programShowCmd = &cobra.Command{
	Use:   "show <program-id>",
	Short: "Print a program's schedule",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgramShow,
}

func init() {
	programCmd.AddCommand(programShowCmd)
}

func runProgramShow(cmd *cobra.Command, args []string) error {
	id, err := types.ParseID(args[0])
	if err != nil {
		return fmt.Errorf("invalid program id: %w", err)
	}

	db, err := store.OpenWithConfig(cfg.Database.StoreConfig())
	if err != nil {
		return err
	}
	defer db.Close()

	dao := store.NewProgramDAO(db)
	record, err := dao.GetProgram(cmd.Context(), id)
	if err != nil {
		return err
	}
	rows, err := dao.ProgramRows(cmd.Context(), id)
	if err != nil {
		return err
	}

	cmd.Printf("%s (%d weeks, %s)\n", record.Name, record.DurationWeeks, record.SplitType)
	if record.Notes != "" {
		cmd.Printf("Notes: %s\n", record.Notes)
	}

	lastWeek, lastDay := -1, -1
	for _, row := range rows {
		if row.Week != lastWeek {
			cmd.Printf("\nWeek %d\n", row.Week)
			lastWeek, lastDay = row.Week, -1
		}
		if row.DayOfWeek != lastDay {
			cmd.Printf("  %s\n", row.DayLabel)
			lastDay = row.DayOfWeek
		}
		line := fmt.Sprintf("    %-30s %dx%s", row.ExerciseName, row.Sets, row.Reps)
		if row.RPE > 0 {
			line += fmt.Sprintf(" @RPE %.1f", row.RPE)
		}
		if row.RestSeconds > 0 {
			line += fmt.Sprintf(" rest %ds", row.RestSeconds)
		}
		cmd.Println(line)
	}
	return nil
}
