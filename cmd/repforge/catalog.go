package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/repforge/repforge/internal/catalog"
	"github.com/repforge/repforge/internal/program"
	"github.com/repforge/repforge/internal/store"
	"github.com/repforge/repforge/internal/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the exercise catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import exercises from a YAML file",
	Long: `Import upserts exercises from a YAML file containing a top-level
"exercises" list. Entries without an id are assigned one.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogImport,
}

var catalogEquipmentCmd = &cobra.Command{
	Use:   "equipment <client-id> [item...]",
	Short: "Replace a client's stored equipment list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogEquipment,
}

func init() {
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogEquipmentCmd)
}

type catalogFile struct {
	Exercises []exerciseEntry `yaml:"exercises"`
}

type exerciseEntry struct {
	ID                string   `yaml:"id"`
	Name              string   `yaml:"name"`
	Categories        []string `yaml:"categories"`
	Difficulty        string   `yaml:"difficulty"`
	MuscleGroup       string   `yaml:"muscle_group"`
	Pattern           string   `yaml:"pattern"`
	PrimaryMuscles    []string `yaml:"primary_muscles"`
	SecondaryMuscles  []string `yaml:"secondary_muscles"`
	ForceType         string   `yaml:"force_type"`
	Laterality        string   `yaml:"laterality"`
	EquipmentRequired []string `yaml:"equipment_required"`
	Bodyweight        bool     `yaml:"bodyweight"`
	Compound          bool     `yaml:"compound"`
	Active            *bool    `yaml:"active"`
	Description       string   `yaml:"description"`
	Instructions      []string `yaml:"instructions"`
	VideoURL          string   `yaml:"video_url"`
	ImageURL          string   `yaml:"image_url"`
}

func (e exerciseEntry) toExercise() (catalog.Exercise, error) {
	var id types.ID
	var err error
	if e.ID != "" {
		if id, err = types.ParseID(e.ID); err != nil {
			return catalog.Exercise{}, fmt.Errorf("exercise %q: %w", e.Name, err)
		}
	} else {
		id = types.NewID()
	}

	active := true
	if e.Active != nil {
		active = *e.Active
	}

	laterality := catalog.Laterality(e.Laterality)
	if e.Laterality == "" {
		laterality = catalog.LateralityBilateral
	}

	ex := catalog.Exercise{
		ID:                id,
		Name:              e.Name,
		Categories:        e.Categories,
		Difficulty:        catalog.Difficulty(e.Difficulty),
		MuscleGroup:       e.MuscleGroup,
		Pattern:           program.MovementPattern(e.Pattern),
		PrimaryMuscles:    e.PrimaryMuscles,
		SecondaryMuscles:  e.SecondaryMuscles,
		ForceType:         e.ForceType,
		Laterality:        laterality,
		EquipmentRequired: e.EquipmentRequired,
		Bodyweight:        e.Bodyweight,
		Compound:          e.Compound,
		Active:            active,
		Description:       e.Description,
		Instructions:      e.Instructions,
		VideoURL:          e.VideoURL,
		ImageURL:          e.ImageURL,
	}
	if !ex.Difficulty.IsValid() {
		return catalog.Exercise{}, fmt.Errorf("exercise %q: unknown difficulty %q", e.Name, e.Difficulty)
	}
	return ex, nil
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(file.Exercises) == 0 {
		return fmt.Errorf("catalog file contains no exercises")
	}

	db, err := store.OpenWithConfig(cfg.Database.StoreConfig())
	if err != nil {
		return err
	}
	defer db.Close()

	dao := store.NewCatalogDAO(db)
	for _, entry := range file.Exercises {
		ex, err := entry.toExercise()
		if err != nil {
			return err
		}
		if err := dao.Upsert(cmd.Context(), ex); err != nil {
			return err
		}
	}

	cmd.Printf("Imported %d exercises\n", len(file.Exercises))
	return nil
}

func runCatalogEquipment(cmd *cobra.Command, args []string) error {
	clientID, err := types.ParseID(args[0])
	if err != nil {
		return fmt.Errorf("invalid client id: %w", err)
	}

	db, err := store.OpenWithConfig(cfg.Database.StoreConfig())
	if err != nil {
		return err
	}
	defer db.Close()

	dao := store.NewCatalogDAO(db)
	if err := dao.SetEquipment(cmd.Context(), clientID, args[1:]); err != nil {
		return err
	}

	cmd.Printf("Stored %d equipment items for client %s\n", len(args[1:]), clientID)
	return nil
}
