package program

// TrainingAge categorizes how long an athlete has trained seriously.
type TrainingAge string

const (
	TrainingAgeNovice       TrainingAge = "novice"
	TrainingAgeIntermediate TrainingAge = "intermediate"
	TrainingAgeAdvanced     TrainingAge = "advanced"
	TrainingAgeElite        TrainingAge = "elite"
)

// IsValid checks if the training age is a known value
func (t TrainingAge) IsValid() bool {
	switch t {
	case TrainingAgeNovice, TrainingAgeIntermediate, TrainingAgeAdvanced, TrainingAgeElite:
		return true
	default:
		return false
	}
}

// Priority tags how important a volume target is.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid checks if the priority is a known value
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ConstraintType classifies an exercise constraint from the profile analysis.
type ConstraintType string

const (
	ConstraintAvoidMovement     ConstraintType = "avoid_movement"
	ConstraintAvoidEquipment    ConstraintType = "avoid_equipment"
	ConstraintAvoidMuscle       ConstraintType = "avoid_muscle"
	ConstraintLimitLoad         ConstraintType = "limit_load"
	ConstraintRequireUnilateral ConstraintType = "require_unilateral"
)

// IsValid checks if the constraint type is a known value
func (c ConstraintType) IsValid() bool {
	switch c {
	case ConstraintAvoidMovement, ConstraintAvoidEquipment, ConstraintAvoidMuscle,
		ConstraintLimitLoad, ConstraintRequireUnilateral:
		return true
	default:
		return false
	}
}

// VolumeTarget is a weekly per-muscle-group set target.
type VolumeTarget struct {
	MuscleGroup string   `json:"muscle_group"`
	WeeklySets  int      `json:"weekly_sets"`
	Priority    Priority `json:"priority"`
}

// ExerciseConstraint is a typed restriction on exercise selection.
type ExerciseConstraint struct {
	Type   ConstraintType `json:"type"`
	Target string         `json:"target"`
	Reason string         `json:"reason"`
}

// SessionStructure summarizes how a single session should be laid out.
type SessionStructure struct {
	WarmupMinutes      int `json:"warmup_minutes"`
	MainWorkMinutes    int `json:"main_work_minutes"`
	CooldownMinutes    int `json:"cooldown_minutes"`
	CompoundExercises  int `json:"compound_exercises"`
	IsolationExercises int `json:"isolation_exercises"`
}

// ProfileAnalysis is the output of the first pipeline stage: the coaching
// read on the intake request. Produced once per run and read-only afterward.
type ProfileAnalysis struct {
	SplitType        string               `json:"split_type"`
	Periodization    string               `json:"periodization"`
	VolumeTargets    []VolumeTarget       `json:"volume_targets"`
	Constraints      []ExerciseConstraint `json:"constraints"`
	SessionStructure SessionStructure     `json:"session_structure"`
	TrainingAge      TrainingAge          `json:"training_age"`
	Notes            string               `json:"notes,omitempty"`
}
