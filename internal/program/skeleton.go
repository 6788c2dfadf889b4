package program

// SlotRole describes what a slot is for within a session.
type SlotRole string

const (
	RoleWarmup            SlotRole = "warm_up"
	RolePrimaryCompound   SlotRole = "primary_compound"
	RoleSecondaryCompound SlotRole = "secondary_compound"
	RoleAccessory         SlotRole = "accessory"
	RoleIsolation         SlotRole = "isolation"
	RoleCooldown          SlotRole = "cool_down"
)

// IsValid checks if the slot role is a known value
func (r SlotRole) IsValid() bool {
	switch r {
	case RoleWarmup, RolePrimaryCompound, RoleSecondaryCompound,
		RoleAccessory, RoleIsolation, RoleCooldown:
		return true
	default:
		return false
	}
}

// IsCompound reports whether the role calls for a compound exercise.
func (r SlotRole) IsCompound() bool {
	return r == RolePrimaryCompound || r == RoleSecondaryCompound
}

// IsIsolation reports whether the role calls for an isolation exercise.
func (r SlotRole) IsIsolation() bool {
	return r == RoleAccessory || r == RoleIsolation
}

// MovementPattern classifies the fundamental movement a slot requires.
type MovementPattern string

const (
	PatternSquat     MovementPattern = "squat"
	PatternHinge     MovementPattern = "hinge"
	PatternLunge     MovementPattern = "lunge"
	PatternPush      MovementPattern = "push"
	PatternPull      MovementPattern = "pull"
	PatternCarry     MovementPattern = "carry"
	PatternRotation  MovementPattern = "rotation"
	PatternIsometric MovementPattern = "isometric"
)

// IsValid checks if the movement pattern is a known value
func (p MovementPattern) IsValid() bool {
	switch p {
	case PatternSquat, PatternHinge, PatternLunge, PatternPush,
		PatternPull, PatternCarry, PatternRotation, PatternIsometric:
		return true
	default:
		return false
	}
}

// Technique describes how a slot's sets are executed.
type Technique string

const (
	TechniqueStraightSet Technique = "straight_set"
	TechniqueSuperset    Technique = "superset"
	TechniqueDropSet     Technique = "drop_set"
	TechniqueGiantSet    Technique = "giant_set"
	TechniqueCircuit     Technique = "circuit"
	TechniqueRestPause   Technique = "rest_pause"
	TechniqueAMRAP       Technique = "amrap"
)

// IsValid checks if the technique is a known value
func (t Technique) IsValid() bool {
	switch t {
	case TechniqueStraightSet, TechniqueSuperset, TechniqueDropSet,
		TechniqueGiantSet, TechniqueCircuit, TechniqueRestPause, TechniqueAMRAP:
		return true
	default:
		return false
	}
}

// Slot is the unit of planning: a placeholder for one exercise in one
// session, carrying everything but the concrete exercise choice.
type Slot struct {
	// ID is a stable identifier referenced by the exercise assignment.
	ID string `json:"id"`

	Role          SlotRole        `json:"role"`
	Pattern       MovementPattern `json:"pattern"`
	TargetMuscles []string        `json:"target_muscles"`
	Sets          int             `json:"sets"`
	Reps          string          `json:"reps"`
	RestSeconds   int             `json:"rest_seconds"`
	RPE           float64         `json:"rpe,omitempty"`
	Tempo         string          `json:"tempo,omitempty"`

	// GroupTag links slots sharing a superset or circuit.
	GroupTag string `json:"group_tag,omitempty"`

	Technique Technique `json:"technique"`
}

// Day is one training day within a week.
type Day struct {
	// DayOfWeek is a 0-based index, Monday first.
	DayOfWeek int    `json:"day_of_week"`
	Label     string `json:"label"`
	Focus     string `json:"focus"`
	Slots     []Slot `json:"slots"`
}

// Week is one week of the program with a phase label and intensity modifier.
type Week struct {
	Number    int     `json:"number"`
	Phase     string  `json:"phase"`
	Intensity float64 `json:"intensity"`
	Days      []Day   `json:"days"`
}

// ProgramSkeleton is the full week/day/slot structure of a program before
// exercise selection.
type ProgramSkeleton struct {
	Name  string `json:"name"`
	Weeks []Week `json:"weeks"`
}

// AllSlots returns every slot across every day of every week, in order.
func (s ProgramSkeleton) AllSlots() []Slot {
	var slots []Slot
	for _, week := range s.Weeks {
		for _, day := range week.Days {
			slots = append(slots, day.Slots...)
		}
	}
	return slots
}

// SlotIDs returns the set of every slot identifier in the skeleton.
func (s ProgramSkeleton) SlotIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, slot := range s.AllSlots() {
		ids[slot.ID] = true
	}
	return ids
}
