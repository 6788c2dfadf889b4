// Package scoring deterministically ranks the compressed exercise catalog
// against a program skeleton's requirements and down-selects a bounded
// candidate set for the exercise selector. It is pure: the same skeleton,
// catalog, equipment and profile always yield the same ordered set.
package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/repforge/repforge/internal/catalog"
	"github.com/repforge/repforge/internal/program"
)

// Candidate set bounds. Below the floor, filtering is abandoned and the
// whole catalog is returned instead.
const (
	MinCandidates = 15
	MaxCandidates = 40
)

// Score component weights, out of 100.
const (
	patternExactPoints    = 40
	patternRelatedPoints  = 20
	muscleOverlapPoints   = 30
	equipmentPoints       = 20
	difficultyExactPoints = 10
	difficultyNearPoints  = 5
	roleBonusPoints       = 5
)

// relatedPatterns is the fixed adjacency table of movement patterns that
// partially substitute for one another.
var relatedPatterns = map[program.MovementPattern][]program.MovementPattern{
	program.PatternSquat:     {program.PatternLunge, program.PatternIsometric},
	program.PatternHinge:     {program.PatternPull, program.PatternIsometric},
	program.PatternLunge:     {program.PatternSquat},
	program.PatternPush:      {program.PatternIsometric},
	program.PatternPull:      {program.PatternHinge},
	program.PatternCarry:     {program.PatternIsometric},
	program.PatternRotation:  {program.PatternIsometric},
	program.PatternIsometric: {program.PatternCarry, program.PatternRotation},
}

// SlotGroup is a deduplicated slot requirement: many slots across weeks
// share the same (pattern, target muscles) and score identically.
type SlotGroup struct {
	Pattern program.MovementPattern
	Muscles []string // lowercased, sorted
	Role    program.SlotRole
}

// Key returns the dedup key for a slot group.
func (g SlotGroup) Key() string {
	return string(g.Pattern) + "|" + strings.Join(g.Muscles, ",") + "|" + string(g.Role)
}

// GroupSlots collapses every slot in the skeleton into distinct slot groups.
func GroupSlots(skeleton program.ProgramSkeleton) []SlotGroup {
	seen := make(map[string]bool)
	var groups []SlotGroup

	for _, slot := range skeleton.AllSlots() {
		muscles := normalizeSet(slot.TargetMuscles)
		group := SlotGroup{
			Pattern: slot.Pattern,
			Muscles: muscles,
			Role:    slot.Role,
		}
		if key := group.Key(); !seen[key] {
			seen[key] = true
			groups = append(groups, group)
		}
	}

	return groups
}

// TargetDifficulty resolves the training-age category to the catalog's
// difficulty scale: novice maps to beginner, elite to advanced, the rest
// pass through.
func TargetDifficulty(age program.TrainingAge) catalog.Difficulty {
	switch age {
	case program.TrainingAgeNovice:
		return catalog.DifficultyBeginner
	case program.TrainingAgeElite:
		return catalog.DifficultyAdvanced
	case program.TrainingAgeAdvanced:
		return catalog.DifficultyAdvanced
	default:
		return catalog.DifficultyIntermediate
	}
}

// ScoreAgainstGroup computes the fitness of one exercise for one slot
// group, out of 100.
func ScoreAgainstGroup(ex catalog.Compressed, group SlotGroup, equipment []string, target catalog.Difficulty) int {
	score := 0

	// Movement pattern: exact match or adjacency-table relation.
	if ex.Pattern == group.Pattern {
		score += patternExactPoints
	} else if patternRelated(group.Pattern, ex.Pattern) {
		score += patternRelatedPoints
	}

	// Muscle overlap, scaled by Jaccard similarity.
	exMuscles := normalizeSet(append(append([]string{}, ex.PrimaryMuscles...), ex.SecondaryMuscles...))
	score += int(math.Round(Jaccard(exMuscles, group.Muscles) * muscleOverlapPoints))

	// Equipment availability.
	if equipmentAvailable(ex, equipment) {
		score += equipmentPoints
	}

	// Difficulty proximity on the ordered scale.
	exRank, targetRank := ex.Difficulty.Rank(), target.Rank()
	if exRank >= 0 && targetRank >= 0 {
		switch abs(exRank - targetRank) {
		case 0:
			score += difficultyExactPoints
		case 1:
			score += difficultyNearPoints
		}
	}

	// Role bonus: compound slots favor compound exercises, isolation
	// slots favor isolation exercises. At most one applies per group.
	if group.Role.IsCompound() && ex.Compound {
		score += roleBonusPoints
	} else if group.Role.IsIsolation() && !ex.Compound {
		score += roleBonusPoints
	}

	// The role bonus can push a perfect fit past the scale.
	if score > 100 {
		score = 100
	}
	return score
}

// ScoredExercise pairs an exercise with its best score across slot groups.
type ScoredExercise struct {
	Exercise catalog.Compressed
	Score    int
}

// SelectCandidates ranks the catalog against every slot group and returns
// the bounded candidate set, ordered descending by score. An exercise's
// score is its maximum across groups: fitting one requirement well is
// enough to qualify. When fewer than MinCandidates exercises exist,
// filtering is abandoned and the entire catalog is returned in input order.
func SelectCandidates(
	skeleton program.ProgramSkeleton,
	exercises []catalog.Compressed,
	equipment []string,
	profile program.ProfileAnalysis,
) []ScoredExercise {
	// Safety valve: a catalog under the floor is never filtered.
	if len(exercises) < MinCandidates {
		out := make([]ScoredExercise, len(exercises))
		for i, ex := range exercises {
			out[i] = ScoredExercise{Exercise: ex}
		}
		return out
	}

	groups := GroupSlots(skeleton)
	target := TargetDifficulty(profile.TrainingAge)

	scored := make([]ScoredExercise, len(exercises))
	for i, ex := range exercises {
		best := 0
		for _, group := range groups {
			if s := ScoreAgainstGroup(ex, group, equipment, target); s > best {
				best = s
			}
		}
		scored[i] = ScoredExercise{Exercise: ex, Score: best}
	}

	// Stable sort keeps catalog order among ties, which keeps the whole
	// selection deterministic.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	limit := MaxCandidates
	if len(scored) < limit {
		limit = len(scored)
	}
	return scored[:limit]
}

// Jaccard computes case-insensitive set intersection-over-union for two
// normalized string sets. Two empty sets score 0, not NaN.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := make(map[string]bool, len(a))
	for _, s := range a {
		setA[s] = true
	}

	intersection := 0
	union := len(setA)
	seenB := make(map[string]bool, len(b))
	for _, s := range b {
		if seenB[s] {
			continue
		}
		seenB[s] = true
		if setA[s] {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func patternRelated(slotPattern, exercisePattern program.MovementPattern) bool {
	for _, related := range relatedPatterns[slotPattern] {
		if related == exercisePattern {
			return true
		}
	}
	return false
}

// equipmentAvailable reports whether the athlete can perform the exercise:
// bodyweight movements always qualify, otherwise every required item must
// be present in the available set (case-insensitive).
func equipmentAvailable(ex catalog.Compressed, available []string) bool {
	if ex.Bodyweight || len(ex.EquipmentRequired) == 0 {
		return true
	}

	have := make(map[string]bool, len(available))
	for _, item := range available {
		have[strings.ToLower(strings.TrimSpace(item))] = true
	}

	for _, required := range ex.EquipmentRequired {
		if !have[strings.ToLower(strings.TrimSpace(required))] {
			return false
		}
	}
	return true
}

// normalizeSet lowercases, trims, dedups and sorts a string set.
func normalizeSet(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		normalized := strings.ToLower(strings.TrimSpace(item))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	sort.Strings(out)
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
