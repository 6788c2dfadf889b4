package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repforge/repforge/internal/catalog"
	"github.com/repforge/repforge/internal/program"
	"github.com/repforge/repforge/internal/types"
)

func testSkeleton(slots ...program.Slot) program.ProgramSkeleton {
	return program.ProgramSkeleton{
		Name: "Test Block",
		Weeks: []program.Week{
			{
				Number: 1,
				Days: []program.Day{
					{DayOfWeek: 0, Label: "Day 1", Slots: slots},
				},
			},
		},
	}
}

func squatSlot(id string) program.Slot {
	return program.Slot{
		ID:            id,
		Role:          program.RolePrimaryCompound,
		Pattern:       program.PatternSquat,
		TargetMuscles: []string{"quads", "glutes"},
		Sets:          4,
		Reps:          "5",
	}
}

func testExercise(name string, pattern program.MovementPattern, primary []string) catalog.Compressed {
	return catalog.Compressed{
		ID:             types.NewID(),
		Name:           name,
		Difficulty:     catalog.DifficultyIntermediate,
		Pattern:        pattern,
		PrimaryMuscles: primary,
		Bodyweight:     true,
		Compound:       true,
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 0},
		{"one empty", []string{"quads"}, nil, 0},
		{"identical", []string{"quads", "glutes"}, []string{"quads", "glutes"}, 1},
		{"disjoint", []string{"quads"}, []string{"lats"}, 0},
		{"partial", []string{"quads", "glutes"}, []string{"glutes", "hamstrings"}, 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Jaccard(tt.a, tt.b), 1e-9)
		})
	}
}

func TestScoreAgainstGroup_PatternMatch(t *testing.T) {
	group := SlotGroup{
		Pattern: program.PatternSquat,
		Muscles: []string{"glutes", "quads"},
		Role:    program.RolePrimaryCompound,
	}

	exact := testExercise("Back Squat", program.PatternSquat, []string{"quads", "glutes"})
	related := testExercise("Walking Lunge", program.PatternLunge, []string{"quads", "glutes"})
	unrelated := testExercise("Bench Press", program.PatternPush, []string{"chest"})

	exactScore := ScoreAgainstGroup(exact, group, nil, catalog.DifficultyIntermediate)
	relatedScore := ScoreAgainstGroup(related, group, nil, catalog.DifficultyIntermediate)
	unrelatedScore := ScoreAgainstGroup(unrelated, group, nil, catalog.DifficultyIntermediate)

	assert.Greater(t, exactScore, relatedScore)
	assert.Greater(t, relatedScore, unrelatedScore)

	// Exact pattern, full muscle overlap, bodyweight, exact difficulty,
	// compound-on-compound: every component maxed, capped at the scale.
	assert.Equal(t, 100, exactScore)
}

func TestScoreAgainstGroup_DifficultyProximity(t *testing.T) {
	group := SlotGroup{Pattern: program.PatternHinge, Muscles: []string{"hamstrings"}, Role: program.RoleAccessory}

	base := testExercise("Romanian Deadlift", program.PatternHinge, []string{"hamstrings"})
	base.Compound = false
	base.Bodyweight = false
	base.EquipmentRequired = []string{"barbell"} // unavailable, keeps the sum under the cap

	for _, tt := range []struct {
		difficulty catalog.Difficulty
		bonus      int
	}{
		{catalog.DifficultyIntermediate, 10},
		{catalog.DifficultyBeginner, 5},
		{catalog.DifficultyAdvanced, 5},
	} {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			ex := base
			ex.Difficulty = tt.difficulty
			score := ScoreAgainstGroup(ex, group, nil, catalog.DifficultyIntermediate)
			assert.Equal(t, 40+30+5+tt.bonus, score)
		})
	}

	// Beginner target versus advanced exercise is two ranks apart: no bonus.
	ex := base
	ex.Difficulty = catalog.DifficultyAdvanced
	score := ScoreAgainstGroup(ex, group, nil, catalog.DifficultyBeginner)
	assert.Equal(t, 40+30+5, score)
}

func TestScoreAgainstGroup_Equipment(t *testing.T) {
	group := SlotGroup{Pattern: program.PatternHinge, Muscles: []string{"hamstrings"}, Role: program.RolePrimaryCompound}

	ex := testExercise("Barbell Deadlift", program.PatternHinge, []string{"hamstrings"})
	ex.Bodyweight = false
	ex.Compound = false // keeps both scores clear of the cap
	ex.EquipmentRequired = []string{"Barbell", "Plates"}

	withEquipment := ScoreAgainstGroup(ex, group, []string{"barbell", "plates", "rack"}, catalog.DifficultyIntermediate)
	withoutEquipment := ScoreAgainstGroup(ex, group, []string{"dumbbells"}, catalog.DifficultyIntermediate)

	assert.Equal(t, 20, withEquipment-withoutEquipment)
}

func TestScoreAgainstGroup_Range(t *testing.T) {
	group := SlotGroup{
		Pattern: program.PatternSquat,
		Muscles: []string{"glutes", "quads"},
		Role:    program.RolePrimaryCompound,
	}

	patterns := []program.MovementPattern{
		program.PatternSquat, program.PatternHinge, program.PatternLunge,
		program.PatternPush, program.PatternPull, program.PatternCarry,
		program.PatternRotation, program.PatternIsometric,
	}
	for _, pattern := range patterns {
		for _, muscles := range [][]string{nil, {"quads"}, {"quads", "glutes"}, {"lats"}} {
			ex := testExercise("X", pattern, muscles)
			score := ScoreAgainstGroup(ex, group, nil, catalog.DifficultyIntermediate)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestGroupSlots_Dedup(t *testing.T) {
	a := squatSlot("w1d1s1")
	b := squatSlot("w1d2s1")
	b.TargetMuscles = []string{"Glutes", "  quads "} // same set after normalization

	c := squatSlot("w1d1s2")
	c.Role = program.RoleAccessory

	groups := GroupSlots(testSkeleton(a, b, c))
	assert.Len(t, groups, 2)
}

func TestTargetDifficulty(t *testing.T) {
	assert.Equal(t, catalog.DifficultyBeginner, TargetDifficulty(program.TrainingAgeNovice))
	assert.Equal(t, catalog.DifficultyIntermediate, TargetDifficulty(program.TrainingAgeIntermediate))
	assert.Equal(t, catalog.DifficultyAdvanced, TargetDifficulty(program.TrainingAgeAdvanced))
	assert.Equal(t, catalog.DifficultyAdvanced, TargetDifficulty(program.TrainingAgeElite))
	assert.Equal(t, catalog.DifficultyIntermediate, TargetDifficulty(program.TrainingAge("")))
}

func buildCatalog(n int) []catalog.Compressed {
	patterns := []program.MovementPattern{
		program.PatternSquat, program.PatternHinge, program.PatternPush,
		program.PatternPull, program.PatternLunge, program.PatternCarry,
	}
	out := make([]catalog.Compressed, n)
	for i := range out {
		out[i] = testExercise(
			fmt.Sprintf("Exercise %03d", i),
			patterns[i%len(patterns)],
			[]string{"quads", "glutes", "hamstrings", "lats", "chest", "delts"}[i%6 : i%6+1],
		)
	}
	return out
}

func TestSelectCandidates_SafetyValve(t *testing.T) {
	exercises := buildCatalog(MinCandidates - 1)
	profile := program.ProfileAnalysis{TrainingAge: program.TrainingAgeIntermediate}

	got := SelectCandidates(testSkeleton(squatSlot("s1")), exercises, nil, profile)

	require.Len(t, got, len(exercises))
	// Input order preserved, nothing filtered.
	for i, sc := range got {
		assert.Equal(t, exercises[i].Name, sc.Exercise.Name)
		assert.Zero(t, sc.Score)
	}
}

func TestSelectCandidates_Bounds(t *testing.T) {
	profile := program.ProfileAnalysis{TrainingAge: program.TrainingAgeIntermediate}
	skeleton := testSkeleton(squatSlot("s1"))

	for _, n := range []int{MinCandidates, MaxCandidates, 120} {
		got := SelectCandidates(skeleton, buildCatalog(n), nil, profile)

		want := n
		if want > MaxCandidates {
			want = MaxCandidates
		}
		assert.Len(t, got, want, "catalog size %d", n)
	}
}

func TestSelectCandidates_Ordering(t *testing.T) {
	profile := program.ProfileAnalysis{TrainingAge: program.TrainingAgeIntermediate}
	exercises := buildCatalog(60)

	got := SelectCandidates(testSkeleton(squatSlot("s1")), exercises, nil, profile)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}

	// Squats target the slot directly, so a squat leads.
	assert.Equal(t, program.PatternSquat, got[0].Exercise.Pattern)
}

func TestSelectCandidates_Deterministic(t *testing.T) {
	profile := program.ProfileAnalysis{TrainingAge: program.TrainingAgeAdvanced}
	exercises := buildCatalog(80)
	skeleton := testSkeleton(squatSlot("s1"), squatSlot("s2"))
	equipment := []string{"barbell", "dumbbells"}

	first := SelectCandidates(skeleton, exercises, equipment, profile)
	for i := 0; i < 5; i++ {
		again := SelectCandidates(skeleton, exercises, equipment, profile)
		require.Equal(t, first, again)
	}
}
