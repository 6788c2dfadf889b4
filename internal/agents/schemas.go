package agents

import (
	"github.com/repforge/repforge/internal/schema"
	"github.com/repforge/repforge/internal/types"
)

// Output schemas for the four agents. These carry the full constraint set;
// the model client sanitizes them down to what the backend's structured
// output can express and re-checks the rest after the call.

func profileSchema() *types.JSONSchema {
	volumeTarget := schema.Object(map[string]*types.JSONSchema{
		"muscle_group": schema.String("muscle group name"),
		"weekly_sets":  schema.WithRange(schema.Integer("target working sets per week"), 2, 30),
		"priority":     schema.StringEnum("how important this target is", "high", "medium", "low"),
	}, "muscle_group", "weekly_sets", "priority")

	constraint := schema.Object(map[string]*types.JSONSchema{
		"type": schema.StringEnum("constraint kind",
			"avoid_movement", "avoid_equipment", "avoid_muscle", "limit_load", "require_unilateral"),
		"target": schema.String("what the constraint applies to"),
		"reason": schema.String("why this constraint exists"),
	}, "type", "target", "reason")

	sessionStructure := schema.Object(map[string]*types.JSONSchema{
		"warmup_minutes":      schema.Integer("minutes of warm-up work"),
		"main_work_minutes":   schema.Integer("minutes of main work"),
		"cooldown_minutes":    schema.Integer("minutes of cool-down work"),
		"compound_exercises":  schema.WithRange(schema.Integer("compound exercises per session"), 1, 8),
		"isolation_exercises": schema.WithRange(schema.Integer("isolation exercises per session"), 1, 8),
	}, "warmup_minutes", "main_work_minutes", "cooldown_minutes", "compound_exercises", "isolation_exercises")

	return schema.Object(map[string]*types.JSONSchema{
		"split_type":        schema.String("recommended training split"),
		"periodization":     schema.String("recommended periodization scheme"),
		"volume_targets":    schema.WithMinItems(schema.Array(volumeTarget), 1),
		"constraints":       schema.Array(constraint),
		"session_structure": sessionStructure,
		"training_age":      schema.StringEnum("training age category", "novice", "intermediate", "advanced", "elite"),
		"notes":             schema.String("free-text coaching notes"),
	}, "split_type", "periodization", "volume_targets", "constraints", "session_structure", "training_age")
}

func skeletonSchema() *types.JSONSchema {
	slot := schema.Object(map[string]*types.JSONSchema{
		"id": schema.String("stable slot identifier, e.g. w1d1s1"),
		"role": schema.StringEnum("slot role",
			"warm_up", "primary_compound", "secondary_compound", "accessory", "isolation", "cool_down"),
		"pattern": schema.StringEnum("movement pattern",
			"squat", "hinge", "lunge", "push", "pull", "carry", "rotation", "isometric"),
		"target_muscles": schema.WithMinItems(schema.Array(schema.String("muscle name")), 1),
		"sets":           schema.WithRange(schema.Integer("prescribed sets"), 1, 10),
		"reps":           schema.String("rep prescription, e.g. 8-10"),
		"rest_seconds":   schema.WithRange(schema.Integer("rest between sets in seconds"), 15, 600),
		"rpe":            schema.WithRange(schema.Number("target rating of perceived exertion"), 5, 10),
		"tempo":          schema.String("tempo prescription, e.g. 3-1-1"),
		"group_tag":      schema.String("shared tag for superset or circuit partners"),
		"technique": schema.StringEnum("set execution technique",
			"straight_set", "superset", "drop_set", "giant_set", "circuit", "rest_pause", "amrap"),
	}, "id", "role", "pattern", "target_muscles", "sets", "reps", "rest_seconds", "technique")

	day := schema.Object(map[string]*types.JSONSchema{
		"day_of_week": schema.WithRange(schema.Integer("0-based day index, Monday first"), 0, 6),
		"label":       schema.String("day label, e.g. Upper A"),
		"focus":       schema.String("what the day emphasizes"),
		"slots":       schema.WithMinItems(schema.Array(slot), 1),
	}, "day_of_week", "label", "focus", "slots")

	week := schema.Object(map[string]*types.JSONSchema{
		"number":    schema.Integer("1-based week number"),
		"phase":     schema.String("phase label, e.g. accumulation"),
		"intensity": schema.WithRange(schema.Number("intensity modifier"), 0.5, 1.2),
		"days":      schema.WithMinItems(schema.Array(day), 1),
	}, "number", "phase", "intensity", "days")

	return schema.Object(map[string]*types.JSONSchema{
		"name":  schema.String("program name"),
		"weeks": schema.WithMinItems(schema.Array(week), 1),
	}, "name", "weeks")
}

func assignmentSchema() *types.JSONSchema {
	slotAssignment := schema.Object(map[string]*types.JSONSchema{
		"slot_id":           schema.String("slot identifier from the skeleton"),
		"exercise_id":       schema.String("catalog exercise id"),
		"exercise_name":     schema.String("catalog exercise name"),
		"substitution_note": schema.String("why a non-obvious exercise was chosen"),
	}, "slot_id", "exercise_id", "exercise_name")

	s := schema.Object(map[string]*types.JSONSchema{
		"assignments": schema.WithMinItems(schema.Array(slotAssignment), 1),
		"notes":       schema.Array(schema.String("run-level substitution rationale")),
	}, "assignments")
	s.Description = "exercise_assignment"
	return s
}

// sessionPlanSchema narrows assignment output to one day: the model must
// echo the week and day it planned, so a response routed to the wrong
// session is caught before per-session results are merged.
func sessionPlanSchema() *types.JSONSchema {
	s := assignmentSchema()
	s.Description = "session_plan"
	s.Properties["week"] = schema.Integer("1-based week number this plan covers")
	s.Properties["day_of_week"] = schema.WithRange(schema.Integer("0-based day index this plan covers"), 0, 6)
	s.Required = append(s.Required, "week", "day_of_week")
	return s
}

func validationSchema() *types.JSONSchema {
	issue := schema.Object(map[string]*types.JSONSchema{
		"severity": schema.StringEnum("issue severity", "error", "warning"),
		"category": schema.StringEnum("issue category",
			"missing_coverage", "banned_exercise", "volume_shortfall", "unsafe_load", "other"),
		"message": schema.String("what is wrong"),
		"slot_id": schema.String("slot the issue refers to, when applicable"),
	}, "severity", "category", "message")

	return schema.Object(map[string]*types.JSONSchema{
		"pass":    schema.Boolean("whether the program is deliverable as-is"),
		"issues":  schema.Array(issue),
		"summary": schema.String("one or two sentence verdict"),
	}, "pass", "issues", "summary")
}
