package catalog

import "github.com/claude/gymflow/internal/models"

// DefaultTemplateID is the general-volume template returned when nothing
// matches the requested goal.
const DefaultTemplateID = "fullbody-general"

func weeks(n int) *int { return &n }

func ex(id string, sets int, reps string, rest int) models.ProgramExercise {
	return models.ProgramExercise{ExerciseID: id, Sets: sets, Reps: reps, RestSeconds: rest}
}

// presets is ordered by priority within each matcher tier.
func presets() []models.ProgramTemplate {
	return []models.ProgramTemplate{
		{
			ID:            "fullbody-principiante",
			Name:          "Full Body Foundations",
			Description:   "Three full-body sessions a week built on the main compound lifts.",
			Goal:          models.ProgramGoalHypertrophy,
			Level:         models.LevelBeginner,
			DaysPerWeek:   3,
			DurationWeeks: weeks(8),
			Tags:          []string{"fullbody", "compound", "beginner-friendly"},
			Schedule:      []string{"A", models.RestDay, "B", models.RestDay, "C", models.RestDay, models.RestDay},
			Days: []models.ProgramDay{
				{ID: "A", Name: "Full Body A", Exercises: []models.ProgramExercise{
					ex("goblet_squat", 3, "10", 90),
					ex("dumbbell_bench_press", 3, "10", 90),
					ex("seated_cable_row", 3, "10", 90),
					ex("plank", 3, "30s", 60),
				}},
				{ID: "B", Name: "Full Body B", Exercises: []models.ProgramExercise{
					ex("romanian_deadlift", 3, "10", 90),
					ex("overhead_press", 3, "10", 90),
					ex("lat_pulldown", 3, "10", 90),
					ex("walking_lunge", 3, "12", 60),
				}},
				{ID: "C", Name: "Full Body C", Exercises: []models.ProgramExercise{
					ex("leg_press", 3, "12", 90),
					ex("incline_dumbbell_press", 3, "10", 90),
					ex("dumbbell_row", 3, "10", 90),
					ex("cable_crunch", 3, "15", 60),
				}},
			},
		},
		{
			ID:            "definicion-circuito",
			Name:          "Lean Circuit",
			Description:   "Short-rest circuits that keep the heart rate up while preserving muscle.",
			Goal:          models.ProgramGoalFatLoss,
			Level:         models.LevelBeginner,
			DaysPerWeek:   3,
			DurationWeeks: weeks(6),
			Tags:          []string{"circuit", "conditioning"},
			Schedule:      []string{"A", models.RestDay, "B", models.RestDay, "A", models.RestDay, models.RestDay},
			Days: []models.ProgramDay{
				{ID: "A", Name: "Circuit A", Exercises: []models.ProgramExercise{
					ex("goblet_squat", 3, "15", 45),
					ex("push_up", 3, "12", 45),
					ex("kettlebell_swing", 3, "15", 45),
					ex("mountain_climber", 3, "30s", 45),
				}},
				{ID: "B", Name: "Circuit B", Exercises: []models.ProgramExercise{
					ex("step_up", 3, "12", 45),
					ex("dumbbell_row", 3, "12", 45),
					ex("dumbbell_thruster", 3, "12", 45),
					ex("burpee", 3, "10", 45),
				}},
			},
		},
		{
			ID:            "fuerza-5x5",
			Name:          "Strength 5x5",
			Description:   "Linear progression on squat, bench, deadlift and press.",
			Goal:          models.ProgramGoalStrength,
			Level:         models.LevelIntermediate,
			DaysPerWeek:   3,
			DurationWeeks: weeks(12),
			Tags:          []string{"barbell", "linear-progression"},
			Schedule:      []string{"A", models.RestDay, "B", models.RestDay, "A", models.RestDay, models.RestDay},
			Days: []models.ProgramDay{
				{ID: "A", Name: "Workout A", Exercises: []models.ProgramExercise{
					ex("back_squat", 5, "5", 180),
					ex("bench_press", 5, "5", 180),
					ex("barbell_row", 5, "5", 180),
				}},
				{ID: "B", Name: "Workout B", Exercises: []models.ProgramExercise{
					ex("back_squat", 5, "5", 180),
					ex("overhead_press", 5, "5", 180),
					ex("deadlift", 1, "5", 240),
				}},
			},
		},
		{
			ID:            "upper-lower-hipertrofia",
			Name:          "Upper / Lower Hypertrophy",
			Description:   "Four days alternating upper and lower body with moderate volume.",
			Goal:          models.ProgramGoalHypertrophy,
			Level:         models.LevelIntermediate,
			DaysPerWeek:   4,
			DurationWeeks: weeks(10),
			Tags:          []string{"upper-lower", "hypertrophy"},
			Schedule:      []string{"U1", "L1", models.RestDay, "U2", "L2", models.RestDay, models.RestDay},
			Days: []models.ProgramDay{
				{ID: "U1", Name: "Upper 1", Exercises: []models.ProgramExercise{
					ex("bench_press", 4, "6-8", 120),
					ex("barbell_row", 4, "8", 120),
					ex("lateral_raise", 3, "12-15", 60),
					ex("biceps_curl", 3, "10-12", 60),
				}},
				{ID: "L1", Name: "Lower 1", Exercises: []models.ProgramExercise{
					ex("back_squat", 4, "6-8", 150),
					ex("romanian_deadlift", 3, "8-10", 120),
					ex("leg_curl", 3, "12", 60),
					ex("calf_raise", 4, "12-15", 60),
				}},
				{ID: "U2", Name: "Upper 2", Exercises: []models.ProgramExercise{
					ex("overhead_press", 4, "8", 120),
					ex("pull_up", 4, "8", 120),
					ex("incline_dumbbell_press", 3, "10-12", 90),
					ex("triceps_pushdown", 3, "12", 60),
				}},
				{ID: "L2", Name: "Lower 2", Exercises: []models.ProgramExercise{
					ex("deadlift", 3, "5", 180),
					ex("leg_press", 3, "10-12", 90),
					ex("walking_lunge", 3, "12", 60),
					ex("hanging_leg_raise", 3, "12", 60),
				}},
			},
		},
		{
			ID:          "ppl-avanzado",
			Name:        "Push Pull Legs",
			Description: "Six-day split hitting every muscle group twice a week.",
			Goal:        models.ProgramGoalHypertrophy,
			Level:       models.LevelAdvanced,
			DaysPerWeek: 6,
			Tags:        []string{"split", "high-volume"},
			Schedule:    []string{"PUSH", "PULL", "LEGS", "PUSH", "PULL", "LEGS", models.RestDay},
			Days: []models.ProgramDay{
				{ID: "PUSH", Name: "Push", Exercises: []models.ProgramExercise{
					ex("bench_press", 4, "6-8", 150),
					ex("overhead_press", 3, "8-10", 120),
					ex("incline_dumbbell_press", 3, "10-12", 90),
					ex("lateral_raise", 4, "15", 60),
					ex("triceps_pushdown", 3, "12", 60),
				}},
				{ID: "PULL", Name: "Pull", Exercises: []models.ProgramExercise{
					ex("deadlift", 3, "5", 180),
					ex("pull_up", 4, "8", 120),
					ex("barbell_row", 3, "8-10", 120),
					ex("face_pull", 3, "15", 60),
					ex("biceps_curl", 3, "10-12", 60),
				}},
				{ID: "LEGS", Name: "Legs", Exercises: []models.ProgramExercise{
					ex("back_squat", 4, "6-8", 180),
					ex("romanian_deadlift", 3, "8-10", 120),
					ex("leg_press", 3, "12", 90),
					ex("leg_curl", 3, "12", 60),
					ex("calf_raise", 4, "15", 60),
				}},
			},
		},
		{
			ID:            "fuerza-avanzada",
			Name:          "Advanced Strength Block",
			Description:   "Four-day heavy/light block with top sets and back-off volume.",
			Goal:          models.ProgramGoalStrength,
			Level:         models.LevelAdvanced,
			DaysPerWeek:   4,
			DurationWeeks: weeks(9),
			Tags:          []string{"barbell", "periodized"},
			Schedule:      []string{"SQ", "BP", models.RestDay, "DL", "OHP", models.RestDay, models.RestDay},
			Days: []models.ProgramDay{
				{ID: "SQ", Name: "Squat Day", Exercises: []models.ProgramExercise{
					ex("back_squat", 5, "3", 240),
					ex("pause_squat", 3, "4", 180),
					ex("leg_curl", 3, "10", 60),
				}},
				{ID: "BP", Name: "Bench Day", Exercises: []models.ProgramExercise{
					ex("bench_press", 5, "3", 240),
					ex("close_grip_bench_press", 3, "5", 180),
					ex("barbell_row", 4, "6", 120),
				}},
				{ID: "DL", Name: "Deadlift Day", Exercises: []models.ProgramExercise{
					ex("deadlift", 4, "2", 300),
					ex("front_squat", 3, "5", 180),
					ex("hanging_leg_raise", 3, "12", 60),
				}},
				{ID: "OHP", Name: "Press Day", Exercises: []models.ProgramExercise{
					ex("overhead_press", 5, "3", 180),
					ex("weighted_pull_up", 4, "5", 150),
					ex("dip", 3, "8", 120),
				}},
			},
		},
		{
			ID:          DefaultTemplateID,
			Name:        "General Fitness Full Body",
			Description: "Balanced full-body volume for general fitness and maintenance.",
			Goal:        models.ProgramGoalGeneral,
			Level:       models.LevelIntermediate,
			DaysPerWeek: 3,
			Tags:        []string{"fullbody", "general"},
			Schedule:    []string{"A", models.RestDay, "B", models.RestDay, "A", models.RestDay, models.RestDay},
			Days: []models.ProgramDay{
				{ID: "A", Name: "Full Body A", Exercises: []models.ProgramExercise{
					ex("back_squat", 3, "8-10", 120),
					ex("bench_press", 3, "8-10", 120),
					ex("lat_pulldown", 3, "10-12", 90),
					ex("plank", 3, "45s", 60),
				}},
				{ID: "B", Name: "Full Body B", Exercises: []models.ProgramExercise{
					ex("deadlift", 3, "6-8", 150),
					ex("overhead_press", 3, "8-10", 120),
					ex("seated_cable_row", 3, "10-12", 90),
					ex("walking_lunge", 3, "12", 60),
				}},
			},
		},
		{
			ID:          "mantenimiento-2dias",
			Name:        "Two-Day Maintenance",
			Description: "Minimal effective dose to hold strength and muscle on a busy schedule.",
			Goal:        models.ProgramGoalGeneral,
			Level:       models.LevelBeginner,
			DaysPerWeek: 2,
			Tags:        []string{"minimal", "time-efficient"},
			Schedule:    []string{"A", models.RestDay, models.RestDay, "B", models.RestDay, models.RestDay, models.RestDay},
			Days: []models.ProgramDay{
				{ID: "A", Name: "Session A", Exercises: []models.ProgramExercise{
					ex("goblet_squat", 2, "10", 90),
					ex("push_up", 2, "12", 60),
					ex("dumbbell_row", 2, "10", 60),
				}},
				{ID: "B", Name: "Session B", Exercises: []models.ProgramExercise{
					ex("romanian_deadlift", 2, "10", 90),
					ex("overhead_press", 2, "10", 60),
					ex("lat_pulldown", 2, "10", 60),
				}},
			},
		},
	}
}
