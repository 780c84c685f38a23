package catalog

import "github.com/claude/gymflow/internal/models"

// GoalConfig holds the personalization derived from a goal.
type GoalConfig struct {
	RestTimerSeconds int
	RepRangeLabel    string
	StatPriority     []string
	ChartDefault     string
	BadgeTheme       string
	TracksBodyweight bool
	// Direction is empty unless TracksBodyweight is set.
	Direction models.BodyweightDirection
}

// LevelConfig holds the personalization derived from an experience level.
type LevelConfig struct {
	DefaultSets       int
	DefaultReps       int
	ProgramType       string
	ShowFormTips      bool
	ExerciseFilterTag string
}

// DefaultGoalConfig is used when no goal has been selected.
func DefaultGoalConfig() GoalConfig {
	return GoalConfig{
		RestTimerSeconds: 90,
		RepRangeLabel:    "8-12 reps",
		StatPriority:     []string{models.StatVolume, models.StatFrequency},
		ChartDefault:     models.StatVolume,
		BadgeTheme:       "default",
	}
}

// DefaultLevelConfig is used when no experience level has been selected.
func DefaultLevelConfig() LevelConfig {
	return LevelConfig{
		DefaultSets:       3,
		DefaultReps:       10,
		ProgramType:       "fullbody",
		ShowFormTips:      true,
		ExerciseFilterTag: "basic",
	}
}

// GoalConfigFor returns the configuration for g. The second result is false
// for values outside models.AllGoals. Every call returns fresh slices.
func GoalConfigFor(g models.Goal) (GoalConfig, bool) {
	switch g {
	case models.GoalStrength:
		return GoalConfig{
			RestTimerSeconds: 180,
			RepRangeLabel:    "3-6 reps",
			StatPriority:     []string{models.StatOneRepMax, models.StatVolume, models.StatFrequency},
			ChartDefault:     models.StatOneRepMax,
			BadgeTheme:       "iron",
		}, true
	case models.GoalMuscle:
		return GoalConfig{
			RestTimerSeconds: 120,
			RepRangeLabel:    "8-12 reps",
			StatPriority:     []string{models.StatVolume, models.StatBodyweight, models.StatFrequency},
			ChartDefault:     models.StatVolume,
			BadgeTheme:       "growth",
			TracksBodyweight: true,
			Direction:        models.DirectionGain,
		}, true
	case models.GoalFatLoss:
		return GoalConfig{
			RestTimerSeconds: 60,
			RepRangeLabel:    "12-15 reps",
			StatPriority:     []string{models.StatBodyweight, models.StatFrequency, models.StatVolume},
			ChartDefault:     models.StatBodyweight,
			BadgeTheme:       "burn",
			TracksBodyweight: true,
			Direction:        models.DirectionLoss,
		}, true
	case models.GoalMaintenance:
		return GoalConfig{
			RestTimerSeconds: 90,
			RepRangeLabel:    "8-12 reps",
			StatPriority:     []string{models.StatFrequency, models.StatVolume, models.StatBodyweight},
			ChartDefault:     models.StatFrequency,
			BadgeTheme:       "balance",
			TracksBodyweight: true,
			Direction:        models.DirectionMaintain,
		}, true
	}
	return GoalConfig{}, false
}

// LevelConfigFor returns the configuration for l. The second result is false
// for values outside models.AllLevels.
func LevelConfigFor(l models.ExperienceLevel) (LevelConfig, bool) {
	switch l {
	case models.LevelBeginner:
		return LevelConfig{
			DefaultSets:       3,
			DefaultReps:       10,
			ProgramType:       "fullbody",
			ShowFormTips:      true,
			ExerciseFilterTag: "basic",
		}, true
	case models.LevelIntermediate:
		return LevelConfig{
			DefaultSets:       4,
			DefaultReps:       8,
			ProgramType:       "upper_lower",
			ExerciseFilterTag: "intermediate",
		}, true
	case models.LevelAdvanced:
		return LevelConfig{
			DefaultSets:       5,
			DefaultReps:       6,
			ProgramType:       "push_pull_legs",
			ExerciseFilterTag: "all",
		}, true
	}
	return LevelConfig{}, false
}
