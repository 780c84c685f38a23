package models

import (
	"fmt"
	"strings"
)

// ExperienceLevel is the training experience selected during intake.
// Values are the tags stored on profiles and catalog templates.
type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "principiante"
	LevelIntermediate ExperienceLevel = "intermedio"
	LevelAdvanced     ExperienceLevel = "avanzado"
)

// AllLevels lists every experience level in display order.
var AllLevels = []ExperienceLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseLevel accepts either the English variant name or the stored tag.
func ParseLevel(s string) (ExperienceLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", string(LevelBeginner):
		return LevelBeginner, nil
	case "intermediate", string(LevelIntermediate):
		return LevelIntermediate, nil
	case "advanced", string(LevelAdvanced):
		return LevelAdvanced, nil
	}
	return "", fmt.Errorf("unknown experience level %q", s)
}

// Goal is the training goal selected during intake.
type Goal string

const (
	GoalStrength    Goal = "fuerza"
	GoalMuscle      Goal = "volumen"
	GoalFatLoss     Goal = "definicion"
	GoalMaintenance Goal = "mantenimiento"
)

// AllGoals lists every goal in display order.
var AllGoals = []Goal{GoalStrength, GoalMuscle, GoalFatLoss, GoalMaintenance}

// ParseGoal accepts either the English variant name or the stored tag.
func ParseGoal(s string) (Goal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strength", string(GoalStrength):
		return GoalStrength, nil
	case "muscle", string(GoalMuscle):
		return GoalMuscle, nil
	case "fat_loss", string(GoalFatLoss):
		return GoalFatLoss, nil
	case "maintenance", string(GoalMaintenance):
		return GoalMaintenance, nil
	}
	return "", fmt.Errorf("unknown goal %q", s)
}

// WeightUnit is the unit system used for every weight the user enters.
type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

// ParseUnit parses a unit string. Empty input selects kilograms.
func ParseUnit(s string) (WeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "kg":
		return UnitKg, nil
	case "lbs", "lb":
		return UnitLbs, nil
	}
	return "", fmt.Errorf("unknown weight unit %q", s)
}

// BodyweightDirection is where a goal wants bodyweight to move.
type BodyweightDirection string

const (
	DirectionGain     BodyweightDirection = "gain"
	DirectionLoss     BodyweightDirection = "loss"
	DirectionMaintain BodyweightDirection = "maintain"
)

// Stat names surfaced on dashboards, in goal-specific priority order.
const (
	StatOneRepMax  = "one_rep_max"
	StatVolume     = "volume"
	StatFrequency  = "frequency"
	StatBodyweight = "bodyweight"
)
