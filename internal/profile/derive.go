// Package profile turns raw intake answers into a UserProfile.
package profile

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/claude/gymflow/internal/catalog"
	"github.com/claude/gymflow/internal/models"
)

// ParseWeight parses a user-entered weight. Blank, unparsable and non-finite
// input all yield nil. A comma decimal separator is accepted.
func ParseWeight(s *string) *float64 {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	v = strings.Replace(v, ",", ".", 1)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// FirstName returns the first whitespace-separated token of name.
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Derive builds the profile for a finished intake. It never fails: missing
// selections fall back to safe defaults and bad numbers become nil. now is
// recorded as the profile's creation time.
func Derive(a models.RawAnswers, now time.Time) models.UserProfile {
	name := strings.TrimSpace(a.Name)
	unit := a.Unit
	if unit == "" {
		unit = models.UnitKg
	}

	p := models.UserProfile{
		Name:          name,
		FirstName:     FirstName(name),
		Unit:          unit,
		CurrentWeight: ParseWeight(a.CurrentWeight),
		CreatedAt:     now,
		Completed:     true,
	}

	goalCfg, levelCfg, ok := configsFor(a)
	if ok {
		p.Level = *a.Experience
		p.Goal = *a.Goal
	}
	if goalCfg.TracksBodyweight {
		p.GoalWeight = ParseWeight(a.GoalWeight)
	}

	p.RestTimerDefault = goalCfg.RestTimerSeconds
	p.RepRangeLabel = goalCfg.RepRangeLabel
	p.StatPriority = goalCfg.StatPriority
	p.ChartDefault = goalCfg.ChartDefault
	p.BadgeTheme = goalCfg.BadgeTheme
	p.ShowFormTips = levelCfg.ShowFormTips
	p.ExerciseFilterTag = levelCfg.ExerciseFilterTag
	p.DefaultSets = levelCfg.DefaultSets
	p.DefaultReps = levelCfg.DefaultReps
	return p
}

// configsFor resolves both tables. If either selection is missing or unknown,
// every field comes from the defaults.
func configsFor(a models.RawAnswers) (catalog.GoalConfig, catalog.LevelConfig, bool) {
	if a.Experience == nil || a.Goal == nil {
		return catalog.DefaultGoalConfig(), catalog.DefaultLevelConfig(), false
	}
	g, gok := catalog.GoalConfigFor(*a.Goal)
	l, lok := catalog.LevelConfigFor(*a.Experience)
	if !gok || !lok {
		return catalog.DefaultGoalConfig(), catalog.DefaultLevelConfig(), false
	}
	return g, l, true
}
