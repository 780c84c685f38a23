package models

import (
	"slices"
	"time"
)

// RawAnswers holds the unvalidated intake answers for one session.
// Weights stay as the user typed them until derivation.
type RawAnswers struct {
	Name          string           `json:"name"`
	Experience    *ExperienceLevel `json:"experience"`
	Goal          *Goal            `json:"goal"`
	Unit          WeightUnit       `json:"unit"`
	CurrentWeight *string          `json:"current_weight"`
	GoalWeight    *string          `json:"goal_weight"`
}

// UserProfile is the derived personalization record committed at the end of intake.
type UserProfile struct {
	Name              string          `json:"name"`
	FirstName         string          `json:"first_name"`
	Level             ExperienceLevel `json:"level"`
	Goal              Goal            `json:"goal"`
	Unit              WeightUnit      `json:"unit"`
	CurrentWeight     *float64        `json:"current_weight"`
	GoalWeight        *float64        `json:"goal_weight"`
	RestTimerDefault  int             `json:"rest_timer_default"`
	RepRangeLabel     string          `json:"rep_range_label"`
	StatPriority      []string        `json:"stat_priority"`
	ChartDefault      string          `json:"chart_default"`
	BadgeTheme        string          `json:"badge_theme"`
	ShowFormTips      bool            `json:"show_form_tips"`
	ExerciseFilterTag string          `json:"exercise_filter_tag"`
	DefaultSets       int             `json:"default_sets"`
	DefaultReps       int             `json:"default_reps"`
	CreatedAt         time.Time       `json:"created_at"`
	Completed         bool            `json:"completed"`
}

// Clone returns a copy that shares no mutable state with p.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.StatPriority = slices.Clone(p.StatPriority)
	if p.CurrentWeight != nil {
		v := *p.CurrentWeight
		out.CurrentWeight = &v
	}
	if p.GoalWeight != nil {
		v := *p.GoalWeight
		out.GoalWeight = &v
	}
	return out
}

// Settings are the global app settings touched by personalization.
type Settings struct {
	RestTimerDefault int        `json:"rest_timer_default"`
	WeightUnit       WeightUnit `json:"weight_unit"`
}

// SettingsPatch updates only the non-nil fields.
type SettingsPatch struct {
	RestTimerDefault *int
	WeightUnit       *WeightUnit
}

// Apply returns s with the patch applied.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.RestTimerDefault != nil {
		s.RestTimerDefault = *p.RestTimerDefault
	}
	if p.WeightUnit != nil {
		s.WeightUnit = *p.WeightUnit
	}
	return s
}

// DefaultSettings are used before any profile has been committed.
var DefaultSettings = Settings{RestTimerDefault: 90, WeightUnit: UnitKg}

// MetricSourceOnboarding tags body metrics recorded by the intake commit.
const MetricSourceOnboarding = "onboarding"

// BodyMetric is a single bodyweight sample.
type BodyMetric struct {
	ID     string     `json:"id"`
	Weight float64    `json:"weight"`
	Unit   WeightUnit `json:"unit"`
	Date   time.Time  `json:"date"`
	Source string     `json:"source"`
}
