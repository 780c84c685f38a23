package models

import (
	"errors"
	"slices"
	"time"
)

// ErrProgramNotFound is returned by program stores for an unknown program id.
var ErrProgramNotFound = errors.New("program not found")

// ProgramGoal is the goal tag carried by catalog templates. It is coarser than
// Goal; the matcher maps one onto the other.
type ProgramGoal string

const (
	ProgramGoalStrength    ProgramGoal = "fuerza"
	ProgramGoalHypertrophy ProgramGoal = "hipertrofia"
	ProgramGoalFatLoss     ProgramGoal = "definicion"
	ProgramGoalGeneral     ProgramGoal = "general"
)

// RestDay marks a rest day in a weekly schedule.
const RestDay = "rest"

// ProgramExercise is one prescribed exercise within a day.
type ProgramExercise struct {
	ExerciseID  string `json:"exercise_id"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	RestSeconds int    `json:"rest_seconds"`
}

// ProgramDay is one training day of a program.
type ProgramDay struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Exercises []ProgramExercise `json:"exercises"`
}

// ProgramTemplate is a built-in catalog entry. Templates are never mutated;
// activation works on a Clone.
type ProgramTemplate struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Goal          ProgramGoal     `json:"goal"`
	Level         ExperienceLevel `json:"level"`
	DaysPerWeek   int             `json:"days_per_week"`
	DurationWeeks *int            `json:"duration_weeks,omitempty"`
	Tags          []string        `json:"tags"`
	Schedule      []string        `json:"schedule"`
	Days          []ProgramDay    `json:"days"`
}

// Clone returns a deep copy of t.
func (t ProgramTemplate) Clone() ProgramTemplate {
	out := t
	if t.DurationWeeks != nil {
		w := *t.DurationWeeks
		out.DurationWeeks = &w
	}
	out.Tags = slices.Clone(t.Tags)
	out.Schedule = slices.Clone(t.Schedule)
	out.Days = cloneDays(t.Days)
	return out
}

func cloneDays(days []ProgramDay) []ProgramDay {
	if days == nil {
		return nil
	}
	out := make([]ProgramDay, len(days))
	for i, d := range days {
		out[i] = ProgramDay{
			ID:        d.ID,
			Name:      d.Name,
			Exercises: slices.Clone(d.Exercises),
		}
	}
	return out
}

// UserProgram is a user's own copy of a template.
type UserProgram struct {
	ProgramTemplate
	PresetID  string    `json:"preset_id"`
	IsPreset  bool      `json:"is_preset"`
	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a deep copy of p.
func (p UserProgram) Clone() UserProgram {
	out := p
	out.ProgramTemplate = p.ProgramTemplate.Clone()
	return out
}
