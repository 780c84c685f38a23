package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/claude/gymflow/internal/models"
)

func TestSetActiveProgramUnknown(t *testing.T) {
	s := New()
	if err := s.SetActiveProgram(context.Background(), "missing"); !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("err = %v, want ErrProgramNotFound", err)
	}
}

// TestActiveProgramIsCopy verifies callers cannot mutate stored programs.
func TestActiveProgramIsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := models.UserProgram{ProgramTemplate: models.ProgramTemplate{
		ID:   "p1",
		Days: []models.ProgramDay{{ID: "A", Exercises: []models.ProgramExercise{{ExerciseID: "squat", Sets: 3}}}},
	}}
	if err := s.AddProgram(ctx, p); err != nil {
		t.Fatal(err)
	}
	p.Days[0].Exercises[0].Sets = 10 // caller's copy

	if err := s.SetActiveProgram(ctx, "p1"); err != nil {
		t.Fatal(err)
	}
	active, err := s.ActiveProgram(ctx)
	if err != nil || active == nil {
		t.Fatalf("ActiveProgram = %v, %v", active, err)
	}
	if active.Days[0].Exercises[0].Sets != 3 {
		t.Errorf("sets = %d, want 3", active.Days[0].Exercises[0].Sets)
	}
	active.Days[0].Exercises[0].Sets = 7

	again, _ := s.ActiveProgram(ctx)
	if again.Days[0].Exercises[0].Sets != 3 {
		t.Errorf("stored sets = %d after mutating returned copy, want 3", again.Days[0].Exercises[0].Sets)
	}
}

func TestDeleteActiveProgramClearsPointer(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.AddProgram(ctx, models.UserProgram{ProgramTemplate: models.ProgramTemplate{ID: "p1"}})
	_ = s.SetActiveProgram(ctx, "p1")

	if err := s.DeleteProgram(ctx, "p1"); err != nil {
		t.Fatal(err)
	}
	if active, _ := s.ActiveProgram(ctx); active != nil {
		t.Errorf("active = %v, want nil", active.ID)
	}
	if err := s.DeleteProgram(ctx, "p1"); !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("second delete err = %v, want ErrProgramNotFound", err)
	}
}

// TestAddBodyMetricDedup verifies re-adding a metric id is a no-op.
func TestAddBodyMetricDedup(t *testing.T) {
	ctx := context.Background()
	s := New()
	m := models.BodyMetric{ID: "m1", Weight: 80, Date: time.Now()}
	_ = s.AddBodyMetric(ctx, m)
	m.Weight = 81
	_ = s.AddBodyMetric(ctx, m)

	got, _ := s.BodyMetrics(ctx)
	if len(got) != 1 || got[0].Weight != 80 {
		t.Errorf("metrics = %+v, want one sample of 80", got)
	}
}

// TestUnlockBadgesTwice verifies the first unlock timestamp wins.
func TestUnlockBadgesTwice(t *testing.T) {
	ctx := context.Background()
	s := New()
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = s.UnlockBadges(ctx, []models.Badge{{ID: models.BadgeFirstLogin, UnlockedAt: first}})
	_ = s.UnlockBadges(ctx, []models.Badge{{ID: models.BadgeFirstLogin, UnlockedAt: first.Add(time.Hour)}})

	got, _ := s.Badges(ctx)
	if len(got) != 1 {
		t.Fatalf("badges = %d, want 1", len(got))
	}
	if !got[0].UnlockedAt.Equal(first) {
		t.Errorf("unlocked_at = %v, want %v", got[0].UnlockedAt, first)
	}
}

func TestUpdateSettingsPatch(t *testing.T) {
	ctx := context.Background()
	s := New()
	rest := 180
	_ = s.UpdateSettings(ctx, models.SettingsPatch{RestTimerDefault: &rest})

	got, _ := s.Settings(ctx)
	if got.RestTimerDefault != 180 {
		t.Errorf("rest_timer_default = %d, want 180", got.RestTimerDefault)
	}
	if got.WeightUnit != models.UnitKg {
		t.Errorf("weight_unit = %q, want unchanged kg", got.WeightUnit)
	}
}

func TestUserBeforeCommit(t *testing.T) {
	u, err := New().User(context.Background())
	if err != nil || u != nil {
		t.Errorf("User = %v, %v; want nil, nil", u, err)
	}
}
