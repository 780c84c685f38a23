package catalog

import (
	"testing"
	"time"

	"github.com/claude/gymflow/internal/models"
	"github.com/google/go-cmp/cmp"
)

// TestRecommendExactMatch verifies the first tier: level and goal both match.
func TestRecommendExactMatch(t *testing.T) {
	c := Builtin()
	tests := []struct {
		level models.ExperienceLevel
		goal  models.Goal
		want  string
	}{
		{models.LevelBeginner, models.GoalMuscle, "fullbody-principiante"},
		{models.LevelBeginner, models.GoalFatLoss, "definicion-circuito"},
		{models.LevelIntermediate, models.GoalStrength, "fuerza-5x5"},
		{models.LevelIntermediate, models.GoalMuscle, "upper-lower-hipertrofia"},
		{models.LevelAdvanced, models.GoalMuscle, "ppl-avanzado"},
		{models.LevelAdvanced, models.GoalStrength, "fuerza-avanzada"},
		{models.LevelIntermediate, models.GoalMaintenance, DefaultTemplateID},
		{models.LevelBeginner, models.GoalMaintenance, "mantenimiento-2dias"},
	}
	for _, tt := range tests {
		t.Run(string(tt.level)+"/"+string(tt.goal), func(t *testing.T) {
			got, ok := c.Recommend(tt.level, tt.goal)
			if !ok {
				t.Fatal("expected a recommendation")
			}
			if got.ID != tt.want {
				t.Errorf("Recommend = %q, want %q", got.ID, tt.want)
			}
		})
	}
}

// TestRecommendGoalOnlyBeforeDefault verifies that a beginner asking for
// strength gets the first strength template (no beginner strength template
// exists) rather than the general default.
func TestRecommendGoalOnlyBeforeDefault(t *testing.T) {
	got, ok := Builtin().Recommend(models.LevelBeginner, models.GoalStrength)
	if !ok {
		t.Fatal("expected a recommendation")
	}
	if got.ID != "fuerza-5x5" {
		t.Errorf("Recommend = %q, want fuerza-5x5", got.ID)
	}
}

// TestRecommendLegacyGoalTag verifies legacy synonyms are normalized before matching.
func TestRecommendLegacyGoalTag(t *testing.T) {
	got, ok := Builtin().Recommend(models.LevelAdvanced, models.Goal("hipertrofia"))
	if !ok || got.ID != "ppl-avanzado" {
		t.Errorf("Recommend(hipertrofia) = %q, %v; want ppl-avanzado", got.ID, ok)
	}
}

// TestRecommendUnknownGoalFallsBackToDefault verifies the last tier.
func TestRecommendUnknownGoalFallsBackToDefault(t *testing.T) {
	got, ok := Builtin().Recommend(models.LevelBeginner, models.Goal("yoga"))
	if !ok {
		t.Fatal("expected the default template")
	}
	if got.ID != DefaultTemplateID {
		t.Errorf("Recommend = %q, want %q", got.ID, DefaultTemplateID)
	}
}

// TestRecommendNoDefault verifies that a catalog without its default template
// reports no recommendation instead of failing.
func TestRecommendNoDefault(t *testing.T) {
	c := New([]models.ProgramTemplate{
		{ID: "only", Goal: models.ProgramGoalStrength, Level: models.LevelBeginner},
	}, "missing")
	if _, ok := c.Recommend(models.LevelBeginner, models.GoalFatLoss); ok {
		t.Error("expected no recommendation")
	}
	if got, ok := c.Recommend(models.LevelAdvanced, models.GoalStrength); !ok || got.ID != "only" {
		t.Errorf("goal-only match = %q, %v; want only", got.ID, ok)
	}
}

// TestRecommendOrderIsPriority verifies that insertion order breaks ties within a tier.
func TestRecommendOrderIsPriority(t *testing.T) {
	c := New([]models.ProgramTemplate{
		{ID: "first", Goal: models.ProgramGoalStrength, Level: models.LevelAdvanced},
		{ID: "second", Goal: models.ProgramGoalStrength, Level: models.LevelAdvanced},
	}, "")
	got, _ := c.Recommend(models.LevelAdvanced, models.GoalStrength)
	if got.ID != "first" {
		t.Errorf("Recommend = %q, want first", got.ID)
	}
}

func TestIsRecommended(t *testing.T) {
	c := Builtin()
	if !c.IsRecommended("fullbody-principiante", models.LevelBeginner, models.GoalMuscle) {
		t.Error("fullbody-principiante should be recommended for beginner/volumen")
	}
	if c.IsRecommended("ppl-avanzado", models.LevelBeginner, models.GoalMuscle) {
		t.Error("ppl-avanzado should not be recommended for beginner/volumen")
	}
}

// TestFilter verifies that every non-zero filter field must match and an empty
// result is returned as an empty, non-nil slice.
func TestFilter(t *testing.T) {
	c := Builtin()
	tests := []struct {
		name   string
		filter ProgramFilter
		want   []string
	}{
		{"no filter", ProgramFilter{}, nil},
		{"goal", ProgramFilter{Goal: models.ProgramGoalStrength}, []string{"fuerza-5x5", "fuerza-avanzada"}},
		{"goal and level", ProgramFilter{Goal: models.ProgramGoalHypertrophy, Level: models.LevelAdvanced}, []string{"ppl-avanzado"}},
		{"days", ProgramFilter{DaysPerWeek: 4}, []string{"upper-lower-hipertrofia", "fuerza-avanzada"}},
		{"no match", ProgramFilter{Goal: models.ProgramGoalFatLoss, DaysPerWeek: 6}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Filter(tt.filter)
			if got == nil {
				t.Fatal("Filter returned nil slice")
			}
			if tt.want == nil {
				if len(got) != c.Len() {
					t.Errorf("len = %d, want %d", len(got), c.Len())
				}
				return
			}
			var ids []string
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			if len(ids) == 0 {
				ids = []string{}
			}
			if diff := cmp.Diff(tt.want, ids); diff != "" {
				t.Errorf("Filter ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGet(t *testing.T) {
	c := Builtin()
	got, err := c.Get("fuerza-5x5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DaysPerWeek != 3 {
		t.Errorf("days_per_week = %d, want 3", got.DaysPerWeek)
	}
	if _, err := c.Get("nope"); err != ErrTemplateNotFound {
		t.Errorf("err = %v, want ErrTemplateNotFound", err)
	}
}

// TestCatalogImmutableAfterActivations verifies that activating templates and
// editing the resulting programs never changes the catalog.
func TestCatalogImmutableAfterActivations(t *testing.T) {
	c := Builtin()
	before := c.Templates()

	for range 3 {
		for _, tmpl := range c.Templates() {
			p := Activate(tmpl, time.Now())
			p.Name = "edited"
			p.Tags = append(p.Tags[:0], "mutated")
			if len(p.Days) > 0 {
				p.Days[0].Name = "edited day"
				if len(p.Days[0].Exercises) > 0 {
					p.Days[0].Exercises[0].Sets = 99
				}
			}
			if p.DurationWeeks != nil {
				*p.DurationWeeks = 99
			}
		}
	}

	if diff := cmp.Diff(before, c.Templates()); diff != "" {
		t.Errorf("catalog changed after activations (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(presets(), c.Templates()); diff != "" {
		t.Errorf("catalog differs from presets (-want +got):\n%s", diff)
	}
}

// TestReturnedTemplatesAreCopies verifies that mutating a template returned by
// an accessor does not leak into the catalog.
func TestReturnedTemplatesAreCopies(t *testing.T) {
	c := Builtin()
	got, _ := c.Recommend(models.LevelBeginner, models.GoalMuscle)
	got.Days[0].Exercises[0].ExerciseID = "changed"
	got.Schedule[0] = "changed"

	again, _ := c.Get(got.ID)
	if again.Days[0].Exercises[0].ExerciseID == "changed" {
		t.Error("exercise mutation leaked into catalog")
	}
	if again.Schedule[0] == "changed" {
		t.Error("schedule mutation leaked into catalog")
	}
}

// TestActivateCopyIndependence verifies the user program is a fresh deep copy
// with a new identity and a back-reference to its template.
func TestActivateCopyIndependence(t *testing.T) {
	c := Builtin()
	tmpl, _ := c.Get("upper-lower-hipertrofia")
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	a := Activate(tmpl, now)
	b := Activate(tmpl, now)

	if a.ID == tmpl.ID || a.ID == "" {
		t.Errorf("program id = %q, want a fresh id", a.ID)
	}
	if a.ID == b.ID {
		t.Error("two activations share an id")
	}
	if a.PresetID != tmpl.ID {
		t.Errorf("preset_id = %q, want %q", a.PresetID, tmpl.ID)
	}
	if a.IsPreset {
		t.Error("is_preset = true, want false")
	}
	if !a.CreatedAt.Equal(now) {
		t.Errorf("created_at = %v, want %v", a.CreatedAt, now)
	}

	a.Days[1].Exercises[2].Reps = "100"
	if b.Days[1].Exercises[2].Reps == "100" {
		t.Error("mutating one program changed another")
	}
	if tmpl.Days[1].Exercises[2].Reps == "100" {
		t.Error("mutating a program changed its template")
	}
}

// TestConfigTablesCoverEveryVariant fails when a new goal or level is added
// without a matching config arm.
func TestConfigTablesCoverEveryVariant(t *testing.T) {
	for _, g := range models.AllGoals {
		cfg, ok := GoalConfigFor(g)
		if !ok {
			t.Errorf("no goal config for %q", g)
			continue
		}
		if cfg.TracksBodyweight != (cfg.Direction != "") {
			t.Errorf("%q: tracks_bodyweight=%v but direction=%q", g, cfg.TracksBodyweight, cfg.Direction)
		}
		if _, ok := goalAliases[g]; !ok {
			t.Errorf("no program goal alias for %q", g)
		}
	}
	for _, l := range models.AllLevels {
		if _, ok := LevelConfigFor(l); !ok {
			t.Errorf("no level config for %q", l)
		}
	}
	if _, ok := GoalConfigFor("unknown"); ok {
		t.Error("unknown goal should have no config")
	}
	if _, ok := LevelConfigFor("unknown"); ok {
		t.Error("unknown level should have no config")
	}
}

// TestGoalConfigReturnsFreshSlices verifies callers cannot corrupt the table.
func TestGoalConfigReturnsFreshSlices(t *testing.T) {
	a, _ := GoalConfigFor(models.GoalStrength)
	a.StatPriority[0] = "changed"
	b, _ := GoalConfigFor(models.GoalStrength)
	if b.StatPriority[0] != models.StatOneRepMax {
		t.Errorf("stat_priority[0] = %q, want %q", b.StatPriority[0], models.StatOneRepMax)
	}
}
