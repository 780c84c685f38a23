package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/gymflow/internal/catalog"
	"github.com/claude/gymflow/internal/models"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestPrograms verifies the filter is sent as goal, level and days query
// params and the array response is decoded.
func TestPrograms(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/programs": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if got := q.Get("goal"); got != "fuerza" {
				t.Errorf("goal=%q, want fuerza", got)
			}
			if got := q.Get("level"); got != "intermedio" {
				t.Errorf("level=%q, want intermedio", got)
			}
			if got := q.Get("days"); got != "3" {
				t.Errorf("days=%q, want 3", got)
			}
			writeTestJSON(t, w, []models.ProgramTemplate{{ID: "fuerza-5x5", DaysPerWeek: 3}})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL + "/")
	programs, err := client.Programs(context.Background(), catalog.ProgramFilter{
		Goal:        models.ProgramGoalStrength,
		Level:       models.LevelIntermediate,
		DaysPerWeek: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(programs) != 1 || programs[0].ID != "fuerza-5x5" {
		t.Errorf("programs = %+v, want [fuerza-5x5]", programs)
	}
}

// TestProgramsEmptyFilter verifies no query string is sent for a zero filter.
func TestProgramsEmptyFilter(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/programs": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.RawQuery != "" {
				t.Errorf("query = %q, want empty", r.URL.RawQuery)
			}
			writeTestJSON(t, w, []models.ProgramTemplate{})
		},
	})
	defer ts.Close()

	programs, err := NewHTTPClient(ts.URL).Programs(context.Background(), catalog.ProgramFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(programs) != 0 {
		t.Errorf("got %d programs, want 0", len(programs))
	}
}

// TestProgramNotFound verifies a 404 maps to catalog.ErrTemplateNotFound.
func TestProgramNotFound(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/programs/nope": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"program not found"}`, http.StatusNotFound)
		},
	})
	defer ts.Close()

	_, err := NewHTTPClient(ts.URL).Program(context.Background(), "nope")
	if !errors.Is(err, catalog.ErrTemplateNotFound) {
		t.Errorf("err = %v, want ErrTemplateNotFound", err)
	}
}

// TestRecommend verifies level and goal are sent as stored tags.
func TestRecommend(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/programs/recommended": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if got := q.Get("level"); got != "principiante" {
				t.Errorf("level=%q, want principiante", got)
			}
			if got := q.Get("goal"); got != "volumen" {
				t.Errorf("goal=%q, want volumen", got)
			}
			writeTestJSON(t, w, models.ProgramTemplate{ID: "fullbody-principiante"})
		},
	})
	defer ts.Close()

	got, err := NewHTTPClient(ts.URL).Recommend(context.Background(), models.LevelBeginner, models.GoalMuscle)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "fullbody-principiante" {
		t.Errorf("id = %q, want fullbody-principiante", got.ID)
	}
}

// TestProfileBeforeOnboarding verifies a 404 profile is reported as nil, not an error.
func TestProfileBeforeOnboarding(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/profile": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"onboarding not completed"}`, http.StatusNotFound)
		},
	})
	defer ts.Close()

	p, err := NewHTTPClient(ts.URL).Profile(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Errorf("profile = %+v, want nil", p)
	}
}

// TestSettingsServerError verifies non-200 responses surface as errors.
func TestSettingsServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/settings": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	if _, err := NewHTTPClient(ts.URL).Settings(context.Background()); err == nil {
		t.Error("expected error for 500 response")
	}
}
