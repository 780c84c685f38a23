package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/claude/gymflow/internal/catalog"
	"github.com/claude/gymflow/internal/models"
	"github.com/go-chi/chi/v5"
)

// programView is a catalog template annotated for the caller.
type programView struct {
	models.ProgramTemplate
	Recommended bool `json:"recommended"`
}

// parseProgramFilter reads goal, level and days from the query string. Goals
// may be given as a profile goal or as a template goal tag.
func parseProgramFilter(r *http.Request) (catalog.ProgramFilter, error) {
	var f catalog.ProgramFilter
	q := r.URL.Query()

	if v := q.Get("goal"); v != "" {
		if g, err := models.ParseGoal(v); err == nil {
			f.Goal = catalog.ProgramGoalFor(g)
		} else {
			f.Goal = models.ProgramGoal(strings.ToLower(strings.TrimSpace(v)))
		}
	}
	if v := q.Get("level"); v != "" {
		l, err := models.ParseLevel(v)
		if err != nil {
			return f, err
		}
		f.Level = l
	}
	if v := q.Get("days"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 1 || d > 7 {
			return f, errors.New("days must be between 1 and 7")
		}
		f.DaysPerWeek = d
	}
	return f, nil
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	f, err := parseProgramFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	store, ok := s.storeFor(w, r)
	if !ok {
		return
	}
	profile, err := store.User(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	templates := s.catalog.Filter(f)
	out := make([]programView, len(templates))
	for i, t := range templates {
		out[i] = programView{ProgramTemplate: t}
		if profile != nil {
			out[i].Recommended = s.catalog.IsRecommended(t.ID, profile.Level, profile.Goal)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleRecommendedProgram returns the best template for explicit level and
// goal query parameters, or for the caller's committed profile.
func (s *Server) handleRecommendedProgram(w http.ResponseWriter, r *http.Request) {
	level, goal, ok := s.recommendationInput(w, r)
	if !ok {
		return
	}
	t, found := s.catalog.Recommend(level, goal)
	if !found {
		writeError(w, http.StatusNotFound, "no program available")
		return
	}
	writeJSON(w, http.StatusOK, programView{ProgramTemplate: t, Recommended: true})
}

func (s *Server) recommendationInput(w http.ResponseWriter, r *http.Request) (models.ExperienceLevel, models.Goal, bool) {
	q := r.URL.Query()
	if q.Get("level") != "" || q.Get("goal") != "" {
		level, err := models.ParseLevel(q.Get("level"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return "", "", false
		}
		goal, err := models.ParseGoal(q.Get("goal"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return "", "", false
		}
		return level, goal, true
	}

	store, ok := s.storeFor(w, r)
	if !ok {
		return "", "", false
	}
	profile, err := store.User(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return "", "", false
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "onboarding not completed")
		return "", "", false
	}
	return profile.Level, profile.Goal, true
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	t, err := s.catalog.Get(chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrTemplateNotFound) {
		writeError(w, http.StatusNotFound, "program not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleActivateProgram copies a catalog template into the caller's programs
// and makes it the active one.
func (s *Server) handleActivateProgram(w http.ResponseWriter, r *http.Request) {
	t, err := s.catalog.Get(chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrTemplateNotFound) {
		writeError(w, http.StatusNotFound, "program not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	store, ok := s.storeFor(w, r)
	if !ok {
		return
	}

	p := catalog.Activate(t, time.Now())
	if err := store.AddProgram(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := store.SetActiveProgram(r.Context(), p.ID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log.Info("program activated", "preset", t.ID, "program", p.ID)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUserPrograms(w http.ResponseWriter, r *http.Request) {
	store, ok := s.storeFor(w, r)
	if !ok {
		return
	}
	programs, err := store.Programs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	active, err := store.ActiveProgram(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := struct {
		ActiveID string               `json:"active_id,omitempty"`
		Programs []models.UserProgram `json:"programs"`
	}{Programs: programs}
	if active != nil {
		resp.ActiveID = active.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	store, ok := s.storeFor(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	err := store.DeleteProgram(r.Context(), id)
	if errors.Is(err, models.ErrProgramNotFound) {
		writeError(w, http.StatusNotFound, "program not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log.Info("program deleted", "program", id)
	w.WriteHeader(http.StatusNoContent)
}
