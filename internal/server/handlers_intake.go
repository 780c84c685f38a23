package server

import (
	"context"
	"net/http"

	"github.com/claude/gymflow/internal/commit"
	"github.com/claude/gymflow/internal/intake"
	"github.com/claude/gymflow/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type sessionResponse struct {
	ID string `json:"id"`
	intake.Snapshot
}

func (s *Server) handleIntakeStart(w http.ResponseWriter, r *http.Request) {
	info := userInfoFromContext(r)
	store, ok := s.storeFor(w, r)
	if !ok {
		return
	}

	id := uuid.NewString()
	log := s.log.With("session", id, "user", info.Login)
	c := commit.New(s.catalog, store, s.slots, s.slotKeysFor(info), log)
	m := intake.New(c, func(p models.UserProfile) {
		log.Info("onboarding completed", "level", p.Level, "goal", p.Goal)
	}, log)

	s.sessions.add(id, &session{machine: m, owner: info.Login, started: s.sessions.now()})
	writeJSON(w, http.StatusCreated, sessionResponse{ID: id, Snapshot: m.Snapshot()})
}

// session resolves the {id} URL parameter, writing a 404 when unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (string, *intake.Machine, bool) {
	id := chi.URLParam(r, "id")
	sess, ok := s.sessions.get(id, userInfoFromContext(r).Login)
	if !ok {
		writeError(w, http.StatusNotFound, "intake session not found")
		return "", nil, false
	}
	return id, sess.machine, true
}

func (s *Server) handleIntakeGet(w http.ResponseWriter, r *http.Request) {
	id, m, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Snapshot: m.Snapshot()})
}

func (s *Server) handleIntakeAdvance(w http.ResponseWriter, r *http.Request) {
	id, m, ok := s.session(w, r)
	if !ok {
		return
	}
	if !m.CanAdvance() {
		writeError(w, http.StatusConflict, "current step is incomplete")
		return
	}
	m.Advance()
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Snapshot: m.Snapshot()})
}

func (s *Server) handleIntakeRetreat(w http.ResponseWriter, r *http.Request) {
	id, m, ok := s.session(w, r)
	if !ok {
		return
	}
	m.Retreat()
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Snapshot: m.Snapshot()})
}

type nameRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleIntakeName(w http.ResponseWriter, r *http.Request) {
	id, m, ok := s.session(w, r)
	if !ok {
		return
	}
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !m.SetName(req.Name) {
		writeError(w, http.StatusConflict, "intake already submitted")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Snapshot: m.Snapshot()})
}

type experienceRequest struct {
	Experience string `json:"experience"`
}

func (s *Server) handleIntakeExperience(w http.ResponseWriter, r *http.Request) {
	id, m, ok := s.session(w, r)
	if !ok {
		return
	}
	var req experienceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	level, err := models.ParseLevel(req.Experience)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !m.SelectExperience(level) {
		writeError(w, http.StatusConflict, "not on the experience step")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Snapshot: m.Snapshot()})
}

type goalRequest struct {
	Goal string `json:"goal"`
}

func (s *Server) handleIntakeGoal(w http.ResponseWriter, r *http.Request) {
	id, m, ok := s.session(w, r)
	if !ok {
		return
	}
	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	goal, err := models.ParseGoal(req.Goal)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !m.SelectGoal(goal) {
		writeError(w, http.StatusConflict, "not on the goal step")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Snapshot: m.Snapshot()})
}

// metricsRequest keeps weights as strings: the gate and the derivation parse
// them, and a bad value must reach the gate rather than fail decoding.
type metricsRequest struct {
	Unit          string  `json:"unit"`
	CurrentWeight *string `json:"current_weight"`
	GoalWeight    *string `json:"goal_weight"`
}

func (s *Server) handleIntakeMetrics(w http.ResponseWriter, r *http.Request) {
	id, m, ok := s.session(w, r)
	if !ok {
		return
	}
	var req metricsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	unit, err := models.ParseUnit(req.Unit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !m.SetMetrics(unit, req.CurrentWeight, req.GoalWeight) {
		writeError(w, http.StatusConflict, "intake already submitted")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Snapshot: m.Snapshot()})
}

// handleIntakeComplete commits the session. The commit outlives a client
// disconnect so it never stops halfway.
func (s *Server) handleIntakeComplete(w http.ResponseWriter, r *http.Request) {
	id, m, ok := s.session(w, r)
	if !ok {
		return
	}
	started, err := m.Complete(context.WithoutCancel(r.Context()))
	if !started {
		writeError(w, http.StatusConflict, "intake is not ready or was already submitted")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Snapshot: m.Snapshot()})
}
