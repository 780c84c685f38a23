// Package state is the in-memory application state owner. One Store is
// created per process and passed explicitly to whoever needs it.
package state

import (
	"context"
	"slices"
	"sync"

	"github.com/claude/gymflow/internal/models"
)

// ErrProgramNotFound is returned when activating an unknown program id.
var ErrProgramNotFound = models.ErrProgramNotFound

// Store keeps the user's profile, programs, settings, body metrics and badges.
// All returned values are copies.
type Store struct {
	mu       sync.RWMutex
	user     *models.UserProfile
	programs []models.UserProgram
	activeID string
	settings models.Settings
	metrics  []models.BodyMetric
	badges   []models.Badge
}

// New returns an empty store with default settings.
func New() *Store {
	return &Store{settings: models.DefaultSettings}
}

func (s *Store) AddProgram(_ context.Context, p models.UserProgram) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.programs = append(s.programs, p.Clone())
	return nil
}

// SetActiveProgram points the active program at id, which must already exist.
func (s *Store) SetActiveProgram(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.programs {
		if p.ID == id {
			s.activeID = id
			return nil
		}
	}
	return ErrProgramNotFound
}

func (s *Store) ActiveProgram(_ context.Context) (*models.UserProgram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeID == "" {
		return nil, nil
	}
	for _, p := range s.programs {
		if p.ID == s.activeID {
			c := p.Clone()
			return &c, nil
		}
	}
	return nil, nil
}

// Programs returns every user program in creation order.
func (s *Store) Programs(_ context.Context) ([]models.UserProgram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.UserProgram, len(s.programs))
	for i, p := range s.programs {
		out[i] = p.Clone()
	}
	return out, nil
}

// DeleteProgram removes a program, clearing the active pointer if needed.
func (s *Store) DeleteProgram(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.programs, func(p models.UserProgram) bool { return p.ID == id })
	if i < 0 {
		return ErrProgramNotFound
	}
	s.programs = slices.Delete(s.programs, i, i+1)
	if s.activeID == id {
		s.activeID = ""
	}
	return nil
}

func (s *Store) UpdateUser(_ context.Context, p models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := p.Clone()
	s.user = &c
	return nil
}

func (s *Store) User(_ context.Context) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, nil
	}
	c := s.user.Clone()
	return &c, nil
}

func (s *Store) UpdateSettings(_ context.Context, patch models.SettingsPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = patch.Apply(s.settings)
	return nil
}

// Settings returns the current global settings.
func (s *Store) Settings(_ context.Context) (models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

// AddBodyMetric appends m unless a metric with the same id exists.
func (s *Store) AddBodyMetric(_ context.Context, m models.BodyMetric) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.metrics {
		if existing.ID == m.ID {
			return nil
		}
	}
	s.metrics = append(s.metrics, m)
	return nil
}

// BodyMetrics returns every recorded sample in insertion order.
func (s *Store) BodyMetrics(_ context.Context) ([]models.BodyMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.metrics), nil
}

// UnlockBadges records badges not yet unlocked; already unlocked ones keep
// their original timestamp.
func (s *Store) UnlockBadges(_ context.Context, badges []models.Badge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range badges {
		if slices.ContainsFunc(s.badges, func(u models.Badge) bool { return u.ID == b.ID }) {
			continue
		}
		s.badges = append(s.badges, b)
	}
	return nil
}

func (s *Store) Badges(_ context.Context) ([]models.Badge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.badges), nil
}
