// Package intake runs the onboarding question sequence. It collects raw
// answers step by step, gates forward progress on validation and, once the
// last step is complete, derives and commits the user profile exactly once.
package intake

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/claude/gymflow/internal/catalog"
	"github.com/claude/gymflow/internal/models"
	"github.com/claude/gymflow/internal/profile"
)

// Step is a position in the intake sequence.
type Step int

const (
	StepWelcome Step = iota + 1
	StepName
	StepExperience
	StepGoal
	StepMetrics
)

const (
	firstStep = StepWelcome
	lastStep  = StepMetrics
)

// Direction records the last transition. It only drives presentation.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Phase tracks the commit lifecycle of a session.
type Phase int

const (
	PhaseCollecting Phase = iota
	PhaseCommitting
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseCommitting:
		return "committing"
	case PhaseCompleted:
		return "completed"
	default:
		return "collecting"
	}
}

// Validation bounds.
const (
	MinNameLength = 2
	MaxWeight     = 500.0
)

// NameValid reports whether a name passes the step 2 gate.
func NameValid(name string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) >= MinNameLength
}

// WeightValid reports whether a current weight passes the step 5 gate. The
// bound applies to the raw number whatever the unit.
func WeightValid(s *string) bool {
	w := profile.ParseWeight(s)
	return w != nil && *w > 0 && *w < MaxWeight
}

// Committer persists a derived profile.
type Committer interface {
	Commit(ctx context.Context, p models.UserProfile) error
}

// Machine is one intake session. It is safe for concurrent use.
type Machine struct {
	committer  Committer
	onComplete func(models.UserProfile)
	log        *slog.Logger
	now        func() time.Time

	mu      sync.Mutex
	step    Step
	dir     Direction
	phase   Phase
	answers models.RawAnswers
	result  *models.UserProfile
	// derivedAt is fixed by the first commit attempt so retries commit a
	// profile with the same CreatedAt.
	derivedAt time.Time
}

// New starts a session at the welcome step. onComplete, if not nil, receives
// the committed profile.
func New(committer Committer, onComplete func(models.UserProfile), log *slog.Logger) *Machine {
	return &Machine{
		committer:  committer,
		onComplete: onComplete,
		log:        log,
		now:        time.Now,
		step:       firstStep,
		answers:    models.RawAnswers{Unit: models.UnitKg},
	}
}

// Step returns the current step.
func (m *Machine) Step() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

// Phase returns the commit phase.
func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Answers returns a copy of the answers collected so far.
func (m *Machine) Answers() models.RawAnswers {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.answers
}

// gateLocked reports whether the current step's input allows moving on.
// Steps 3 and 4 need a selection so Derive never sees a nil level or goal.
func (m *Machine) gateLocked() bool {
	switch m.step {
	case StepName:
		return NameValid(m.answers.Name)
	case StepExperience:
		return m.answers.Experience != nil
	case StepGoal:
		return m.answers.Goal != nil
	case StepMetrics:
		return WeightValid(m.answers.CurrentWeight)
	}
	return true
}

// CanAdvance reports whether the primary action on the current step is enabled.
func (m *Machine) CanAdvance() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase == PhaseCollecting && m.gateLocked()
}

// CanComplete reports whether Complete would start a commit.
func (m *Machine) CanComplete() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.canCompleteLocked()
}

func (m *Machine) canCompleteLocked() bool {
	return m.phase == PhaseCollecting && m.step == lastStep && m.gateLocked()
}

// NeedsGoalWeight reports whether the metrics step asks for a target weight.
func (m *Machine) NeedsGoalWeight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.needsGoalWeightLocked()
}

func (m *Machine) needsGoalWeightLocked() bool {
	if m.answers.Goal == nil {
		return false
	}
	cfg, ok := catalog.GoalConfigFor(*m.answers.Goal)
	return ok && cfg.TracksBodyweight
}

// Advance moves one step forward if the current gate passes. It reports
// whether the step changed.
func (m *Machine) Advance() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.advanceLocked()
}

func (m *Machine) advanceLocked() bool {
	if m.phase != PhaseCollecting || !m.gateLocked() {
		return false
	}
	m.dir = Forward
	if m.step >= lastStep {
		return false
	}
	m.step++
	return true
}

// Retreat moves one step back. It is never gated.
func (m *Machine) Retreat() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseCollecting {
		return false
	}
	m.dir = Backward
	if m.step <= firstStep {
		return false
	}
	m.step--
	return true
}

// SetName records the display name.
func (m *Machine) SetName(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseCollecting {
		return false
	}
	m.answers.Name = name
	return true
}

// SelectExperience records the level and advances. Only valid on the
// experience step.
func (m *Machine) SelectExperience(l models.ExperienceLevel) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseCollecting || m.step != StepExperience {
		return false
	}
	m.answers.Experience = &l
	return m.advanceLocked()
}

// SelectGoal records the goal and advances. Only valid on the goal step.
func (m *Machine) SelectGoal(g models.Goal) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseCollecting || m.step != StepGoal {
		return false
	}
	m.answers.Goal = &g
	return m.advanceLocked()
}

// SetMetrics records the unit and weights as typed. A nil weight clears it.
func (m *Machine) SetMetrics(unit models.WeightUnit, current, goal *string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseCollecting {
		return false
	}
	m.answers.Unit = unit
	m.answers.CurrentWeight = cloneString(current)
	m.answers.GoalWeight = cloneString(goal)
	return true
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Complete derives the profile, commits it and invokes the completion
// callback. It only runs from the metrics step with a valid weight, and only
// once: calls made while a commit is in flight or after it succeeded return
// false without doing anything. If the commit fails the session returns to
// collecting so it can be retried; the retry keeps the first attempt's
// derivation time.
func (m *Machine) Complete(ctx context.Context) (bool, error) {
	m.mu.Lock()
	if !m.canCompleteLocked() {
		m.mu.Unlock()
		return false, nil
	}
	m.phase = PhaseCommitting
	answers := m.answers
	if m.derivedAt.IsZero() {
		m.derivedAt = m.now()
	}
	at := m.derivedAt
	m.mu.Unlock()

	p := profile.Derive(answers, at)
	if err := m.committer.Commit(ctx, p); err != nil {
		m.log.Error("intake commit failed", "error", err)
		m.mu.Lock()
		m.phase = PhaseCollecting
		m.mu.Unlock()
		return true, fmt.Errorf("committing profile: %w", err)
	}

	m.mu.Lock()
	m.phase = PhaseCompleted
	m.result = &p
	m.mu.Unlock()

	if m.onComplete != nil {
		m.onComplete(p.Clone())
	}
	return true, nil
}

// Snapshot is a point-in-time view of a session.
type Snapshot struct {
	Step            Step                `json:"step"`
	Direction       string              `json:"direction"`
	Phase           string              `json:"phase"`
	Answers         models.RawAnswers   `json:"answers"`
	CanAdvance      bool                `json:"can_advance"`
	CanComplete     bool                `json:"can_complete"`
	NeedsGoalWeight bool                `json:"needs_goal_weight"`
	Profile         *models.UserProfile `json:"profile,omitempty"`
}

// Snapshot returns the current session state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Snapshot{
		Step:            m.step,
		Direction:       m.dir.String(),
		Phase:           m.phase.String(),
		Answers:         m.answers,
		CanAdvance:      m.phase == PhaseCollecting && m.gateLocked(),
		CanComplete:     m.canCompleteLocked(),
		NeedsGoalWeight: m.needsGoalWeightLocked(),
	}
	if m.result != nil {
		p := m.result.Clone()
		s.Profile = &p
	}
	return s
}
