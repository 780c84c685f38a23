package intake

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/claude/gymflow/internal/catalog"
	"github.com/claude/gymflow/internal/commit"
	"github.com/claude/gymflow/internal/models"
	"github.com/claude/gymflow/internal/state"
)

type recordingCommitter struct {
	mu       sync.Mutex
	profiles []models.UserProfile
	err      error
}

func (c *recordingCommitter) Commit(_ context.Context, p models.UserProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.profiles = append(c.profiles, p)
	return nil
}

func (c *recordingCommitter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.profiles)
}

func newMachine(c Committer, onComplete func(models.UserProfile)) *Machine {
	m := New(c, onComplete, slog.New(slog.DiscardHandler))
	m.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return m
}

func str(s string) *string { return &s }

// toMetrics drives a fresh machine to the metrics step.
func toMetrics(t *testing.T, m *Machine, level models.ExperienceLevel, goal models.Goal) {
	t.Helper()
	if !m.Advance() {
		t.Fatal("advance from welcome failed")
	}
	m.SetName("Ana López")
	if !m.Advance() {
		t.Fatal("advance from name failed")
	}
	if !m.SelectExperience(level) {
		t.Fatal("SelectExperience did not advance")
	}
	if !m.SelectGoal(goal) {
		t.Fatal("SelectGoal did not advance")
	}
	if got := m.Step(); got != StepMetrics {
		t.Fatalf("step = %d, want %d", got, StepMetrics)
	}
}

func TestNameValid(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"", false},
		{"A", false},
		{"Al", true},
		{"  A  ", false},
		{"   ", false},
		{"Jo", true},
		{"Ñu", true},
		{"é", false},
	}
	for _, tt := range tests {
		if got := NameValid(tt.name); got != tt.want {
			t.Errorf("NameValid(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWeightValid(t *testing.T) {
	tests := []struct {
		in   *string
		want bool
	}{
		{nil, false},
		{str(""), false},
		{str("0"), false},
		{str("0.1"), true},
		{str("80.5"), true},
		{str("80,5"), true},
		{str("499.9"), true},
		{str("500"), false},
		{str("600"), false},
		{str("-3"), false},
		{str("abc"), false},
	}
	for _, tt := range tests {
		got := WeightValid(tt.in)
		if got != tt.want {
			label := "<nil>"
			if tt.in != nil {
				label = *tt.in
			}
			t.Errorf("WeightValid(%q) = %v, want %v", label, got, tt.want)
		}
	}
}

// TestAdvanceGating verifies that the primary action is blocked until the
// current step's input is valid.
func TestAdvanceGating(t *testing.T) {
	m := newMachine(&recordingCommitter{}, nil)

	if !m.CanAdvance() {
		t.Error("welcome step should always allow advance")
	}
	m.Advance()

	m.SetName("A")
	if m.Advance() {
		t.Error("advanced past name with one character")
	}
	if m.Step() != StepName {
		t.Errorf("step = %d, want %d", m.Step(), StepName)
	}
	m.SetName("Al")
	if !m.Advance() {
		t.Error("two characters should pass the name gate")
	}

	if m.Advance() {
		t.Error("advanced past experience with nothing selected")
	}
	m.SelectExperience(models.LevelBeginner)
	if m.Advance() {
		t.Error("advanced past goal with nothing selected")
	}
	if m.Step() != StepGoal {
		t.Errorf("step = %d, want %d", m.Step(), StepGoal)
	}
}

func TestRetreatClampsAndIsUngated(t *testing.T) {
	m := newMachine(&recordingCommitter{}, nil)

	if m.Retreat() {
		t.Error("Retreat on first step reported a change")
	}
	if got := m.Snapshot().Direction; got != "backward" {
		t.Errorf("direction = %q, want backward", got)
	}

	m.Advance()
	m.SetName("")
	if !m.Retreat() {
		t.Error("Retreat should ignore the name gate")
	}
	if m.Step() != StepWelcome {
		t.Errorf("step = %d, want %d", m.Step(), StepWelcome)
	}
}

func TestSelectionOnlyOnItsStep(t *testing.T) {
	m := newMachine(&recordingCommitter{}, nil)
	if m.SelectExperience(models.LevelBeginner) {
		t.Error("SelectExperience accepted on welcome step")
	}
	if m.SelectGoal(models.GoalStrength) {
		t.Error("SelectGoal accepted on welcome step")
	}
	if a := m.Answers(); a.Experience != nil || a.Goal != nil {
		t.Errorf("answers changed: %+v", a)
	}
}

func TestAdvanceAtLastStepStays(t *testing.T) {
	m := newMachine(&recordingCommitter{}, nil)
	toMetrics(t, m, models.LevelBeginner, models.GoalMuscle)
	m.SetMetrics(models.UnitKg, str("80"), nil)
	if m.Advance() {
		t.Error("Advance on the last step reported a change")
	}
	if m.Step() != StepMetrics {
		t.Errorf("step = %d, want %d", m.Step(), StepMetrics)
	}
}

// TestCompleteWeightBoundary walks the 0, 600, 80.5 sequence: only the last
// value enables completion.
func TestCompleteWeightBoundary(t *testing.T) {
	c := &recordingCommitter{}
	m := newMachine(c, nil)
	toMetrics(t, m, models.LevelIntermediate, models.GoalStrength)

	for _, w := range []string{"0", "600"} {
		m.SetMetrics(models.UnitKg, str(w), nil)
		if m.CanComplete() {
			t.Errorf("CanComplete with weight %s", w)
		}
		started, err := m.Complete(context.Background())
		if started || err != nil {
			t.Errorf("Complete with weight %s = %v, %v", w, started, err)
		}
	}
	if c.count() != 0 {
		t.Fatalf("committed %d times with invalid weights", c.count())
	}

	m.SetMetrics(models.UnitKg, str("80.5"), nil)
	started, err := m.Complete(context.Background())
	if !started || err != nil {
		t.Fatalf("Complete = %v, %v", started, err)
	}
	if c.count() != 1 {
		t.Errorf("commits = %d, want 1", c.count())
	}
}

func TestNeedsGoalWeight(t *testing.T) {
	tests := []struct {
		goal models.Goal
		want bool
	}{
		{models.GoalStrength, false},
		{models.GoalMuscle, true},
		{models.GoalFatLoss, true},
		{models.GoalMaintenance, true},
	}
	for _, tt := range tests {
		m := newMachine(&recordingCommitter{}, nil)
		toMetrics(t, m, models.LevelBeginner, tt.goal)
		if got := m.NeedsGoalWeight(); got != tt.want {
			t.Errorf("NeedsGoalWeight(%s) = %v, want %v", tt.goal, got, tt.want)
		}
	}
}

// TestCompleteEndToEnd verifies the derived profile reaches both the
// committer and the completion callback.
func TestCompleteEndToEnd(t *testing.T) {
	c := &recordingCommitter{}
	var got []models.UserProfile
	m := newMachine(c, func(p models.UserProfile) { got = append(got, p) })

	toMetrics(t, m, models.LevelBeginner, models.GoalFatLoss)
	m.SetMetrics(models.UnitKg, str("72,4"), str("65"))

	if _, err := m.Complete(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("callback invoked %d times, want 1", len(got))
	}
	p := got[0]
	if p.FirstName != "Ana" {
		t.Errorf("FirstName = %q, want %q", p.FirstName, "Ana")
	}
	if p.CurrentWeight == nil || *p.CurrentWeight != 72.4 {
		t.Errorf("CurrentWeight = %v, want 72.4", p.CurrentWeight)
	}
	if p.GoalWeight == nil || *p.GoalWeight != 65 {
		t.Errorf("GoalWeight = %v, want 65", p.GoalWeight)
	}
	if p.RestTimerDefault != 60 {
		t.Errorf("RestTimerDefault = %d, want 60", p.RestTimerDefault)
	}
	if !p.Completed {
		t.Error("profile not marked completed")
	}

	snap := m.Snapshot()
	if snap.Phase != "completed" || snap.Profile == nil {
		t.Errorf("snapshot = %+v", snap)
	}
	if m.SetName("Other") {
		t.Error("answers still editable after completion")
	}
	if started, _ := m.Complete(context.Background()); started {
		t.Error("second Complete started another commit")
	}
	if c.count() != 1 {
		t.Errorf("commits = %d, want 1", c.count())
	}
}

type blockingCommitter struct {
	entered chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (c *blockingCommitter) Commit(ctx context.Context, _ models.UserProfile) error {
	c.calls.Add(1)
	close(c.entered)
	select {
	case <-c.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TestCompleteSingleFlight verifies a second completion attempt while a
// commit is in flight is dropped.
func TestCompleteSingleFlight(t *testing.T) {
	c := &blockingCommitter{entered: make(chan struct{}), release: make(chan struct{})}
	var callbacks atomic.Int32
	m := newMachine(c, func(models.UserProfile) { callbacks.Add(1) })
	toMetrics(t, m, models.LevelAdvanced, models.GoalStrength)
	m.SetMetrics(models.UnitLbs, str("180"), nil)

	done := make(chan error, 1)
	go func() {
		_, err := m.Complete(context.Background())
		done <- err
	}()
	<-c.entered

	if m.Phase() != PhaseCommitting {
		t.Errorf("phase = %v, want committing", m.Phase())
	}
	if started, err := m.Complete(context.Background()); started || err != nil {
		t.Errorf("concurrent Complete = %v, %v; want false, nil", started, err)
	}
	if m.Retreat() {
		t.Error("Retreat allowed while committing")
	}

	close(c.release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if n := c.calls.Load(); n != 1 {
		t.Errorf("commit calls = %d, want 1", n)
	}
	if n := callbacks.Load(); n != 1 {
		t.Errorf("callbacks = %d, want 1", n)
	}
}

// TestCompleteErrorAllowsRetry verifies a failed commit leaves the session
// collecting with no callback.
func TestCompleteErrorAllowsRetry(t *testing.T) {
	boom := errors.New("disk full")
	c := &recordingCommitter{err: boom}
	called := false
	m := newMachine(c, func(models.UserProfile) { called = true })
	toMetrics(t, m, models.LevelBeginner, models.GoalMaintenance)
	m.SetMetrics(models.UnitKg, str("70"), nil)

	started, err := m.Complete(context.Background())
	if !started || !errors.Is(err, boom) {
		t.Fatalf("Complete = %v, %v; want true, %v", started, err, boom)
	}
	if called {
		t.Error("callback invoked after failed commit")
	}
	if m.Phase() != PhaseCollecting {
		t.Errorf("phase = %v, want collecting", m.Phase())
	}

	c.mu.Lock()
	c.err = nil
	c.mu.Unlock()
	if _, err := m.Complete(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !called {
		t.Error("callback not invoked after successful retry")
	}
}

// flakyBadgeStore fails the first UnlockBadges call.
type flakyBadgeStore struct {
	*state.Store
	failed bool
}

func (s *flakyBadgeStore) UnlockBadges(ctx context.Context, badges []models.Badge) error {
	if !s.failed {
		s.failed = true
		return errors.New("transient")
	}
	return s.Store.UnlockBadges(ctx, badges)
}

// TestCompleteRetryRecordsWeightOnce verifies a retry after a partly failed
// commit re-commits the same profile, so the onboarding weight sample and the
// activated program are not duplicated.
func TestCompleteRetryRecordsWeightOnce(t *testing.T) {
	store := &flakyBadgeStore{Store: state.New()}
	c := commit.New(catalog.Builtin(), store, nil, nil, slog.New(slog.DiscardHandler))

	var profiles []models.UserProfile
	m := newMachine(c, func(p models.UserProfile) { profiles = append(profiles, p) })
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	toMetrics(t, m, models.LevelBeginner, models.GoalFatLoss)
	m.SetMetrics(models.UnitKg, str("72,4"), str("65"))

	if _, err := m.Complete(context.Background()); err == nil {
		t.Fatal("first Complete succeeded, want badge error")
	}
	if _, err := m.Complete(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}

	ctx := context.Background()
	metrics, err := store.BodyMetrics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(metrics) != 1 {
		t.Errorf("onboarding metrics after retry = %d, want 1", len(metrics))
	}
	programs, err := store.Programs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(programs) != 1 {
		t.Errorf("programs after retry = %d, want 1", len(programs))
	}
	badges, err := store.Badges(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(badges) != 1 {
		t.Errorf("badges after retry = %d, want 1", len(badges))
	}
	if len(profiles) != 1 {
		t.Fatalf("callback calls = %d, want 1", len(profiles))
	}
	if len(metrics) == 1 && metrics[0].ID != commit.OnboardingMetricID(profiles[0]) {
		t.Errorf("metric id = %q, want %q", metrics[0].ID, commit.OnboardingMetricID(profiles[0]))
	}
}
