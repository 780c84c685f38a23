// Package commit persists a finished onboarding profile and applies the
// personalization that follows from it.
package commit

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/claude/gymflow/internal/catalog"
	"github.com/claude/gymflow/internal/models"
	"go.uber.org/multierr"
)

// DefaultLegacySlots are the slot keys older app versions stored state under.
var DefaultLegacySlots = []string{"fitness-app-storage", "fitness-store"}

// Committer writes a profile to every state location. Commit is safe to
// repeat with the same profile: the resulting state is the same as after a
// single commit.
type Committer struct {
	catalog  *catalog.Catalog
	store    ProgramStore
	slots    SlotStore
	slotKeys []string
	log      *slog.Logger
	now      func() time.Time
}

// New creates a Committer. slots may be nil when no legacy storage exists.
func New(cat *catalog.Catalog, store ProgramStore, slots SlotStore, slotKeys []string, log *slog.Logger) *Committer {
	return &Committer{
		catalog:  cat,
		store:    store,
		slots:    slots,
		slotKeys: slotKeys,
		log:      log,
		now:      time.Now,
	}
}

// Commit runs every step in order. A failing step does not stop later ones.
// Legacy slot failures are logged and dropped; failures of the remaining
// steps are returned combined.
func (c *Committer) Commit(ctx context.Context, p models.UserProfile) error {
	now := c.now()

	c.writeLegacySlots(ctx, p)

	var errs error
	if err := c.store.UpdateUser(ctx, p); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("updating user: %w", err))
	}
	errs = multierr.Append(errs, c.personalize(ctx, p, now))
	errs = multierr.Append(errs, c.recordWeight(ctx, p, now))
	errs = multierr.Append(errs, c.unlockFirstLogin(ctx, now))

	if errs == nil {
		c.log.Info("profile committed", "level", p.Level, "goal", p.Goal)
	}
	return errs
}

func (c *Committer) writeLegacySlots(ctx context.Context, p models.UserProfile) {
	if c.slots == nil {
		return
	}
	for _, key := range c.slotKeys {
		raw, ok, err := c.slots.Get(ctx, key)
		if err != nil {
			c.log.Warn("reading legacy slot", "slot", key, "error", err)
			continue
		}
		if !ok {
			continue
		}

		merged, recovered, err := mergeUser(raw, p)
		if err != nil {
			c.log.Warn("merging legacy slot", "slot", key, "error", err)
			continue
		}
		if recovered {
			c.log.Warn("legacy slot was malformed, rewriting", "slot", key)
		}
		if err := c.slots.Put(ctx, key, merged); err != nil {
			c.log.Warn("writing legacy slot", "slot", key, "error", err)
		}
	}
}

// personalize activates the recommended program unless it is already the
// active one, then applies the goal's rest timer and the chosen unit.
func (c *Committer) personalize(ctx context.Context, p models.UserProfile, now time.Time) error {
	var errs error

	if tmpl, ok := c.catalog.Recommend(p.Level, p.Goal); ok {
		errs = multierr.Append(errs, c.activate(ctx, tmpl, now))
	} else {
		c.log.Info("no program recommended", "level", p.Level, "goal", p.Goal)
	}

	rest := p.RestTimerDefault
	unit := p.Unit
	if err := c.store.UpdateSettings(ctx, models.SettingsPatch{RestTimerDefault: &rest, WeightUnit: &unit}); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("updating settings: %w", err))
	}
	return errs
}

func (c *Committer) activate(ctx context.Context, tmpl models.ProgramTemplate, now time.Time) error {
	active, err := c.store.ActiveProgram(ctx)
	if err != nil {
		return fmt.Errorf("reading active program: %w", err)
	}
	if active != nil && active.PresetID == tmpl.ID {
		return nil
	}

	prog := catalog.Activate(tmpl, now)
	if err := c.store.AddProgram(ctx, prog); err != nil {
		return fmt.Errorf("adding program %s: %w", tmpl.ID, err)
	}
	if err := c.store.SetActiveProgram(ctx, prog.ID); err != nil {
		return fmt.Errorf("activating program %s: %w", prog.ID, err)
	}
	return nil
}

// OnboardingMetricID identifies the bodyweight sample recorded for a profile,
// so repeated commits of that profile address the same sample.
func OnboardingMetricID(p models.UserProfile) string {
	return models.MetricSourceOnboarding + "-" + strconv.FormatInt(p.CreatedAt.UnixNano(), 10)
}

func (c *Committer) recordWeight(ctx context.Context, p models.UserProfile, now time.Time) error {
	if p.CurrentWeight == nil {
		return nil
	}
	m := models.BodyMetric{
		ID:     OnboardingMetricID(p),
		Weight: *p.CurrentWeight,
		Unit:   p.Unit,
		Date:   now,
		Source: models.MetricSourceOnboarding,
	}
	if err := c.store.AddBodyMetric(ctx, m); err != nil {
		return fmt.Errorf("adding body metric: %w", err)
	}
	return nil
}

func (c *Committer) unlockFirstLogin(ctx context.Context, now time.Time) error {
	unlocked, err := c.store.Badges(ctx)
	if err != nil {
		return fmt.Errorf("reading badges: %w", err)
	}
	for _, b := range unlocked {
		if b.ID == models.BadgeFirstLogin {
			return nil
		}
	}

	badge, ok := models.BadgeByID(models.BadgeFirstLogin)
	if !ok {
		return fmt.Errorf("badge %s missing from catalog", models.BadgeFirstLogin)
	}
	badge.UnlockedAt = now
	if err := c.store.UnlockBadges(ctx, []models.Badge{badge}); err != nil {
		return fmt.Errorf("unlocking badges: %w", err)
	}
	return nil
}
