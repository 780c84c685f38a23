package commit

import (
	"context"

	"github.com/claude/gymflow/internal/models"
)

// ProgramStore is the primary application state the committer writes to.
// Implementations must treat re-adding an existing body metric id or
// re-unlocking a badge as a no-op.
type ProgramStore interface {
	AddProgram(ctx context.Context, p models.UserProgram) error
	SetActiveProgram(ctx context.Context, id string) error
	// ActiveProgram returns nil when no program is active.
	ActiveProgram(ctx context.Context) (*models.UserProgram, error)

	UpdateUser(ctx context.Context, p models.UserProfile) error
	// User returns nil before the first commit.
	User(ctx context.Context) (*models.UserProfile, error)

	UpdateSettings(ctx context.Context, patch models.SettingsPatch) error
	AddBodyMetric(ctx context.Context, m models.BodyMetric) error
	UnlockBadges(ctx context.Context, badges []models.Badge) error
	Badges(ctx context.Context) ([]models.Badge, error)
}

// SlotStore is a key/value store holding legacy JSON state containers.
type SlotStore interface {
	// Get returns ok=false when the key has never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}
