package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/gymflow/internal/models"
	"github.com/jackc/pgx/v5"
)

// AddBodyMetric inserts a bodyweight sample. A repeated id is ignored.
func (s *UserStore) AddBodyMetric(ctx context.Context, m models.BodyMetric) error {
	_, err := s.db.Pool.Exec(ctx,
		`INSERT INTO body_metrics (id, user_id, weight, unit, date, source)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT DO NOTHING`,
		m.ID, s.userID, m.Weight, string(m.Unit), m.Date, m.Source)
	if err != nil {
		return fmt.Errorf("inserting body metric: %w", err)
	}
	return nil
}

// BodyMetrics returns every sample of the user, oldest first.
func (s *UserStore) BodyMetrics(ctx context.Context) ([]models.BodyMetric, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT id, weight, unit, date, source FROM body_metrics
		 WHERE user_id = $1 ORDER BY date, id`, s.userID)
	if err != nil {
		return nil, fmt.Errorf("querying body metrics: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.BodyMetric, error) {
		var (
			m    models.BodyMetric
			unit string
		)
		err := row.Scan(&m.ID, &m.Weight, &unit, &m.Date, &m.Source)
		m.Unit = models.WeightUnit(unit)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning body metrics: %w", err)
	}
	return out, nil
}

// UnlockBadges records badges in one statement. Already unlocked badges keep
// their original timestamp.
func (s *UserStore) UnlockBadges(ctx context.Context, badges []models.Badge) error {
	if len(badges) == 0 {
		return nil
	}

	query, args := unlockBadgesQuery(s.userID, badges)
	if _, err := s.db.Pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("unlocking badges: %w", err)
	}
	return nil
}

func unlockBadgesQuery(userID int, badges []models.Badge) (string, []any) {
	query := `INSERT INTO badges (user_id, badge_id, unlocked_at) VALUES `
	args := make([]any, 0, len(badges)*3)
	valueStrings := make([]string, 0, len(badges))

	for i, b := range badges {
		base := i * 3
		valueStrings = append(valueStrings, fmt.Sprintf("($%d,$%d,$%d)", base+1, base+2, base+3))
		args = append(args, userID, b.ID, b.UnlockedAt)
	}
	return query + strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING", args
}

// Badges returns the unlocked badges with their catalog metadata.
func (s *UserStore) Badges(ctx context.Context) ([]models.Badge, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT badge_id, unlocked_at FROM badges WHERE user_id = $1 ORDER BY unlocked_at, badge_id`,
		s.userID)
	if err != nil {
		return nil, fmt.Errorf("querying badges: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Badge, error) {
		var (
			id string
			at time.Time
		)
		if err := row.Scan(&id, &at); err != nil {
			return models.Badge{}, err
		}
		return badgeFromRow(id, at), nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning badges: %w", err)
	}
	return out, nil
}

// badgeFromRow fills in catalog metadata. Unknown ids keep just the id.
func badgeFromRow(id string, unlockedAt time.Time) models.Badge {
	b, ok := models.BadgeByID(id)
	if !ok {
		b = models.Badge{ID: id}
	}
	b.UnlockedAt = unlockedAt
	return b
}
