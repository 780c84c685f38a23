package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/gymflow/internal/models"
	"github.com/jackc/pgx/v5"
)

// UpdateUser replaces the stored profile.
func (s *UserStore) UpdateUser(ctx context.Context, p models.UserProfile) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO user_profiles (user_id, profile)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET profile = EXCLUDED.profile, updated_at = NOW()
	`, s.userID, body)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

// User returns the stored profile, or nil before the first commit.
func (s *UserStore) User(ctx context.Context) (*models.UserProfile, error) {
	var body []byte
	err := s.db.Pool.QueryRow(ctx,
		`SELECT profile FROM user_profiles WHERE user_id = $1`, s.userID).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	var p models.UserProfile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &p, nil
}

// UpdateSettings applies the non-nil fields of patch. Missing rows start from
// the default settings.
func (s *UserStore) UpdateSettings(ctx context.Context, patch models.SettingsPatch) error {
	return pgx.BeginFunc(ctx, s.db.Pool, func(tx pgx.Tx) error {
		cur, err := querySettings(ctx, tx, s.userID, true)
		if err != nil {
			return err
		}
		next := patch.Apply(cur)
		_, err = tx.Exec(ctx, `
			INSERT INTO user_settings (user_id, rest_timer_default, weight_unit)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE
				SET rest_timer_default = EXCLUDED.rest_timer_default,
				    weight_unit = EXCLUDED.weight_unit
		`, s.userID, next.RestTimerDefault, string(next.WeightUnit))
		if err != nil {
			return fmt.Errorf("upserting settings: %w", err)
		}
		return nil
	})
}

// Settings returns the user's settings, or the defaults if none were saved.
func (s *UserStore) Settings(ctx context.Context) (models.Settings, error) {
	return querySettings(ctx, s.db.Pool, s.userID, false)
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func querySettings(ctx context.Context, q queryRower, userID int, forUpdate bool) (models.Settings, error) {
	sql := `SELECT rest_timer_default, weight_unit FROM user_settings WHERE user_id = $1`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	var (
		rest int
		unit string
	)
	err := q.QueryRow(ctx, sql, userID).Scan(&rest, &unit)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultSettings, nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("querying settings: %w", err)
	}
	return models.Settings{RestTimerDefault: rest, WeightUnit: models.WeightUnit(unit)}, nil
}
