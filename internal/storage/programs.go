package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/gymflow/internal/models"
	"github.com/jackc/pgx/v5"
)

// AddProgram inserts a user program. The schedule and days are kept as JSONB.
func (s *UserStore) AddProgram(ctx context.Context, p models.UserProgram) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding program %s: %w", p.ID, err)
	}
	_, err = s.db.Pool.Exec(ctx,
		`INSERT INTO user_programs (id, user_id, preset_id, program, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, s.userID, p.PresetID, body, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting program: %w", err)
	}
	return nil
}

// SetActiveProgram marks id as the only active program of the user.
func (s *UserStore) SetActiveProgram(ctx context.Context, id string) error {
	return pgx.BeginFunc(ctx, s.db.Pool, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM user_programs WHERE user_id = $1 AND id::text = $2)`,
			s.userID, id).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking program: %w", err)
		}
		if !exists {
			return models.ErrProgramNotFound
		}
		if _, err := tx.Exec(ctx,
			`UPDATE user_programs SET is_active = FALSE WHERE user_id = $1 AND is_active`,
			s.userID); err != nil {
			return fmt.Errorf("clearing active program: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE user_programs SET is_active = TRUE WHERE user_id = $1 AND id::text = $2`,
			s.userID, id); err != nil {
			return fmt.Errorf("setting active program: %w", err)
		}
		return nil
	})
}

// DeleteProgram removes a program of the user. The active flag lives on the
// row, so deleting the active program leaves the user with none.
func (s *UserStore) DeleteProgram(ctx context.Context, id string) error {
	tag, err := s.db.Pool.Exec(ctx,
		`DELETE FROM user_programs WHERE user_id = $1 AND id::text = $2`,
		s.userID, id)
	if err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrProgramNotFound
	}
	return nil
}

// ActiveProgram returns the active program, or nil when none is set.
func (s *UserStore) ActiveProgram(ctx context.Context) (*models.UserProgram, error) {
	var body []byte
	err := s.db.Pool.QueryRow(ctx,
		`SELECT program FROM user_programs WHERE user_id = $1 AND is_active`,
		s.userID).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying active program: %w", err)
	}
	p, err := decodeProgram(body)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Programs returns every program of the user in creation order.
func (s *UserStore) Programs(ctx context.Context) ([]models.UserProgram, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT program FROM user_programs WHERE user_id = $1 ORDER BY created_at, id`,
		s.userID)
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	bodies, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("scanning programs: %w", err)
	}

	out := make([]models.UserProgram, 0, len(bodies))
	for _, b := range bodies {
		p, err := decodeProgram(b)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func decodeProgram(body []byte) (models.UserProgram, error) {
	var p models.UserProgram
	if err := json.Unmarshal(body, &p); err != nil {
		return models.UserProgram{}, fmt.Errorf("decoding program: %w", err)
	}
	return p, nil
}
