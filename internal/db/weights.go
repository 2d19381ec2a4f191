package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dany7865/IITR-esummit07/internal/weights"
)

// WeightStore is a weights.Store over the scoring_weights table.
type WeightStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewWeightStore(db *sql.DB) *WeightStore {
	return &WeightStore{db: db, now: time.Now}
}

func (s *WeightStore) Get(ctx context.Context, key string) (float64, error) {
	var w float64
	err := s.db.QueryRowContext(ctx,
		"SELECT weight FROM scoring_weights WHERE weight_key = ?", key,
	).Scan(&w)
	if errors.Is(err, sql.ErrNoRows) {
		return weights.DefaultWeight, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read weight %s: %w", key, err)
	}
	return w, nil
}

func (s *WeightStore) Upsert(ctx context.Context, key string, weight float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scoring_weights (weight_key, weight, signal_type, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (weight_key) DO UPDATE SET
			weight = excluded.weight,
			signal_type = excluded.signal_type,
			updated_at = excluded.updated_at`,
		key, weight, weights.TypeOf(key), s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert weight %s: %w", key, err)
	}
	return nil
}

func (s *WeightStore) All(ctx context.Context) ([]weights.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT weight_key, weight, signal_type, updated_at FROM scoring_weights ORDER BY weight_key")
	if err != nil {
		return nil, fmt.Errorf("failed to query weights: %w", err)
	}
	defer rows.Close()

	var out []weights.Record
	for rows.Next() {
		var r weights.Record
		if err := rows.Scan(&r.Key, &r.Weight, &r.SignalType, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weight: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
