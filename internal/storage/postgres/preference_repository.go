package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atpritam/Event-Flow/internal/clock"
)

// PreferenceRepository persists per-scanner settings, currently only
// the auto-mark flag. Absent rows read as disabled.
type PreferenceRepository struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewPreferenceRepository(pool *pgxpool.Pool, clk clock.Clock) *PreferenceRepository {
	return &PreferenceRepository{pool: pool, clock: clk}
}

func (r *PreferenceRepository) AutoMark(ctx context.Context, subject string) (bool, error) {
	const query = `SELECT auto_mark FROM scanner_preferences WHERE subject = $1`

	var enabled bool
	err := r.pool.QueryRow(ctx, query, subject).Scan(&enabled)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("read auto-mark preference: %w", err)
	}
	return enabled, nil
}

func (r *PreferenceRepository) SetAutoMark(ctx context.Context, subject string, enabled bool) error {
	const stmt = `
INSERT INTO scanner_preferences (subject, auto_mark, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (subject) DO UPDATE
SET auto_mark = EXCLUDED.auto_mark, updated_at = EXCLUDED.updated_at`

	if _, err := r.pool.Exec(ctx, stmt, subject, enabled, r.clock.Now()); err != nil {
		return fmt.Errorf("write auto-mark preference: %w", err)
	}
	return nil
}
