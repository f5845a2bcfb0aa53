package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atpritam/Event-Flow/internal/domain"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// UpsertUser inserts or refreshes the provider-mirrored profile keyed
// by subject id, returning the stored row.
func (r *UserRepository) UpsertUser(ctx context.Context, user domain.User) (domain.User, error) {
	const stmt = `
INSERT INTO users (id, email, username, first_name, last_name, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET email = EXCLUDED.email,
    username = EXCLUDED.username,
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name
RETURNING id, email, username, first_name, last_name, created_at`

	var u domain.User
	err := r.pool.QueryRow(ctx, stmt,
		user.ID, user.Email, user.Username, user.FirstName, user.LastName, user.CreatedAt,
	).Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.CreatedAt)
	if err != nil {
		return domain.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetUser(ctx context.Context, id string) (domain.User, error) {
	const query = `SELECT id, email, username, first_name, last_name, created_at FROM users WHERE id = $1`

	var u domain.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
