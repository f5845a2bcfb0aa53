package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atpritam/Event-Flow/internal/domain"
)

// TicketRepository serves the validation and redemption workflow: order
// resolution with its event and buyer, and the atomic used-flag
// transition.
type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) GetOrderWithRefs(ctx context.Context, orderID string) (domain.Order, domain.Event, domain.User, error) {
	const query = `
SELECT o.id, o.event_id, o.buyer_id, o.total_amount_cents, o.used, o.created_at,
       e.id, e.title, e.description, e.location, e.starts_at, e.ends_at,
       e.price_cents, e.is_free, e.organizer_id, e.created_at,
       u.id, u.email, u.username, u.first_name, u.last_name, u.created_at
FROM orders o
JOIN events e ON e.id = o.event_id
JOIN users u ON u.id = o.buyer_id
WHERE o.id = $1`

	var (
		o domain.Order
		e domain.Event
		u domain.User
	)
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&o.ID, &o.EventID, &o.BuyerID, &o.TotalAmountCents, &o.Used, &o.CreatedAt,
		&e.ID, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.EndsAt,
		&e.PriceCents, &e.IsFree, &e.OrganizerID, &e.CreatedAt,
		&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Order{}, domain.Event{}, domain.User{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Order{}, domain.Event{}, domain.User{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, domain.Event{}, domain.User{}, fmt.Errorf("get order with refs: %w", err)
	}
	return o, e, u, nil
}

func (r *TicketRepository) GetOrderWithEvent(ctx context.Context, orderID string) (domain.Order, domain.Event, error) {
	const query = `
SELECT o.id, o.event_id, o.buyer_id, o.total_amount_cents, o.used, o.created_at,
       e.id, e.title, e.description, e.location, e.starts_at, e.ends_at,
       e.price_cents, e.is_free, e.organizer_id, e.created_at
FROM orders o
JOIN events e ON e.id = o.event_id
WHERE o.id = $1`

	var (
		o domain.Order
		e domain.Event
	)
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&o.ID, &o.EventID, &o.BuyerID, &o.TotalAmountCents, &o.Used, &o.CreatedAt,
		&e.ID, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.EndsAt,
		&e.PriceCents, &e.IsFree, &e.OrganizerID, &e.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Order{}, domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Order{}, domain.Event{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, domain.Event{}, fmt.Errorf("get order with event: %w", err)
	}
	return o, e, nil
}

// MarkUsed performs the conditional transition in one statement; the
// WHERE used = FALSE predicate is what serializes concurrent redeems.
func (r *TicketRepository) MarkUsed(ctx context.Context, orderID string) (domain.Order, bool, error) {
	const stmt = `
UPDATE orders
SET used = TRUE
WHERE id = $1 AND used = FALSE
RETURNING id, event_id, buyer_id, total_amount_cents, used, created_at`

	var o domain.Order
	err := r.pool.QueryRow(ctx, stmt, orderID).Scan(
		&o.ID, &o.EventID, &o.BuyerID, &o.TotalAmountCents, &o.Used, &o.CreatedAt,
	)
	if err == nil {
		return o, true, nil
	}
	if isInvalidUUID(err) {
		return domain.Order{}, false, domain.ErrInvalidID
	}
	if err != pgx.ErrNoRows {
		return domain.Order{}, false, fmt.Errorf("mark order used: %w", err)
	}

	// No row transitioned: either a concurrent redeem won, or the order
	// does not exist. Re-read to tell the two apart.
	const query = `SELECT id, event_id, buyer_id, total_amount_cents, used, created_at FROM orders WHERE id = $1`
	err = r.pool.QueryRow(ctx, query, orderID).Scan(
		&o.ID, &o.EventID, &o.BuyerID, &o.TotalAmountCents, &o.Used, &o.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Order{}, false, domain.ErrOrderNotFound
		}
		return domain.Order{}, false, fmt.Errorf("reread order after conditional update: %w", err)
	}
	return o, false, nil
}
