package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atpritam/Event-Flow/internal/app"
	"github.com/atpritam/Event-Flow/internal/domain"
)

// OrderRepository serves the checkout-facing order surface. Ticket
// resolution queries are shared with TicketRepository.
type OrderRepository struct {
	pool    *pgxpool.Pool
	tickets *TicketRepository
	events  *EventRepository
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{
		pool:    pool,
		tickets: NewTicketRepository(pool),
		events:  NewEventRepository(pool),
	}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	const stmt = `
INSERT INTO orders (id, event_id, buyer_id, total_amount_cents, used, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, stmt,
		order.ID, order.EventID, order.BuyerID, order.TotalAmountCents, order.Used, order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateOrder
		}
		if isForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetOrderWithRefs(ctx context.Context, orderID string) (domain.Order, domain.Event, domain.User, error) {
	return r.tickets.GetOrderWithRefs(ctx, orderID)
}

func (r *OrderRepository) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	return r.events.GetEvent(ctx, eventID)
}

// ListOrdersByEvent returns the organizer's attendee listing, filtered
// by a case-insensitive match on the buyer's full name.
func (r *OrderRepository) ListOrdersByEvent(ctx context.Context, eventID, buyerNameSearch string) ([]app.EventOrderRow, error) {
	const query = `
SELECT o.id, u.first_name || ' ' || u.last_name AS buyer_name, o.total_amount_cents, o.used, o.created_at
FROM orders o
JOIN users u ON u.id = o.buyer_id
WHERE o.event_id = $1
  AND ($2 = '' OR u.first_name || ' ' || u.last_name ILIKE '%' || $2 || '%')
ORDER BY o.created_at DESC`

	rows, err := r.pool.Query(ctx, query, eventID, buyerNameSearch)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list orders by event: %w", err)
	}
	defer rows.Close()

	var out []app.EventOrderRow
	for rows.Next() {
		var row app.EventOrderRow
		if err := rows.Scan(&row.OrderID, &row.BuyerName, &row.TotalAmountCents, &row.Used, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders by event: %w", err)
	}
	return out, nil
}
