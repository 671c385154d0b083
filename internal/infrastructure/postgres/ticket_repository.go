package postgres

import (
	"context"
	"errors"
	"time"

	domain "aiblog/backend/internal/domain/ticket"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TicketRepository persists support tickets in PostgreSQL.
type TicketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository constructs a repository.
func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

const ticketColumns = `id, email, ticket_type, message, status, user_id, created_at, updated_at`

// Create inserts a new ticket.
func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	const query = `
INSERT INTO tickets (id, email, ticket_type, message, status, user_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Email,
		t.Type,
		t.Message,
		t.Status,
		t.UserID,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

// GetByID fetches a ticket by id.
func (r *TicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	t, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns a page of tickets, newest first, plus status counts.
func (r *TicketRepository) List(ctx context.Context, page, limit int) ([]*domain.Ticket, domain.Counts, error) {
	var counts domain.Counts
	const countQuery = `
SELECT count(*),
       count(*) FILTER (WHERE status = 'open'),
       count(*) FILTER (WHERE status = 'closed')
FROM tickets
`
	if err := r.pool.QueryRow(ctx, countQuery).Scan(&counts.Total, &counts.Open, &counts.Closed); err != nil {
		return nil, domain.Counts{}, err
	}

	query := `SELECT ` + ticketColumns + ` FROM tickets ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	rows, err := r.pool.Query(ctx, query, (page-1)*limit, limit)
	if err != nil {
		return nil, domain.Counts{}, err
	}
	defer rows.Close()

	var tickets []*domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, domain.Counts{}, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Counts{}, err
	}
	return tickets, counts, nil
}

// UpdateStatus writes a new lifecycle state.
func (r *TicketRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error {
	const query = `UPDATE tickets SET status = $2, updated_at = $3 WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var t domain.Ticket
	err := row.Scan(
		&t.ID,
		&t.Email,
		&t.Type,
		&t.Message,
		&t.Status,
		&t.UserID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
