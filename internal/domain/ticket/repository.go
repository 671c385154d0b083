package ticket

import (
	"context"
	"time"
)

// Repository defines persistence operations for support tickets.
type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id string) (*Ticket, error)
	List(ctx context.Context, page, limit int) ([]*Ticket, Counts, error)
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error
}
