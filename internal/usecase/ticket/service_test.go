package ticket

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	authdomain "aiblog/backend/internal/domain/auth"
	domain "aiblog/backend/internal/domain/ticket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
}

func (r *fakeTicketRepo) Create(_ context.Context, t *domain.Ticket) error {
	clone := *t
	r.tickets[t.ID] = &clone
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *fakeTicketRepo) List(_ context.Context, page, limit int) ([]*domain.Ticket, domain.Counts, error) {
	var counts domain.Counts
	out := []*domain.Ticket{}
	for _, t := range r.tickets {
		counts.Total++
		if t.Status == domain.StatusOpen {
			counts.Open++
		} else {
			counts.Closed++
		}
		clone := *t
		out = append(out, &clone)
	}
	return out, counts, nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, id string, status domain.Status, updatedAt time.Time) error {
	t, ok := r.tickets[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Status, t.UpdatedAt = status, updatedAt
	return nil
}

type fakeUserLookup struct {
	byEmail map[string]*authdomain.User
}

func (r *fakeUserLookup) Create(context.Context, *authdomain.User) error { return nil }

func (r *fakeUserLookup) GetByID(context.Context, string) (*authdomain.User, error) {
	return nil, authdomain.ErrUserNotFound
}

func (r *fakeUserLookup) GetByEmail(_ context.Context, email string) (*authdomain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, authdomain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserLookup) GetByUsername(context.Context, string) (*authdomain.User, error) {
	return nil, authdomain.ErrUserNotFound
}

func (r *fakeUserLookup) List(context.Context, int, int) ([]*authdomain.User, int, error) {
	return nil, 0, nil
}

func (r *fakeUserLookup) UpdateProfile(context.Context, string, string, string, string, time.Time) (*authdomain.User, error) {
	return nil, authdomain.ErrUserNotFound
}

func (r *fakeUserLookup) UpdateUsername(context.Context, string, string, time.Time) (*authdomain.User, error) {
	return nil, authdomain.ErrUserNotFound
}

func (r *fakeUserLookup) UpdatePassword(context.Context, string, string, time.Time) error {
	return authdomain.ErrUserNotFound
}

func newTestService() (*Service, *fakeTicketRepo) {
	repo := &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
	users := &fakeUserLookup{byEmail: map[string]*authdomain.User{
		"alice@example.com": {ID: "u1", Email: "alice@example.com"},
	}}
	return NewService(repo, users, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestCreate(t *testing.T) {
	svc, repo := newTestService()

	tk, err := svc.Create(context.Background(), Input{
		Email:   "  Alice@Example.com ",
		Type:    "billing",
		Message: "I was charged twice.",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", tk.Email)
	assert.Equal(t, "u1", tk.UserID)
	assert.Equal(t, domain.StatusOpen, tk.Status)
	assert.Len(t, repo.tickets, 1)
}

func TestCreateValidation(t *testing.T) {
	svc, repo := newTestService()

	tests := []struct {
		name string
		in   Input
		want error
	}{
		{"unknown email", Input{Email: "ghost@example.com", Type: "bug", Message: "help"}, domain.ErrUnknownEmail},
		{"missing type", Input{Email: "alice@example.com", Message: "help"}, domain.ErrTypeRequired},
		{"missing message", Input{Email: "alice@example.com", Type: "bug", Message: "   "}, domain.ErrMessageRequired},
		{"message too long", Input{
			Email:   "alice@example.com",
			Type:    "bug",
			Message: strings.Repeat("x", domain.MaxMessageLength+1),
		}, domain.ErrMessageTooLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, repo.tickets)
}

func TestCreateMessageAtLimit(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), Input{
		Email:   "alice@example.com",
		Type:    "bug",
		Message: strings.Repeat("x", domain.MaxMessageLength),
	})
	assert.NoError(t, err)
}

func TestToggleStatus(t *testing.T) {
	svc, _ := newTestService()

	tk, err := svc.Create(context.Background(), Input{
		Email:   "alice@example.com",
		Type:    "bug",
		Message: "broken",
	})
	require.NoError(t, err)

	closed, msg, err := svc.ToggleStatus(context.Background(), tk.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, closed.Status)
	assert.Equal(t, "Ticket status updated to closed", msg)

	reopened, msg, err := svc.ToggleStatus(context.Background(), tk.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOpen, reopened.Status)
	assert.Equal(t, "Ticket status updated to open", msg)

	_, _, err = svc.ToggleStatus(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCounts(t *testing.T) {
	svc, _ := newTestService()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), Input{
			Email:   "alice@example.com",
			Type:    "bug",
			Message: "broken",
		})
		require.NoError(t, err)
	}
	tickets, counts, err := svc.List(context.Background(), 1, 10)
	require.NoError(t, err)

	_, _, err = svc.ToggleStatus(context.Background(), tickets[0].ID)
	require.NoError(t, err)

	_, counts, err = svc.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.Counts{Total: 3, Open: 2, Closed: 1}, counts)
}
