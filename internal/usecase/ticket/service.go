package ticket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	authdomain "aiblog/backend/internal/domain/auth"
	domain "aiblog/backend/internal/domain/ticket"

	"github.com/google/uuid"
)

// Service coordinates the support-ticket workflows.
type Service struct {
	repo    domain.Repository
	users   authdomain.UserRepository
	log     *slog.Logger
	nowFunc func() time.Time
}

// NewService constructs a ticket service.
func NewService(repo domain.Repository, users authdomain.UserRepository, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		log:     log,
		nowFunc: time.Now,
	}
}

// Input captures a submitted support request.
type Input struct {
	Email   string
	Type    string
	Message string
}

// Create files a ticket. The email must belong to an existing account; the
// ticket is linked to that account and opens in the "open" state.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Ticket, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	message := strings.TrimSpace(in.Message)
	ticketType := strings.TrimSpace(in.Type)

	if ticketType == "" {
		return nil, domain.ErrTypeRequired
	}
	if message == "" {
		return nil, domain.ErrMessageRequired
	}
	if len(message) > domain.MaxMessageLength {
		return nil, domain.ErrMessageTooLong
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			return nil, domain.ErrUnknownEmail
		}
		return nil, err
	}

	now := s.nowFunc().UTC()
	t := &domain.Ticket{
		ID:        uuid.NewString(),
		Email:     email,
		Type:      ticketType,
		Message:   message,
		Status:    domain.StatusOpen,
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.log.Error("ticket create failed", "error", err)
		return nil, err
	}
	return t, nil
}

// List returns a page of tickets plus status counts for the admin console.
func (s *Service) List(ctx context.Context, page, limit int) ([]*domain.Ticket, domain.Counts, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.repo.List(ctx, page, limit)
}

// ToggleStatus flips a ticket between open and closed and returns the updated
// ticket with a human-readable status message.
func (s *Service) ToggleStatus(ctx context.Context, id string) (*domain.Ticket, string, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if t.Status == domain.StatusOpen {
		t.Status = domain.StatusClosed
	} else {
		t.Status = domain.StatusOpen
	}
	t.UpdatedAt = s.nowFunc().UTC()

	if err := s.repo.UpdateStatus(ctx, id, t.Status, t.UpdatedAt); err != nil {
		s.log.Error("ticket status update failed", "ticket_id", id, "error", err)
		return nil, "", err
	}
	return t, fmt.Sprintf("Ticket status updated to %s", t.Status), nil
}
