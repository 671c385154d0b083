package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domain "aiblog/backend/internal/domain/auth"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	usernameLength    = 6
)

// Service is the single entry point for authentication workflows: session
// checks, login-or-register, and profile/credential updates.
type Service struct {
	users         domain.UserRepository
	tokens        TokenManager
	log           *slog.Logger
	validateEmail func(string) error
	newUsername   func() (string, error)
	nowFunc       func() time.Time
}

// Option customises a Service, mainly to swap the external collaborators
// (email checker, username generator) in tests.
type Option func(*Service)

// WithEmailValidator replaces the deliverability check.
func WithEmailValidator(fn func(string) error) Option {
	return func(s *Service) { s.validateEmail = fn }
}

// WithUsernameGenerator replaces the random username source.
func WithUsernameGenerator(fn func() (string, error)) Option {
	return func(s *Service) { s.newUsername = fn }
}

// NewService constructs the auth service.
func NewService(users domain.UserRepository, tokens TokenManager, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		users:         users,
		tokens:        tokens,
		log:           log,
		validateEmail: defaultEmailValidator,
		newUsername:   func() (string, error) { return gonanoid.New(usernameLength) },
		nowFunc:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// defaultEmailValidator performs a syntactic check plus an MX lookup so the
// address is at least plausibly deliverable.
func defaultEmailValidator(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		return err
	}
	return checkmail.ValidateMX(email)
}

// CheckSession resolves a session token to the canonical user record.
// A missing or invalid token is an expected logged-out state, not an error.
// The claims are never trusted as identity beyond the user id: the current
// record is re-fetched so role and profile fields are fresh at request time.
func (s *Service) CheckSession(ctx context.Context, token string) (*domain.User, bool, error) {
	if token == "" {
		return nil, false, nil
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, false, nil
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, false, nil
		}
		s.log.Error("session user lookup failed", "error", err)
		return nil, false, err
	}

	return sanitizeUser(user), true, nil
}

// LoginOrRegister authenticates the email/password pair, creating the account
// on first contact. An existing email with a mismatched password fails; an
// unknown email silently registers. Both success branches return a freshly
// issued session token.
func (s *Service) LoginOrRegister(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := s.validateEmail(email); err != nil {
		return nil, "", domain.ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, "", domain.ErrPasswordTooShort
	}

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return nil, "", domain.ErrInvalidPassword
		}
	case errors.Is(err, domain.ErrUserNotFound):
		user, err = s.register(ctx, email, password)
		if err != nil {
			return nil, "", err
		}
	default:
		s.log.Error("login lookup failed", "error", err)
		return nil, "", err
	}

	token, err := s.tokens.Issue(Claims{
		UserID:   user.ID,
		Name:     user.Name,
		Username: user.Username,
		Role:     string(user.Role),
		Email:    user.Email,
	})
	if err != nil {
		s.log.Error("token issuance failed", "error", err)
		return nil, "", err
	}

	return sanitizeUser(user), token, nil
}

func (s *Service) register(ctx context.Context, email, password string) (*domain.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	username, err := s.newUsername()
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         localPart(email),
		Username:     username,
		Role:         domain.RoleUser,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.log.Error("registration failed", "error", err)
		return nil, err
	}
	return user, nil
}

// ProfileInput carries the fields a user may change on their own profile.
// Role is deliberately absent: no self-service path can change it.
type ProfileInput struct {
	Name    string
	Website string
	About   string
}

// UpdateProfile persists display name, website, and about text.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	user, err := s.users.UpdateProfile(ctx, userID, name,
		strings.TrimSpace(in.Website), strings.TrimSpace(in.About), s.nowFunc().UTC())
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// UpdateUsername changes the unique handle. Re-submitting one's own username
// succeeds; a username held by a different user is rejected without a write.
func (s *Service) UpdateUsername(ctx context.Context, userID, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err == nil && existing.ID != userID {
		return nil, domain.ErrUsernameTaken
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user, err := s.users.UpdateUsername(ctx, userID, username, s.nowFunc().UTC())
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// UpdatePassword rehashes and stores a new password. Tokens issued before the
// change remain valid for their full lifetime; there is no revocation list.
func (s *Service) UpdatePassword(ctx context.Context, userID, password string) error {
	if len(password) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, userID, string(hashed), s.nowFunc().UTC())
}

// GetByUsername returns the public profile for an author page.
func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// ListUsers returns a page of users plus the total count, for the admin console.
func (s *Service) ListUsers(ctx context.Context, page, limit int) ([]*domain.User, int, error) {
	users, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, sanitizeUser(u))
	}
	return out, total, nil
}

func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

func sanitizeUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copy := *u
	copy.PasswordHash = ""
	return &copy
}
