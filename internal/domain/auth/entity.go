package auth

import (
	"errors"
	"time"
)

var (
	// ErrInvalidPassword indicates a login attempt against an existing
	// account with the wrong password. The text is shown to users verbatim.
	ErrInvalidPassword = errors.New("Invalid password")
	// ErrInvalidEmail signals a syntactically or deliverably invalid email.
	ErrInvalidEmail = errors.New("Invalid email")
	// ErrPasswordTooShort rejects passwords below the minimum length.
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters")
	// ErrNameRequired rejects blank display names on profile updates.
	ErrNameRequired = errors.New("Name is required")
	// ErrUsernameRequired rejects blank usernames.
	ErrUsernameRequired = errors.New("Username is required")
	// ErrUsernameTaken signals the requested username belongs to a different user.
	ErrUsernameTaken = errors.New("This username is already taken")
	// ErrEmailExists signals a duplicate email registration.
	ErrEmailExists = errors.New("email already registered")
	// ErrTokenInvalid means a supplied session token cannot be validated.
	ErrTokenInvalid = errors.New("token invalid or expired")
	// ErrUserNotFound indicates a missing user record.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotAuthenticated indicates the caller has no active session.
	ErrNotAuthenticated = errors.New("authentication required")
)

// UserRole identifies the privileges assigned to a user.
type UserRole string

const (
	// RoleUser represents a standard author account.
	RoleUser UserRole = "user"
	// RoleAdmin represents an administrative account.
	RoleAdmin UserRole = "admin"
)

// User models the account entity persisted in storage.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Website      string    `json:"website,omitempty"`
	About        string    `json:"about,omitempty"`
	Role         UserRole  `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
