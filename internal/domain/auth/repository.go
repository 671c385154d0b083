package auth

import (
	"context"
	"time"
)

// UserRepository defines persistence operations for user accounts.
// The backing store enforces uniqueness of email and username.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, page, limit int) ([]*User, int, error)
	UpdateProfile(ctx context.Context, id, name, website, about string, updatedAt time.Time) (*User, error)
	UpdateUsername(ctx context.Context, id, username string, updatedAt time.Time) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
}
