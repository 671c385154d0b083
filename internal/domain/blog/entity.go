package blog

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a missing blog post.
	ErrNotFound = errors.New("Blog not found")
	// ErrDuplicateSlug signals that another post already owns the slug.
	ErrDuplicateSlug = errors.New("A blog with this slug already exists. Please use a different title.")
	// ErrForbidden indicates the actor is neither the owner nor an admin.
	ErrForbidden = errors.New("You are not authorized to perform this action")
	// ErrTitleRequired rejects posts without a title.
	ErrTitleRequired = errors.New("Title is required")
	// ErrContentRequired rejects posts without content.
	ErrContentRequired = errors.New("Content is required")
)

// Blog models a post. AuthorName and AuthorUsername are populated from the
// owning user on reads; lists omit Content.
type Blog struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	AuthorName     string    `json:"authorName,omitempty"`
	AuthorUsername string    `json:"authorUsername,omitempty"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	Content        string    `json:"content,omitempty"`
	Excerpt        string    `json:"excerpt"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	Published      bool      `json:"published"`
	Slug           string    `json:"slug"`
	Likes          []string  `json:"likes"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Liked reports whether userID appears in the like set.
func (b *Blog) Liked(userID string) bool {
	for _, id := range b.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
