package blog

import (
	"context"
	"time"
)

// Filter narrows list queries. Zero values are ignored.
type Filter struct {
	UserID        string
	Category      string
	LikedBy       string
	PublishedOnly bool
}

// Repository defines persistence operations for blog posts. List results
// exclude the Content field and are sorted newest first.
type Repository interface {
	Create(ctx context.Context, b *Blog) error
	GetByID(ctx context.Context, id string) (*Blog, error)
	GetBySlug(ctx context.Context, slug string) (*Blog, error)
	Update(ctx context.Context, b *Blog) error
	SetPublished(ctx context.Context, id string, published bool, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter, page, limit int) ([]*Blog, int, error)
	Search(ctx context.Context, query string, limit int) ([]*Blog, error)
	Categories(ctx context.Context) ([]string, error)

	// AddLike and RemoveLike rely on the store's atomic set semantics:
	// adding an existing like or removing a missing one is a no-op.
	AddLike(ctx context.Context, blogID, userID string) error
	RemoveLike(ctx context.Context, blogID, userID string) error
	Likes(ctx context.Context, blogID string) ([]string, error)
}
