package blog

import (
	authdomain "aiblog/backend/internal/domain/auth"
	blogdomain "aiblog/backend/internal/domain/blog"
)

// CanMutate gates edit, publish-toggle, and delete operations on a post.
// The owner may always mutate their own post; an admin may mutate any post.
// A nil post reports not-found, a nil actor reports not-authenticated.
func CanMutate(b *blogdomain.Blog, actor *authdomain.User) error {
	if actor == nil {
		return authdomain.ErrNotAuthenticated
	}
	if b == nil {
		return blogdomain.ErrNotFound
	}
	if b.UserID != actor.ID && actor.Role != authdomain.RoleAdmin {
		return blogdomain.ErrForbidden
	}
	return nil
}
