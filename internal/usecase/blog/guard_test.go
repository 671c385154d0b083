package blog

import (
	"testing"

	authdomain "aiblog/backend/internal/domain/auth"
	blogdomain "aiblog/backend/internal/domain/blog"

	"github.com/stretchr/testify/assert"
)

func TestCanMutate(t *testing.T) {
	owner := &authdomain.User{ID: "u1", Role: authdomain.RoleUser}
	stranger := &authdomain.User{ID: "u2", Role: authdomain.RoleUser}
	admin := &authdomain.User{ID: "u3", Role: authdomain.RoleAdmin}
	post := &blogdomain.Blog{ID: "b1", UserID: "u1"}

	tests := []struct {
		name    string
		post    *blogdomain.Blog
		actor   *authdomain.User
		wantErr error
	}{
		{"owner may mutate regardless of role", post, owner, nil},
		{"admin may mutate regardless of ownership", post, admin, nil},
		{"stranger is denied", post, stranger, blogdomain.ErrForbidden},
		{"missing post reports not found", nil, owner, blogdomain.ErrNotFound},
		{"anonymous actor is denied", post, nil, authdomain.ErrNotAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanMutate(tt.post, tt.actor)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
