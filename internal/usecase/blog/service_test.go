package blog

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	authdomain "aiblog/backend/internal/domain/auth"
	domain "aiblog/backend/internal/domain/blog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlogRepo struct {
	blogs map[string]*domain.Blog
	likes map[string]map[string]bool
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{
		blogs: map[string]*domain.Blog{},
		likes: map[string]map[string]bool{},
	}
}

func (r *fakeBlogRepo) Create(_ context.Context, b *domain.Blog) error {
	for _, existing := range r.blogs {
		if existing.Slug == b.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	clone := *b
	r.blogs[b.ID] = &clone
	return nil
}

func (r *fakeBlogRepo) GetByID(_ context.Context, id string) (*domain.Blog, error) {
	b, ok := r.blogs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *b
	clone.Likes = r.likeList(id)
	return &clone, nil
}

func (r *fakeBlogRepo) GetBySlug(_ context.Context, slug string) (*domain.Blog, error) {
	for id, b := range r.blogs {
		if b.Slug == slug {
			clone := *b
			clone.Likes = r.likeList(id)
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeBlogRepo) Update(_ context.Context, b *domain.Blog) error {
	if _, ok := r.blogs[b.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *b
	r.blogs[b.ID] = &clone
	return nil
}

func (r *fakeBlogRepo) SetPublished(_ context.Context, id string, published bool, updatedAt time.Time) error {
	b, ok := r.blogs[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Published, b.UpdatedAt = published, updatedAt
	return nil
}

func (r *fakeBlogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.blogs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.blogs, id)
	delete(r.likes, id)
	return nil
}

func (r *fakeBlogRepo) List(_ context.Context, filter domain.Filter, page, limit int) ([]*domain.Blog, int, error) {
	var matched []*domain.Blog
	for id, b := range r.blogs {
		if filter.PublishedOnly && !b.Published {
			continue
		}
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.Category != "" && strings.ToLower(b.Category) != filter.Category {
			continue
		}
		if filter.LikedBy != "" && !r.likes[id][filter.LikedBy] {
			continue
		}
		clone := *b
		clone.Content = ""
		clone.Likes = r.likeList(id)
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := len(matched)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *fakeBlogRepo) Search(_ context.Context, query string, limit int) ([]*domain.Blog, error) {
	var matched []*domain.Blog
	for _, b := range r.blogs {
		if !b.Published {
			continue
		}
		haystack := strings.ToLower(b.Title + " " + b.Category + " " + b.Content)
		if strings.Contains(haystack, strings.ToLower(query)) {
			clone := *b
			clone.Content = ""
			matched = append(matched, &clone)
		}
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeBlogRepo) Categories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, b := range r.blogs {
		c := strings.ToLower(b.Category)
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeBlogRepo) AddLike(_ context.Context, blogID, userID string) error {
	if r.likes[blogID] == nil {
		r.likes[blogID] = map[string]bool{}
	}
	r.likes[blogID][userID] = true
	return nil
}

func (r *fakeBlogRepo) RemoveLike(_ context.Context, blogID, userID string) error {
	delete(r.likes[blogID], userID)
	return nil
}

func (r *fakeBlogRepo) Likes(_ context.Context, blogID string) ([]string, error) {
	return r.likeList(blogID), nil
}

func (r *fakeBlogRepo) likeList(blogID string) []string {
	out := []string{}
	for userID := range r.likes[blogID] {
		out = append(out, userID)
	}
	sort.Strings(out)
	return out
}

var (
	author = &authdomain.User{ID: "u1", Name: "Alice", Username: "alice", Role: authdomain.RoleUser}
	other  = &authdomain.User{ID: "u2", Name: "Bob", Username: "bob", Role: authdomain.RoleUser}
	root   = &authdomain.User{ID: "u3", Name: "Root", Username: "root", Role: authdomain.RoleAdmin}
)

func newTestService(repo *fakeBlogRepo) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreate(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestService(repo)

	longContent := strings.Repeat("x", 200)
	b, err := svc.Create(context.Background(), author, Input{
		Title:    "Hello, World!",
		Category: "Go",
		Content:  longContent,
	})
	require.NoError(t, err)

	assert.Equal(t, "hello-world", b.Slug)
	assert.Equal(t, longContent[:160]+"...", b.Excerpt)
	assert.True(t, b.Published)
	assert.Equal(t, author.ID, b.UserID)

	t.Run("duplicate slug rejected", func(t *testing.T) {
		_, err := svc.Create(context.Background(), author, Input{
			Title:   "Hello, World!",
			Content: "different content",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateSlug)
	})

	t.Run("short content keeps full excerpt", func(t *testing.T) {
		b, err := svc.Create(context.Background(), author, Input{
			Title:   "Short one",
			Content: "tiny",
		})
		require.NoError(t, err)
		assert.Equal(t, "tiny", b.Excerpt)
	})

	t.Run("anonymous actor rejected", func(t *testing.T) {
		_, err := svc.Create(context.Background(), nil, Input{Title: "t", Content: "c"})
		assert.ErrorIs(t, err, authdomain.ErrNotAuthenticated)
	})

	t.Run("title required", func(t *testing.T) {
		_, err := svc.Create(context.Background(), author, Input{Content: "c"})
		assert.ErrorIs(t, err, domain.ErrTitleRequired)
	})
}

func TestUpdate(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestService(repo)

	b, err := svc.Create(context.Background(), author, Input{Title: "Original", Content: "content"})
	require.NoError(t, err)

	t.Run("stranger denied", func(t *testing.T) {
		_, err := svc.Update(context.Background(), other, b.ID, Input{Title: "Hijacked", Content: "x"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Equal(t, "Original", repo.blogs[b.ID].Title)
	})

	t.Run("owner updates recompute slug and excerpt", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), author, b.ID, Input{
			Title:   "Fresh Title",
			Content: "fresh content",
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh-title", updated.Slug)
		assert.Equal(t, "fresh content", updated.Excerpt)
	})

	t.Run("admin may update", func(t *testing.T) {
		_, err := svc.Update(context.Background(), root, b.ID, Input{Title: "Moderated", Content: "x"})
		assert.NoError(t, err)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := svc.Update(context.Background(), author, "nope", Input{Title: "t", Content: "c"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTogglePublish(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestService(repo)

	b, err := svc.Create(context.Background(), author, Input{Title: "Post", Content: "content"})
	require.NoError(t, err)

	unpublished, err := svc.TogglePublish(context.Background(), author, b.ID)
	require.NoError(t, err)
	assert.False(t, unpublished.Published)

	republished, err := svc.TogglePublish(context.Background(), author, b.ID)
	require.NoError(t, err)
	assert.True(t, republished.Published)

	_, err = svc.TogglePublish(context.Background(), other, b.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestService(repo)

	b, err := svc.Create(context.Background(), author, Input{Title: "Post", Content: "content"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), other, b.ID), domain.ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), root, b.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), root, b.ID), domain.ErrNotFound)
}

func TestToggleLike(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestService(repo)

	b, err := svc.Create(context.Background(), author, Input{Title: "Post", Content: "content"})
	require.NoError(t, err)

	result, err := svc.ToggleLike(context.Background(), other, b.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, []string{other.ID}, result.Likes)

	result, err = svc.ToggleLike(context.Background(), other, b.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Empty(t, result.Likes)

	_, err = svc.ToggleLike(context.Background(), nil, b.ID)
	assert.ErrorIs(t, err, authdomain.ErrNotAuthenticated)
}

func TestSearch(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestService(repo)

	published, err := svc.Create(context.Background(), author, Input{Title: "Go concurrency", Content: "channels"})
	require.NoError(t, err)
	draft, err := svc.Create(context.Background(), author, Input{Title: "Go generics", Content: "type params"})
	require.NoError(t, err)
	_, err = svc.TogglePublish(context.Background(), author, draft.ID)
	require.NoError(t, err)

	results, err := svc.Search(context.Background(), "Go")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, published.ID, results[0].ID)

	empty, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListPublished(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newTestService(repo)

	for i, title := range []string{"One", "Two", "Three"} {
		b, err := svc.Create(context.Background(), author, Input{Title: title, Content: "content"})
		require.NoError(t, err)
		repo.blogs[b.ID].CreatedAt = time.Date(2026, 1, i+1, 0, 0, 0, 0, time.UTC)
	}

	blogs, total, err := svc.ListPublished(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, blogs, 2)
	// Newest first, content excluded from lists.
	assert.Equal(t, "Three", blogs[0].Title)
	assert.Empty(t, blogs[0].Content)
}
