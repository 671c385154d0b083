package blog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	authdomain "aiblog/backend/internal/domain/auth"
	domain "aiblog/backend/internal/domain/blog"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	excerptLength  = 160
	searchLimit    = 100
	defaultPerPage = 10
)

// Service coordinates blog post workflows.
type Service struct {
	repo    domain.Repository
	log     *slog.Logger
	nowFunc func() time.Time
}

// NewService constructs a blog service around the provided repository.
func NewService(repo domain.Repository, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		log:     log,
		nowFunc: time.Now,
	}
}

// Input is the author-editable subset of a post.
type Input struct {
	Title    string
	Category string
	Content  string
	ImageURL string
}

// Create persists a new post owned by actor. The slug is derived from the
// title and must be unique; the excerpt is derived from the content.
func (s *Service) Create(ctx context.Context, actor *authdomain.User, in Input) (*domain.Blog, error) {
	if actor == nil {
		return nil, authdomain.ErrNotAuthenticated
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	postSlug := slug.Make(in.Title)
	if _, err := s.repo.GetBySlug(ctx, postSlug); err == nil {
		return nil, domain.ErrDuplicateSlug
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := s.nowFunc().UTC()
	b := &domain.Blog{
		ID:        uuid.NewString(),
		UserID:    actor.ID,
		Title:     strings.TrimSpace(in.Title),
		Category:  strings.TrimSpace(in.Category),
		Content:   in.Content,
		Excerpt:   makeExcerpt(in.Content),
		ImageURL:  strings.TrimSpace(in.ImageURL),
		Published: true,
		Slug:      postSlug,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.log.Error("blog create failed", "error", err)
		return nil, err
	}
	b.AuthorName = actor.Name
	b.AuthorUsername = actor.Username
	return b, nil
}

// GetByID returns a post regardless of published state (edit views).
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Blog, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug returns a post for the public reading view.
func (s *Service) GetBySlug(ctx context.Context, postSlug string) (*domain.Blog, error) {
	return s.repo.GetBySlug(ctx, postSlug)
}

// Update rewrites a post's editable fields after an ownership check.
// The slug and excerpt are recomputed from the new title and content.
func (s *Service) Update(ctx context.Context, actor *authdomain.User, id string, in Input) (*domain.Blog, error) {
	b, err := s.fetchForMutation(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	b.Title = strings.TrimSpace(in.Title)
	b.Category = strings.TrimSpace(in.Category)
	b.Content = in.Content
	b.Excerpt = makeExcerpt(in.Content)
	b.ImageURL = strings.TrimSpace(in.ImageURL)
	b.Slug = slug.Make(in.Title)
	b.UpdatedAt = s.nowFunc().UTC()

	if err := s.repo.Update(ctx, b); err != nil {
		s.log.Error("blog update failed", "blog_id", id, "error", err)
		return nil, err
	}
	return b, nil
}

// TogglePublish flips the published flag after an ownership check.
func (s *Service) TogglePublish(ctx context.Context, actor *authdomain.User, id string) (*domain.Blog, error) {
	b, err := s.fetchForMutation(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	b.Published = !b.Published
	b.UpdatedAt = s.nowFunc().UTC()
	if err := s.repo.SetPublished(ctx, id, b.Published, b.UpdatedAt); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a post after an ownership check.
func (s *Service) Delete(ctx context.Context, actor *authdomain.User, id string) error {
	if _, err := s.fetchForMutation(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) fetchForMutation(ctx context.Context, actor *authdomain.User, id string) (*domain.Blog, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := CanMutate(b, actor); err != nil {
		return nil, err
	}
	return b, nil
}

// ListPublished returns a page of published posts, newest first.
func (s *Service) ListPublished(ctx context.Context, page, limit int) ([]*domain.Blog, int, error) {
	return s.repo.List(ctx, domain.Filter{PublishedOnly: true}, normalizePage(page), normalizeLimit(limit))
}

// ListMine returns the actor's own posts, drafts included.
func (s *Service) ListMine(ctx context.Context, actor *authdomain.User, page, limit int) ([]*domain.Blog, int, error) {
	if actor == nil {
		return nil, 0, authdomain.ErrNotAuthenticated
	}
	return s.repo.List(ctx, domain.Filter{UserID: actor.ID}, normalizePage(page), normalizeLimit(limit))
}

// ListByCategory returns published posts in a category.
func (s *Service) ListByCategory(ctx context.Context, category string, page, limit int) ([]*domain.Blog, int, error) {
	filter := domain.Filter{Category: strings.ToLower(strings.TrimSpace(category)), PublishedOnly: true}
	return s.repo.List(ctx, filter, normalizePage(page), normalizeLimit(limit))
}

// ListLiked returns published posts the actor has liked.
func (s *Service) ListLiked(ctx context.Context, actor *authdomain.User, page, limit int) ([]*domain.Blog, int, error) {
	if actor == nil {
		return nil, 0, authdomain.ErrNotAuthenticated
	}
	return s.repo.List(ctx, domain.Filter{LikedBy: actor.ID, PublishedOnly: true}, normalizePage(page), normalizeLimit(limit))
}

// ListAll returns every post for the admin console.
func (s *Service) ListAll(ctx context.Context, page, limit int) ([]*domain.Blog, int, error) {
	return s.repo.List(ctx, domain.Filter{}, normalizePage(page), normalizeLimit(limit))
}

// Search runs a full-text query over published posts, relevance ordered.
func (s *Service) Search(ctx context.Context, query string) ([]*domain.Blog, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Blog{}, nil
	}
	return s.repo.Search(ctx, query, searchLimit)
}

// Categories returns the distinct lowercased category names in use.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// LikeResult reports the outcome of a like toggle.
type LikeResult struct {
	Liked bool     `json:"liked"`
	Likes []string `json:"likes"`
}

// ToggleLike flips the actor's like on a post. The underlying set semantics
// make concurrent toggles from different users safe.
func (s *Service) ToggleLike(ctx context.Context, actor *authdomain.User, id string) (*LikeResult, error) {
	if actor == nil {
		return nil, authdomain.ErrNotAuthenticated
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	liked := !b.Liked(actor.ID)
	if liked {
		err = s.repo.AddLike(ctx, id, actor.ID)
	} else {
		err = s.repo.RemoveLike(ctx, id, actor.ID)
	}
	if err != nil {
		s.log.Error("like toggle failed", "blog_id", id, "error", err)
		return nil, err
	}

	likes, err := s.repo.Likes(ctx, id)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: liked, Likes: likes}, nil
}

func validateInput(in Input) error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.ErrTitleRequired
	}
	if strings.TrimSpace(in.Content) == "" {
		return domain.ErrContentRequired
	}
	return nil
}

func makeExcerpt(content string) string {
	if len(content) > excerptLength {
		return content[:excerptLength] + "..."
	}
	return content
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizeLimit(limit int) int {
	if limit < 1 {
		return defaultPerPage
	}
	return limit
}
