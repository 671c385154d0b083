package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	authdomain "aiblog/backend/internal/domain/auth"
	blogdomain "aiblog/backend/internal/domain/blog"
	blogusecase "aiblog/backend/internal/usecase/blog"
)

type blogPayload struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

func (p blogPayload) input() blogusecase.Input {
	return blogusecase.Input{
		Title:    p.Title,
		Category: p.Category,
		Content:  p.Content,
		ImageURL: p.ImageURL,
	}
}

func (s *Server) handleBlogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		page, limit := parsePagination(r)
		blogs, total, err := s.blogService.ListPublished(ctx, page, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list blogs")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"blogs": blogs, "totalCount": total})
	case http.MethodPost:
		actor, ok := s.sessionUser(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		var payload blogPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		b, err := s.blogService.Create(ctx, actor, payload.input())
		if err != nil {
			s.writeBlogError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, b)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleBlogByID(w http.ResponseWriter, r *http.Request) {
	remainder := strings.Trim(strings.TrimPrefix(r.URL.Path, "/blogs/"), "/")
	if remainder == "" {
		writeError(w, http.StatusBadRequest, "blog id required")
		return
	}

	segments := strings.SplitN(remainder, "/", 2)
	id := segments[0]
	if len(segments) > 1 {
		switch segments[1] {
		case "like":
			s.handleToggleLike(w, r, id)
		case "publish":
			s.handleTogglePublish(w, r, id)
		default:
			writeError(w, http.StatusNotFound, "resource not found")
		}
		return
	}

	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		b, err := s.blogService.GetByID(ctx, id)
		if err != nil {
			s.writeBlogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	case http.MethodPut, http.MethodPatch:
		actor, ok := s.sessionUser(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		var payload blogPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		b, err := s.blogService.Update(ctx, actor, id, payload.input())
		if err != nil {
			s.writeBlogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	case http.MethodDelete:
		actor, ok := s.sessionUser(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if err := s.blogService.Delete(ctx, actor, id); err != nil {
			s.writeBlogError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Blog deleted successfully")
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	actor, ok := s.sessionUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Login required")
		return
	}

	result, err := s.blogService.ToggleLike(r.Context(), actor, id)
	if err != nil {
		s.writeBlogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTogglePublish(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	actor, ok := s.sessionUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	b, err := s.blogService.TogglePublish(r.Context(), actor, id)
	if err != nil {
		s.writeBlogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleBlogBySlug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/blogs/slug/"), "/")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "slug required")
		return
	}

	b, err := s.blogService.GetBySlug(r.Context(), slug)
	if err != nil {
		s.writeBlogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleSearchBlogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	blogs, err := s.blogService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blogs": blogs})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	categories, err := s.blogService.Categories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleBlogsByCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	category := strings.Trim(strings.TrimPrefix(r.URL.Path, "/blogs/category/"), "/")
	if category == "" {
		writeError(w, http.StatusBadRequest, "category required")
		return
	}

	page, limit := parsePagination(r)
	blogs, total, err := s.blogService.ListByCategory(r.Context(), category, page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list blogs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blogs": blogs, "totalCount": total})
}

func (s *Server) handleMyBlogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	actor, _ := currentUserFromContext(r.Context())
	page, limit := parsePagination(r)
	blogs, total, err := s.blogService.ListMine(r.Context(), actor, page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list blogs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blogs": blogs, "totalCount": total})
}

func (s *Server) handleLikedBlogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	actor, _ := currentUserFromContext(r.Context())
	page, limit := parsePagination(r)
	blogs, total, err := s.blogService.ListLiked(r.Context(), actor, page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list blogs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blogs": blogs, "totalCount": total})
}

func (s *Server) writeBlogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, blogdomain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, blogdomain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, authdomain.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, blogdomain.ErrDuplicateSlug):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, blogdomain.ErrTitleRequired),
		errors.Is(err, blogdomain.ErrContentRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "request failed")
	}
}
