package httpserver

import (
	"context"
	"net/http"
	"strconv"

	authdomain "aiblog/backend/internal/domain/auth"
)

func (s *Server) registerRoutes() {
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))

	s.router.Handle("/auth/login", http.HandlerFunc(s.handleLogin))
	s.router.Handle("/auth/logout", http.HandlerFunc(s.handleLogout))
	s.router.Handle("/auth/session", http.HandlerFunc(s.handleSession))

	authenticated := s.sessionMiddleware
	s.router.Handle("/account/profile", authenticated(http.HandlerFunc(s.handleUpdateProfile)))
	s.router.Handle("/account/username", authenticated(http.HandlerFunc(s.handleUpdateUsername)))
	s.router.Handle("/account/password", authenticated(http.HandlerFunc(s.handleUpdatePassword)))

	s.router.Handle("/blogs", http.HandlerFunc(s.handleBlogs))
	s.router.Handle("/blogs/search", http.HandlerFunc(s.handleSearchBlogs))
	s.router.Handle("/blogs/categories", http.HandlerFunc(s.handleCategories))
	s.router.Handle("/blogs/category/", http.HandlerFunc(s.handleBlogsByCategory))
	s.router.Handle("/blogs/slug/", http.HandlerFunc(s.handleBlogBySlug))
	s.router.Handle("/blogs/", http.HandlerFunc(s.handleBlogByID))

	s.router.Handle("/users/", http.HandlerFunc(s.handleUserByUsername))
	s.router.Handle("/tickets", http.HandlerFunc(s.handleCreateTicket))

	s.router.Handle("/dashboard/blogs", authenticated(http.HandlerFunc(s.handleMyBlogs)))
	s.router.Handle("/dashboard/liked", authenticated(http.HandlerFunc(s.handleLikedBlogs)))

	s.router.Handle("/ai/generate", authenticated(http.HandlerFunc(s.handleAIGenerate)))
	s.router.Handle("/ai/image", authenticated(http.HandlerFunc(s.handleAIImage)))

	s.router.Handle("/admin/users", authenticated(http.HandlerFunc(s.handleAdminUsers)))
	s.router.Handle("/admin/blogs", authenticated(http.HandlerFunc(s.handleAdminBlogs)))
	s.router.Handle("/admin/tickets", authenticated(http.HandlerFunc(s.handleAdminTickets)))
	s.router.Handle("/admin/tickets/", authenticated(http.HandlerFunc(s.handleAdminTicketByID)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sessionMiddleware gates a route on an active session. The token travels in
// the session cookie only; each request re-resolves the canonical user record.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok, err := s.authService.CheckSession(r.Context(), readSessionCookie(r))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to check session")
			return
		}
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUser{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionUser resolves the acting identity on routes that mix public and
// gated methods. A logged-out caller gets (nil, false), never an error.
func (s *Server) sessionUser(r *http.Request) (*authdomain.User, bool) {
	if user, ok := currentUserFromContext(r.Context()); ok {
		return user, true
	}
	user, ok, err := s.authService.CheckSession(r.Context(), readSessionCookie(r))
	if err != nil || !ok {
		return nil, false
	}
	return user, true
}

func currentUserFromContext(ctx context.Context) (*authdomain.User, bool) {
	user, ok := ctx.Value(ctxKeyUser{}).(*authdomain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// requireAdmin applies the two-step admin gate: an active session and the
// admin role. Both failures deny without revealing which condition failed.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	user, ok := currentUserFromContext(r.Context())
	if !ok || user.Role != authdomain.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}

type ctxKeyUser struct{}

func parsePagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}
