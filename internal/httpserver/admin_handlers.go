package httpserver

import (
	"errors"
	"net/http"
	"strings"

	ticketdomain "aiblog/backend/internal/domain/ticket"
)

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}

	page, limit := parsePagination(r)
	users, total, err := s.authService.ListUsers(r.Context(), page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users, "totalCount": total})
}

func (s *Server) handleAdminBlogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}

	page, limit := parsePagination(r)
	blogs, total, err := s.blogService.ListAll(r.Context(), page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list blogs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blogs": blogs, "totalCount": total})
}

func (s *Server) handleAdminTickets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}

	page, limit := parsePagination(r)
	tickets, counts, err := s.ticketService.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tickets")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tickets":     tickets,
		"totalCount":  counts.Total,
		"openCount":   counts.Open,
		"closedCount": counts.Closed,
	})
}

func (s *Server) handleAdminTicketByID(w http.ResponseWriter, r *http.Request) {
	remainder := strings.Trim(strings.TrimPrefix(r.URL.Path, "/admin/tickets/"), "/")
	segments := strings.SplitN(remainder, "/", 2)
	id := segments[0]
	if id == "" {
		writeError(w, http.StatusBadRequest, "ticket id required")
		return
	}
	if len(segments) < 2 || segments[1] != "status" {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}

	t, message, err := s.ticketService.ToggleStatus(r.Context(), id)
	if err != nil {
		if errors.Is(err, ticketdomain.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "failed to update ticket")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": message,
		"ticket":  t,
	})
}
