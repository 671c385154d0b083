package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	ticketdomain "aiblog/backend/internal/domain/ticket"
	ticketusecase "aiblog/backend/internal/usecase/ticket"
)

// handleCreateTicket files a support ticket. No session is required, but the
// email must belong to an existing account.
func (s *Server) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email      string `json:"email"`
		TicketType string `json:"ticketType"`
		Message    string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	t, err := s.ticketService.Create(r.Context(), ticketusecase.Input{
		Email:   payload.Email,
		Type:    payload.TicketType,
		Message: payload.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, ticketdomain.ErrUnknownEmail),
			errors.Is(err, ticketdomain.ErrTypeRequired),
			errors.Is(err, ticketdomain.ErrMessageRequired),
			errors.Is(err, ticketdomain.ErrMessageTooLong):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create ticket")
		}
		return
	}
	writeJSON(w, http.StatusCreated, t)
}
