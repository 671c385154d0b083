package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"aiblog/backend/internal/infrastructure/gemini"
	"aiblog/backend/internal/infrastructure/unsplash"
)

// handleAIGenerate forwards a prompt to the content model and returns the
// parsed JSON reply. The call is blocking with no retry.
func (s *Server) handleAIGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(payload.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	result, err := s.gemini.GenerateJSON(r.Context(), payload.Prompt)
	if err != nil {
		if errors.Is(err, gemini.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "AI generation is not configured")
			return
		}
		s.log.Error("ai generation failed", "error", err)
		writeError(w, http.StatusBadGateway, "AI generation failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

// handleAIImage fetches a random cover image URL for a query.
func (s *Server) handleAIImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(payload.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	url, err := s.unsplash.RandomPhotoURL(r.Context(), payload.Query)
	if err != nil {
		if errors.Is(err, unsplash.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "image lookup is not configured")
			return
		}
		s.log.Error("image lookup failed", "error", err)
		writeError(w, http.StatusBadGateway, "image lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": url})
}
