package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	authdomain "aiblog/backend/internal/domain/auth"
	authusecase "aiblog/backend/internal/usecase/auth"
)

// handleLogin runs the login-or-register flow. An unknown email registers a
// new account; an existing email must present the matching password. Either
// way a fresh session cookie with a renewed expiry is attached.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, token, err := s.authService.LoginOrRegister(r.Context(), payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrInvalidEmail),
			errors.Is(err, authdomain.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, authdomain.ErrInvalidPassword):
			writeError(w, http.StatusUnauthorized, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	attachSessionCookie(w, token, s.sessionTTL, s.secureCookies)
	writeJSON(w, http.StatusOK, map[string]any{
		"user":     user,
		"loggedIn": true,
	})
}

// handleLogout clears the session cookie. Both the with-cookie and without-
// cookie cases are successes with distinct messages; it never errors.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	message := "No active session found"
	if clearSessionCookie(w, r) {
		message = "Successfully logged out"
	}
	writeMessage(w, http.StatusOK, message)
}

// handleSession reports the authentication state. A missing or invalid
// cookie is the expected logged-out state, not an error.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	user, ok, err := s.authService.CheckSession(r.Context(), readSessionCookie(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check session")
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"loggedIn": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":     user,
		"loggedIn": true,
	})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		writeMethodNotAllowed(w, http.MethodPut, http.MethodPatch)
		return
	}

	user, _ := currentUserFromContext(r.Context())

	var payload struct {
		Name    string `json:"name"`
		Website string `json:"website"`
		About   string `json:"about"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	updated, err := s.authService.UpdateProfile(r.Context(), user.ID, authusecase.ProfileInput{
		Name:    payload.Name,
		Website: payload.Website,
		About:   payload.About,
	})
	if err != nil {
		s.writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": updated})
}

func (s *Server) handleUpdateUsername(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		writeMethodNotAllowed(w, http.MethodPut, http.MethodPatch)
		return
	}

	user, _ := currentUserFromContext(r.Context())

	var payload struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	updated, err := s.authService.UpdateUsername(r.Context(), user.ID, payload.Username)
	if err != nil {
		s.writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": updated})
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		writeMethodNotAllowed(w, http.MethodPut, http.MethodPatch)
		return
	}

	user, _ := currentUserFromContext(r.Context())

	var payload struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := s.authService.UpdatePassword(r.Context(), user.ID, payload.Password); err != nil {
		s.writeAuthError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Password updated successfully")
}

// handleUserByUsername serves the public author profile.
func (s *Server) handleUserByUsername(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	username := strings.Trim(strings.TrimPrefix(r.URL.Path, "/users/"), "/")
	if username == "" {
		writeError(w, http.StatusBadRequest, "username required")
		return
	}

	user, err := s.authService.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
		} else {
			writeError(w, http.StatusInternalServerError, "failed to load user")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authdomain.ErrNameRequired),
		errors.Is(err, authdomain.ErrUsernameRequired),
		errors.Is(err, authdomain.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, authdomain.ErrUsernameTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, authdomain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "request failed")
	}
}
