package httpserver

import (
	"net/http"
	"time"
)

// sessionCookieName is the sole transport for a session token.
const sessionCookieName = "auth"

// attachSessionCookie binds a freshly issued token to the response. It
// overwrites any prior cookie of the same name, renewing the expiry window.
func attachSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// readSessionCookie extracts the token from the request, or "" when absent.
func readSessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// clearSessionCookie removes the cookie and reports whether one was present,
// so the caller can distinguish "removed" from "nothing to remove".
func clearSessionCookie(w http.ResponseWriter, r *http.Request) bool {
	_, err := r.Cookie(sessionCookieName)
	hadCookie := err == nil

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return hadCookie
}
