package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/pkg/tokenx"
)

const (
	// SessionCookie carries the signed token between requests.
	SessionCookie = "authToken"

	// AdminHintCookie is a readable flag the front end uses for routing
	// hints. It is never trusted for enforcement; the gate re-checks the
	// role inside the signed token on every request.
	AdminHintCookie = "isAdmin"
)

// ExtractToken pulls the session token out of a request. The Authorization
// bearer header wins over the cookie; the order is fixed.
func ExtractToken(r *http.Request) (string, bool) {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		if raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer")); raw != "" {
			return raw, true
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value, true
	}
	return "", false
}

// SessionWriter sets and clears the session cookies. Secure controls the
// cookie Secure attribute and should be on outside local development.
type SessionWriter struct {
	Secure bool
}

// Attach sets the session cookie and, for admins, the readable role hint.
// Callers only invoke this after successful token issuance.
func (sw SessionWriter) Attach(w http.ResponseWriter, token string, p tokenx.Principal, maxAge time.Duration) {
	seconds := int(maxAge.Seconds())
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   seconds,
		HttpOnly: true,
		Secure:   sw.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	if p.IsAdmin() {
		http.SetCookie(w, &http.Cookie{
			Name:     AdminHintCookie,
			Value:    "true",
			Path:     "/",
			MaxAge:   seconds,
			HttpOnly: false, // client-side hint only
			Secure:   sw.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// Clear expires both cookies (logout).
func (sw SessionWriter) Clear(w http.ResponseWriter) {
	for _, name := range []string{SessionCookie, AdminHintCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name == SessionCookie,
			Secure:   sw.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
