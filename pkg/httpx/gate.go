package httpx

import (
	"net/http"
	"strings"

	"github.com/kartikeyan-sudo/BlogXAi/pkg/slogx"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/tokenx"
)

// RouteClass is the gate's classification of a request path.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteAuthenticated
	RouteAdmin
)

// GateConfig is the fixed rule table the gate classifies paths against.
type GateConfig struct {
	PublicPaths    []string // exact matches
	PublicPrefixes []string
	AdminPrefixes  []string

	APIPrefix string // paths under this get JSON errors instead of redirects
	LoginPath string // redirect target for unauthenticated UI requests
	HomePath  string // redirect target for non-admin UI requests to admin pages
}

// DefaultGateConfig covers the blog's route surface: browsing is public,
// the admin area needs the admin role, everything else needs a login.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		PublicPaths: []string{"/", "/login", "/register"},
		PublicPrefixes: []string{
			"/posts", "/categories", "/tags", "/uploads",
			"/api/auth", "/api/posts", "/api/categories", "/api/tags",
		},
		AdminPrefixes: []string{"/admin", "/api/admin"},
		APIPrefix:     "/api/",
		LoginPath:     "/login",
		HomePath:      "/",
	}
}

// Classify maps a request path to its route class. Pure function of the
// path; admin prefixes are checked first so /api/admin never falls into the
// public /api/auth family by accident.
func (c GateConfig) Classify(path string) RouteClass {
	for _, p := range c.AdminPrefixes {
		if underPrefix(path, p) {
			return RouteAdmin
		}
	}
	for _, p := range c.PublicPaths {
		if path == p {
			return RoutePublic
		}
	}
	for _, p := range c.PublicPrefixes {
		if underPrefix(path, p) {
			return RoutePublic
		}
	}
	return RouteAuthenticated
}

// underPrefix matches on whole path segments, so "/posts" covers "/posts"
// and "/posts/slug" but not "/postscript".
func underPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

func (c GateConfig) isAPI(path string) bool {
	return strings.HasPrefix(path, c.APIPrefix)
}

// Gate returns the authorization middleware that fronts every route. Public
// requests pass through untouched, protected requests must authenticate, and
// admin requests additionally need the ADMIN role. Denials are terminal: the
// downstream handler never runs. CORS headers are applied on every branch,
// pass-through and error alike.
func Gate(cfg GateConfig, auth *Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			applyCORS(w, r)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			class := cfg.Classify(r.URL.Path)
			if class == RoutePublic {
				// No authentication attempted, token or not.
				next.ServeHTTP(w, r)
				return
			}

			log := slogx.FromContext(r.Context())

			principal, err := auth.Authenticate(r)
			if err != nil {
				// All verification failures look the same to the caller.
				log.Warn("authentication failed", "path", r.URL.Path, "err", err)
				cfg.denyUnauthenticated(w, r)
				return
			}

			if class == RouteAdmin && !principal.IsAdmin() {
				log.Warn("admin route refused", "path", r.URL.Path, "user_id", principal.ID)
				cfg.denyForbidden(w, r)
				return
			}

			ctx := ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (c GateConfig) denyUnauthenticated(w http.ResponseWriter, r *http.Request) {
	if c.isAPI(r.URL.Path) {
		WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	http.Redirect(w, r, c.LoginPath, http.StatusFound)
}

func (c GateConfig) denyForbidden(w http.ResponseWriter, r *http.Request) {
	if c.isAPI(r.URL.Path) {
		WriteError(w, http.StatusForbidden, "Admin access required")
		return
	}
	http.Redirect(w, r, c.HomePath, http.StatusFound)
}

// applyCORS reflects the caller's origin and advertises the permitted
// methods and headers. Runs before any response leaves the gate.
func applyCORS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = "*"
	}

	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Add("Vary", "Origin")
	h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-CSRF-Token")
	h.Set("Access-Control-Allow-Credentials", "true")
	h.Set("Access-Control-Max-Age", "86400")
}

// RequirePrincipal is a guard for handlers mounted outside the gate's
// protected classes that still expect an authenticated caller.
func RequirePrincipal(r *http.Request) (tokenx.Principal, bool) {
	return PrincipalFromContext(r.Context())
}
