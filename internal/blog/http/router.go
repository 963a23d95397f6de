package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/service"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/httpx"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/slogx"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/tokenx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	sessions httpx.SessionWriter
	tokenTTL time.Duration

	// UploadsDir is served read-only at /uploads/; avatar files land there.
	UploadsDir string

	AuthService     *service.AuthService
	UserService     *service.UserService
	AvatarService   *service.AvatarService
	PostService     *service.PostService
	TaxonomyService *service.TaxonomyService
	CommentService  *service.CommentService
	LikeService     *service.LikeService
	PresenceService *service.PresenceService
}

func NewRouter(
	codec *tokenx.Codec,
	buildVersion string,
	st store.Store,
	sessions httpx.SessionWriter,
	tokenTTL time.Duration,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		sessions:     sessions,
		tokenTTL:     tokenTTL,
		logger:       logger,
	}

	// Every request flows through the logger and then the gate; handlers
	// behind protected paths can assume a principal is in context.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Gate(httpx.DefaultGateConfig(), &httpx.Authenticator{Codec: codec}),
	}

	return r
}

func (r *Router) ApplyRoutes() error {
	r.registerAuth()
	r.registerPosts()
	r.registerTaxonomy()
	r.registerEngagement()
	r.registerUser()
	r.registerAdmin()
	r.registerSystem()
	return r.registerPages()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService: r.AuthService,
		Sessions:    r.sessions,
		TokenTTL:    r.tokenTTL,
	}

	// Credential endpoints take the brunt of abuse; strict per-IP buckets.
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
	r.Mux.HandleFunc("POST /api/auth/logout", h.HandleLogout)
}

func (r *Router) registerPosts() {
	h := &PostsHandler{PostService: r.PostService}

	r.Mux.Handle("GET /api/posts",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		))
	r.Mux.Handle("GET /api/posts/{slug}",
		httpx.Chain(http.HandlerFunc(h.HandleGetBySlug),
			httpx.RateLimitByIP(httpx.LenientLimit),
		))

	r.Mux.HandleFunc("GET /api/user/posts", h.HandleMine)
	r.Mux.Handle("POST /api/user/posts",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		))
	r.Mux.HandleFunc("GET /api/user/posts/{id}", h.HandleGet)
	r.Mux.HandleFunc("PUT /api/user/posts/{id}", h.HandleUpdate)
	r.Mux.HandleFunc("DELETE /api/user/posts/{id}", h.HandleDelete)

	r.Mux.HandleFunc("GET /api/admin/posts", h.HandleAdminList)
	r.Mux.HandleFunc("DELETE /api/admin/posts/{id}", h.HandleAdminDelete)
}

func (r *Router) registerTaxonomy() {
	h := &TaxonomyHandler{TaxonomyService: r.TaxonomyService}

	r.Mux.HandleFunc("GET /api/categories", h.HandleListCategories)
	r.Mux.HandleFunc("GET /api/tags", h.HandleListTags)

	r.Mux.HandleFunc("POST /api/admin/categories", h.HandleCreateCategory)
	r.Mux.HandleFunc("POST /api/admin/tags", h.HandleCreateTag)
}

func (r *Router) registerEngagement() {
	comments := &CommentsHandler{CommentService: r.CommentService}
	likes := &LikesHandler{LikeService: r.LikeService}

	r.Mux.HandleFunc("GET /api/comments", comments.HandleList)
	r.Mux.Handle("POST /api/comments",
		httpx.Chain(http.HandlerFunc(comments.HandleCreate),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		))
	r.Mux.HandleFunc("DELETE /api/comments/{id}", comments.HandleDelete)

	r.Mux.HandleFunc("GET /api/likes", likes.HandleList)
	r.Mux.Handle("POST /api/likes",
		httpx.Chain(http.HandlerFunc(likes.HandleToggle),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		))
}

func (r *Router) registerUser() {
	h := &UserHandler{
		UserService:     r.UserService,
		AuthService:     r.AuthService,
		AvatarService:   r.AvatarService,
		PresenceService: r.PresenceService,
	}

	r.Mux.HandleFunc("GET /api/user", h.HandleProfile)
	r.Mux.HandleFunc("PUT /api/user", h.HandleUpdateProfile)
	r.Mux.Handle("POST /api/user/change-password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			httpx.RateLimitByUser(httpx.StrictLimit),
		))
	r.Mux.Handle("POST /api/user/upload-image",
		httpx.Chain(http.HandlerFunc(h.HandleUploadImage),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		))
	r.Mux.HandleFunc("POST /api/user/status", h.HandleHeartbeat)
}

func (r *Router) registerAdmin() {
	h := &AdminUsersHandler{
		UserService:     r.UserService,
		PresenceService: r.PresenceService,
	}

	r.Mux.HandleFunc("GET /api/admin/users", h.HandleList)
	r.Mux.HandleFunc("GET /api/admin/users/status", h.HandlePresence)
	r.Mux.HandleFunc("PUT /api/admin/users/{id}", h.HandleUpdate)
	r.Mux.HandleFunc("DELETE /api/admin/users/{id}", h.HandleDelete)
}

func (r *Router) registerSystem() {
	r.Mux.HandleFunc("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.HandleFunc("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))

	if r.UploadsDir != "" {
		r.Mux.Handle("GET /uploads/",
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(r.UploadsDir))))
	}
}

func (r *Router) registerPages() error {
	h, err := NewPagesHandler(r.PostService, r.UserService, r.PresenceService)
	if err != nil {
		return err
	}

	r.Mux.HandleFunc("GET /{$}", h.HandleHome)
	r.Mux.HandleFunc("GET /login", h.HandleLoginPage)
	r.Mux.HandleFunc("GET /register", h.HandleRegisterPage)
	r.Mux.HandleFunc("GET /posts", h.HandlePostList)
	r.Mux.HandleFunc("GET /posts/{slug}", h.HandlePostPage)
	r.Mux.HandleFunc("GET /dashboard", h.HandleDashboard)
	r.Mux.HandleFunc("GET /admin", h.HandleAdminPage)
	return nil
}
