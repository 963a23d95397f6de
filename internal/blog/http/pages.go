package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/service"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/httpx"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/slogx"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/tokenx"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// PagesHandler renders the server-side UI. The pages are deliberately bare;
// they exist so the gate's redirect branches land somewhere real.
type PagesHandler struct {
	PostService     *service.PostService
	UserService     *service.UserService
	PresenceService *service.PresenceService

	templates map[string]*template.Template
}

type pageData struct {
	Title     string
	Principal *tokenx.Principal
	Posts     []domain.PostDetail
	Post      *domain.PostDetail
	Users     []adminUserPayload
}

// NewPagesHandler parses the embedded templates once at startup.
func NewPagesHandler(posts *service.PostService, users *service.UserService, presence *service.PresenceService) (*PagesHandler, error) {
	pages := []string{"home", "post", "login", "register", "dashboard", "admin"}

	templates := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.ParseFS(templateFS,
			"templates/base.html.tmpl", "templates/"+name+".html.tmpl")
		if err != nil {
			return nil, err
		}
		templates[name] = t
	}

	return &PagesHandler{
		PostService:     posts,
		UserService:     users,
		PresenceService: presence,
		templates:       templates,
	}, nil
}

func (h *PagesHandler) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if p, ok := httpx.PrincipalFromContext(r.Context()); ok {
		data.Principal = &p
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates[name].ExecuteTemplate(w, "base", data); err != nil {
		slogx.FromContext(r.Context()).Error("template render failed",
			"page", name, "err", err)
	}
}

func (h *PagesHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.renderFeed(w, r, "Blog")
}

func (h *PagesHandler) HandlePostList(w http.ResponseWriter, r *http.Request) {
	h.renderFeed(w, r, "Posts")
}

func (h *PagesHandler) renderFeed(w http.ResponseWriter, r *http.Request, title string) {
	posts, _, err := h.PostService.ListPublished(r.Context(), domain.PostFilter{Page: 1, Limit: 10})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "home", pageData{Title: title, Posts: posts})
}

func (h *PagesHandler) HandlePostPage(w http.ResponseWriter, r *http.Request) {
	detail, err := h.PostService.GetBySlug(r.Context(), r.PathValue("slug"), "", false)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, "post", pageData{Title: detail.Title, Post: &detail})
}

func (h *PagesHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login", pageData{Title: "Login"})
}

func (h *PagesHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register", pageData{Title: "Register"})
}

func (h *PagesHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.RequirePrincipal(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	posts, err := h.PostService.ListByAuthor(r.Context(), p.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "dashboard", pageData{Title: "Dashboard", Posts: posts})
}

func (h *PagesHandler) HandleAdminPage(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context(), nil)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	presence, err := h.PresenceService.Snapshot(r.Context(), ids)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	payloads := make([]adminUserPayload, 0, len(users))
	for _, u := range users {
		payload := adminUserPayload{
			userPayload:  toUserPayload(u.User),
			Status:       string(u.Status),
			PostCount:    u.PostCount,
			CommentCount: u.CommentCount,
			LikeCount:    u.LikeCount,
			CreatedAt:    u.CreatedAt,
		}
		if last, ok := presence[u.ID]; ok {
			payload.IsOnline = true
			payload.LastActive = &last
		}
		payloads = append(payloads, payload)
	}
	h.render(w, r, "admin", pageData{Title: "Admin", Users: payloads})
}
