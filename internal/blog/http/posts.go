package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/service"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/httpx"
)

type PostsHandler struct {
	PostService *service.PostService
}

type postPayload struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Content    string    `json:"content"`
	Published  bool      `json:"published"`
	AuthorID   string    `json:"authorId"`
	CategoryID string    `json:"categoryId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Author       *domain.UserRef  `json:"author,omitempty"`
	Category     *domain.Category `json:"category,omitempty"`
	Tags         []domain.Tag     `json:"tags,omitempty"`
	CommentCount int              `json:"commentCount"`
	LikeCount    int              `json:"likeCount"`
}

func toPostPayload(p domain.Post) postPayload {
	return postPayload{
		ID:         p.ID,
		Title:      p.Title,
		Slug:       p.Slug,
		Content:    p.Content,
		Published:  p.Published,
		AuthorID:   p.AuthorID,
		CategoryID: p.CategoryID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toDetailPayload(d domain.PostDetail) postPayload {
	out := toPostPayload(d.Post)
	author := d.Author
	out.Author = &author
	out.Category = d.Category
	out.Tags = d.Tags
	out.CommentCount = d.CommentCount
	out.LikeCount = d.LikeCount
	return out
}

func toDetailPayloads(details []domain.PostDetail) []postPayload {
	out := make([]postPayload, 0, len(details))
	for _, d := range details {
		out = append(out, toDetailPayload(d))
	}
	return out
}

type paginationPayload struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// HandleList serves the public feed: published posts only, newest first,
// filtered by category or tag name, paginated.
func (h *PostsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := domain.PostFilter{
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
		Page:     queryInt(q.Get("page"), 1),
		Limit:    queryInt(q.Get("limit"), 10),
	}

	details, total, err := h.PostService.ListPublished(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	pages := 0
	if f.Limit > 0 {
		pages = (total + f.Limit - 1) / f.Limit
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"posts": toDetailPayloads(details),
		"pagination": paginationPayload{
			Total: total,
			Page:  f.Page,
			Limit: f.Limit,
			Pages: pages,
		},
	})
}

// HandleGetBySlug serves a single post. The path is public, so requests
// arrive without a principal and drafts read as not found; authors reach
// their drafts through the owned-posts routes.
func (h *PostsHandler) HandleGetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	var viewerID string
	var viewerAdmin bool
	if p, ok := httpx.PrincipalFromContext(r.Context()); ok {
		viewerID = p.ID
		viewerAdmin = p.IsAdmin()
	}

	detail, err := h.PostService.GetBySlug(r.Context(), slug, viewerID, viewerAdmin)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDetailPayload(detail))
}

type postRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Published  bool     `json:"published"`
	CategoryID string   `json:"categoryId"`
	TagIDs     []string `json:"tagIds"`
}

func (req postRequest) input() service.PostInput {
	return service.PostInput{
		Title:      req.Title,
		Content:    req.Content,
		Published:  req.Published,
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
	}
}

// HandleMine lists the caller's own posts, drafts included.
func (h *PostsHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.RequirePrincipal(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	details, err := h.PostService.ListByAuthor(r.Context(), p.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"posts": toDetailPayloads(details)})
}

func (h *PostsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.RequirePrincipal(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	post, err := h.PostService.Create(r.Context(), p.ID, req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toPostPayload(post))
}

// HandleGet serves one of the caller's posts by id.
func (h *PostsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.RequirePrincipal(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	post, err := h.PostService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if post.AuthorID != p.ID && !p.IsAdmin() {
		httpx.WriteError(w, http.StatusForbidden, "Forbidden")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPostPayload(post))
}

func (h *PostsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.RequirePrincipal(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	post, err := h.PostService.Update(r.Context(), p.ID, r.PathValue("id"), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPostPayload(post))
}

func (h *PostsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.RequirePrincipal(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.PostService.Delete(r.Context(), p.ID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleAdminList serves every post across all authors and states.
func (h *PostsHandler) HandleAdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := domain.AdminPostFilter{
		AuthorID:   q.Get("authorId"),
		CategoryID: q.Get("categoryId"),
	}
	if raw := q.Get("published"); raw != "" {
		v := raw == "true"
		f.Published = &v
	}

	details, err := h.PostService.ListAll(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"posts": toDetailPayloads(details)})
}

func (h *PostsHandler) HandleAdminDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.PostService.DeleteAny(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
