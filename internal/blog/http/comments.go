package http

import (
	"net/http"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/service"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/httpx"
)

type CommentsHandler struct {
	CommentService *service.CommentService
}

type commentPayload struct {
	ID        string          `json:"id"`
	Content   string          `json:"content"`
	PostID    string          `json:"postId"`
	UserID    string          `json:"userId"`
	CreatedAt time.Time       `json:"createdAt"`
	User      *domain.UserRef `json:"user,omitempty"`
}

// HandleList serves a post's comments.
func (h *CommentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	postID := r.URL.Query().Get("postId")
	if postID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "postId is required")
		return
	}

	comments, err := h.CommentService.ListByPost(r.Context(), postID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]commentPayload, 0, len(comments))
	for _, c := range comments {
		user := c.User
		out = append(out, commentPayload{
			ID:        c.ID,
			Content:   c.Content,
			PostID:    c.PostID,
			UserID:    c.UserID,
			CreatedAt: c.CreatedAt,
			User:      &user,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

type createCommentRequest struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
}

func (h *CommentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.RequirePrincipal(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	c, err := h.CommentService.Create(r.Context(), p.ID, req.PostID, req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, commentPayload{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
	})
}

// HandleDelete removes a comment; the author and admins may delete.
func (h *CommentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.RequirePrincipal(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	err := h.CommentService.Delete(r.Context(), p.ID, p.IsAdmin(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
