package http

import (
	"net/http"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/service"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/httpx"
)

type LikesHandler struct {
	LikeService *service.LikeService
}

type likePayload struct {
	ID        string          `json:"id"`
	PostID    string          `json:"postId"`
	UserID    string          `json:"userId"`
	CreatedAt time.Time       `json:"createdAt"`
	User      *domain.UserRef `json:"user,omitempty"`
}

func (h *LikesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	postID := r.URL.Query().Get("postId")
	if postID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "postId is required")
		return
	}

	likes, err := h.LikeService.ListByPost(r.Context(), postID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]likePayload, 0, len(likes))
	for _, l := range likes {
		user := l.User
		out = append(out, likePayload{
			ID:        l.ID,
			PostID:    l.PostID,
			UserID:    l.UserID,
			CreatedAt: l.CreatedAt,
			User:      &user,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

type toggleLikeRequest struct {
	PostID string `json:"postId"`
}

// HandleToggle likes the post, or removes the caller's existing like.
func (h *LikesHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.RequirePrincipal(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req toggleLikeRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	liked, err := h.LikeService.Toggle(r.Context(), p.ID, req.PostID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}
