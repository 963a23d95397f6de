package http

import (
	"net/http"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/service"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/httpx"
)

// AdminUsersHandler backs the admin user management surface. The gate has
// already verified the ADMIN role before any of these run.
type AdminUsersHandler struct {
	UserService     *service.UserService
	PresenceService *service.PresenceService
}

type adminUserPayload struct {
	userPayload

	Status       string `json:"status"`
	PostCount    int    `json:"postCount"`
	CommentCount int    `json:"commentCount"`
	LikeCount    int    `json:"likeCount"`

	IsOnline   bool       `json:"isOnline"`
	LastActive *time.Time `json:"lastActive,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// HandleList lists every user with content counts and live presence.
func (h *AdminUsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var status *domain.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.Status(raw)
		status = &s
	}

	users, err := h.UserService.ListUsers(r.Context(), status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	presence, err := h.PresenceService.Snapshot(r.Context(), ids)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]adminUserPayload, 0, len(users))
	for _, u := range users {
		p := adminUserPayload{
			userPayload:  toUserPayload(u.User),
			Status:       string(u.Status),
			PostCount:    u.PostCount,
			CommentCount: u.CommentCount,
			LikeCount:    u.LikeCount,
			CreatedAt:    u.CreatedAt,
		}
		if last, ok := presence[u.ID]; ok {
			p.IsOnline = true
			p.LastActive = &last
		}
		out = append(out, p)
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"users": out})
}

type updateUserRequest struct {
	Role   string `json:"role"`
	Status string `json:"status"`
}

// HandleUpdate changes a user's role, status, or both. Empty fields are
// left untouched.
func (h *AdminUsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Role == "" && req.Status == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Role != "" {
		if err := h.UserService.SetRole(r.Context(), userID, domain.Role(req.Role)); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}
	if req.Status != "" {
		if err := h.UserService.SetStatus(r.Context(), userID, domain.Status(req.Status)); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminUsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.RequirePrincipal(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	userID := r.PathValue("id")
	if userID == p.ID {
		httpx.WriteError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type presencePayload struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	IsOnline   bool       `json:"isOnline"`
	LastActive *time.Time `json:"lastActive,omitempty"`
}

// HandlePresence lists who is online right now.
func (h *AdminUsersHandler) HandlePresence(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context(), nil)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	presence, err := h.PresenceService.Snapshot(r.Context(), ids)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]presencePayload, 0, len(users))
	for _, u := range users {
		p := presencePayload{ID: u.ID, Name: u.Name, Email: u.Email}
		if last, ok := presence[u.ID]; ok {
			p.IsOnline = true
			p.LastActive = &last
		}
		out = append(out, p)
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, out)
}
