package http

import (
	"net/http"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/service"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/httpx"
)

type UserHandler struct {
	UserService     *service.UserService
	AuthService     *service.AuthService
	AvatarService   *service.AvatarService
	PresenceService *service.PresenceService
}

// HandleProfile returns the authenticated user's own record.
func (h *UserHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.RequirePrincipal(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.UserService.GetUserByID(r.Context(), p.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]userPayload{"user": toUserPayload(user)})
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.RequirePrincipal(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.UserService.UpdateProfile(r.Context(), p.ID, req.Name, req.Image); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *UserHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.RequirePrincipal(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.AuthService.ChangePassword(r.Context(), p.ID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleUploadImage accepts a multipart avatar upload, stores it, and
// records the resulting URL on the caller's profile.
func (h *UserHandler) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.RequirePrincipal(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	// Cap the whole request body; the slack covers multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxAvatarSize+64<<10)

	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "No image provided")
		return
	}
	defer file.Close()

	url, err := h.AvatarService.Save(r.Context(), p.ID,
		header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"imageUrl": url,
	})
}

// HandleHeartbeat marks the caller online for the presence TTL window.
func (h *UserHandler) HandleHeartbeat(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.RequirePrincipal(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.PresenceService.Touch(r.Context(), p.ID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
