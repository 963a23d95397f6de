package http

import (
	"net/http"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/service"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/httpx"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/tokenx"
)

type AuthHandler struct {
	AuthService *service.AuthService
	Sessions    httpx.SessionWriter
	TokenTTL    time.Duration
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image,omitempty"`
}

func toUserPayload(u domain.User) userPayload {
	return userPayload{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
		Image: u.Image,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  userPayload `json:"user"`
	Token string      `json:"token"`
}

// HandleLogin exchanges credentials for a token, delivered both in the JSON
// body and as the session cookie pair.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, user, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Sessions.Attach(w, token, tokenx.Principal{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	}, h.TokenTTL)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		User:  toUserPayload(user),
		Token: token,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]userPayload{"user": toUserPayload(user)})
}

// HandleLogout expires the session cookies. Stateless tokens cannot be
// revoked server side; the cookie clear is the whole operation.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
