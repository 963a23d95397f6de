package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/service"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/httpx"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/slogx"
)

// decodeJSON parses the request body into dst, rejecting unknown junk only
// as far as malformed JSON goes.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeServiceError translates service and store sentinels into the wire
// errors the original API contract promises. Unknown errors become a logged
// 500 with no detail leaked.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrAccountBlocked):
		httpx.WriteError(w, http.StatusForbidden,
			"Your account has been blocked. Please contact an administrator.")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "User with this email already exists")
	case errors.Is(err, service.ErrWeakPassword):
		httpx.WriteError(w, http.StatusBadRequest, "Password must be at least 8 characters")
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request format")
	case errors.Is(err, service.ErrUnsupportedImage):
		httpx.WriteError(w, http.StatusBadRequest,
			"Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed")
	case errors.Is(err, service.ErrImageTooLarge):
		httpx.WriteError(w, http.StatusBadRequest, "Image size exceeds the 5MB limit")
	case errors.Is(err, service.ErrNotOwner):
		httpx.WriteError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrAlreadyExists):
		httpx.WriteError(w, http.StatusConflict, "Already exists")
	default:
		slogx.FromContext(r.Context()).Error("request failed",
			"path", r.URL.Path, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
