package http

import (
	"net/http"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/service"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/httpx"
)

type TaxonomyHandler struct {
	TaxonomyService *service.TaxonomyService
}

func (h *TaxonomyHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.TaxonomyService.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	httpx.WriteJSON(w, http.StatusOK, categories)
}

func (h *TaxonomyHandler) HandleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.TaxonomyService.ListTags(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	httpx.WriteJSON(w, http.StatusOK, tags)
}

type nameRequest struct {
	Name string `json:"name"`
}

func (h *TaxonomyHandler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	c, err := h.TaxonomyService.CreateCategory(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

func (h *TaxonomyHandler) HandleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	t, err := h.TaxonomyService.CreateTag(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, t)
}
