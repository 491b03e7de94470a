package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pediblog/internal/cache"
	"pediblog/internal/models"
	"pediblog/internal/slug"
	"pediblog/internal/store"
)

// Categories serves the category registry.
type Categories struct {
	categories *store.CategoryStore
	cache      *cache.ResponseCache
}

// NewCategories creates the category handler group.
func NewCategories(categories *store.CategoryStore, rc *cache.ResponseCache) *Categories {
	return &Categories{categories: categories, cache: rc}
}

// List handles GET /api/categories, serving from the response cache when warm.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	key := cache.CategoriesKey()
	if payload, ok := h.cache.Get(r.Context(), key); ok {
		writeRawJSON(w, http.StatusOK, payload)
		return
	}

	items, err := h.categories.List()
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Category{}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		respondError(w, err)
		return
	}
	h.cache.Set(r.Context(), key, payload)
	writeRawJSON(w, http.StatusOK, payload)
}

// createCategoryRequest is the POST /api/categories body.
type createCategoryRequest struct {
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
	HoverColor string `json:"hoverColor"`
}

// Create handles POST /api/categories. The slug is the normalized name with
// no collision probing; duplicates fail outright instead of renaming.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	catSlug := slug.Generate(name)
	if catSlug == "" {
		writeError(w, http.StatusBadRequest, "name must contain at least one letter or digit")
		return
	}

	created, err := h.categories.Create(&models.Category{
		Name:       name,
		Slug:       catSlug,
		Icon:       req.Icon,
		Color:      req.Color,
		HoverColor: req.HoverColor,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidateCategories(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /api/categories/{id}. Deleting a category still
// referenced by posts fails with a conflict.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.categories.Delete(id); err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidateCategories(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
