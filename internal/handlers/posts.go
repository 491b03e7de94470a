package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pediblog/internal/cache"
	"pediblog/internal/listing"
	"pediblog/internal/middleware"
	"pediblog/internal/models"
	"pediblog/internal/slug"
	"pediblog/internal/storage"
	"pediblog/internal/store"
)

// Posts serves the public post surface and the authenticated post CRUD.
type Posts struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	cache      *cache.ResponseCache
	storage    *storage.Client
}

// NewPosts creates the post handler group.
func NewPosts(posts *store.PostStore, categories *store.CategoryStore, rc *cache.ResponseCache, sc *storage.Client) *Posts {
	return &Posts{posts: posts, categories: categories, cache: rc, storage: sc}
}

// postListResponse is the pagination envelope for post listings.
type postListResponse struct {
	Posts      []models.Post `json:"posts"`
	HasMore    bool          `json:"hasMore"`
	TotalPosts int           `json:"totalPosts"`
	Page       int           `json:"page"`
}

// listPosts runs a filtered, paginated listing and writes the envelope.
func (h *Posts) listPosts(w http.ResponseWriter, f store.PostFilter, page listing.Params) {
	total, err := h.posts.Count(f)
	if err != nil {
		respondError(w, err)
		return
	}
	items, err := h.posts.List(f, page)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Post{}
	}
	writeJSON(w, http.StatusOK, postListResponse{
		Posts:      items,
		HasMore:    listing.HasMore(page, total),
		TotalPosts: total,
		Page:       page.Page,
	})
}

// List handles GET /posts with category, search, isFeatured, and sort filters.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.listPosts(w, store.PostFilter{
		Category:     q.Get("category"),
		Search:       q.Get("search"),
		FeaturedOnly: q.Get("isFeatured") == "true",
		Sort:         listing.ParseSort(q.Get("sort")),
	}, listing.Parse(q, listing.DefaultPublicPostLimit))
}

// GetBySlug handles GET /posts/{slug}, serving from the response cache when warm.
func (h *Posts) GetBySlug(w http.ResponseWriter, r *http.Request) {
	postSlug := chi.URLParam(r, "slug")

	key := cache.PostKey(postSlug)
	if payload, ok := h.cache.Get(r.Context(), key); ok {
		writeRawJSON(w, http.StatusOK, payload)
		return
	}

	post, err := h.posts.FindBySlug(postSlug)
	if err != nil {
		respondError(w, err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	payload, err := json.Marshal(post)
	if err != nil {
		respondError(w, err)
		return
	}
	h.cache.Set(r.Context(), key, payload)
	writeRawJSON(w, http.StatusOK, payload)
}

// createPostRequest is the POST /posts body.
type createPostRequest struct {
	Title    string  `json:"title"`
	Desc     string  `json:"desc"`
	Category string  `json:"category"`
	Content  string  `json:"content"`
	Img      *string `json:"img"`
}

// Create handles POST /posts.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	var req createPostRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validatePost(req.Title, req.Desc, req.Content); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	base := slug.Generate(req.Title)
	if base == "" {
		writeError(w, http.StatusBadRequest, "title must contain at least one letter or digit")
		return
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		first, err := h.categories.First()
		if err != nil {
			respondError(w, err)
			return
		}
		if first != nil {
			category = first.Slug
		}
	}

	created, err := h.posts.Create(&models.Post{
		UserID:   actor.UserID,
		Slug:     base,
		Title:    req.Title,
		Desc:     req.Desc,
		Category: category,
		Content:  req.Content,
		Img:      req.Img,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidatePosts(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /posts/{id} and DELETE /api/user-posts/{id}.
// Admins remove any post; everyone else only their own.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if actor.IsAdmin {
		err = h.posts.Delete(id)
	} else {
		err = h.posts.DeleteOwned(id, actor.UserID)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidatePosts(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

// ToggleFeatured handles PATCH /posts/feature (admin, enforced on the route).
func (h *Posts) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PostID string `json:"postId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	id, err := uuid.Parse(req.PostID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.posts.ToggleFeatured(id)
	if err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidatePosts(r.Context())
	writeJSON(w, http.StatusOK, post)
}

// UploadAuth handles GET /posts/upload-auth, issuing a presigned PUT URL so
// the client uploads the cover image straight to object storage.
func (h *Posts) UploadAuth(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	q := r.URL.Query()
	contentType := q.Get("contentType")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	grant, err := h.storage.PresignUpload(r.Context(), q.Get("filename"), contentType, storage.DefaultUploadExpiry)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grant)
}
