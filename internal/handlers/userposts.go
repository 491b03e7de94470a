// userposts.go serves the authenticated dashboard surface under
// /api/user-posts: listings scoped to the caller, plus the admin variants
// that see and edit everything while never reassigning ownership.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pediblog/internal/listing"
	"pediblog/internal/middleware"
	"pediblog/internal/models"
	"pediblog/internal/store"
)

// ListMine handles GET /api/user-posts.
func (h *Posts) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	q := r.URL.Query()

	h.listPosts(w, store.PostFilter{
		OwnerID: &actor.UserID,
		Search:  q.Get("search"),
		Sort:    listing.ParseSort(q.Get("sort")),
	}, listing.Parse(q, listing.DefaultAdminLimit))
}

// ListAll handles GET /api/user-posts/all (admin).
func (h *Posts) ListAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	h.listPosts(w, store.PostFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Sort:     listing.ParseSort(q.Get("sort")),
	}, listing.Parse(q, listing.DefaultAdminLimit))
}

// GetMine handles GET /api/user-posts/{id}. Non-admins only see their own.
func (h *Posts) GetMine(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	if !actor.IsAdmin && post.UserID != actor.UserID {
		writeError(w, http.StatusForbidden, "you can only access your own posts")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// GetAny handles GET /api/user-posts/admin/{id} (admin).
func (h *Posts) GetAny(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// UpdateMine handles PUT /api/user-posts/{id}. Admins may edit any post;
// everyone else only their own. Ownership is never part of the patch.
func (h *Posts) UpdateMine(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var patch models.PostPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if msg := validatePostPatch(patch); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var post *models.Post
	if actor.IsAdmin {
		post, err = h.posts.Update(id, patch)
	} else {
		post, err = h.posts.UpdateOwned(id, actor.UserID, patch)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidatePosts(r.Context())
	writeJSON(w, http.StatusOK, post)
}

// UpdateAny handles PUT /api/user-posts/admin/{id} (admin). The original
// owner stays in place no matter what the payload carries.
func (h *Posts) UpdateAny(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var patch models.PostPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if msg := validatePostPatch(patch); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	post, err := h.posts.Update(id, patch)
	if err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidatePosts(r.Context())
	writeJSON(w, http.StatusOK, post)
}
