package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pediblog/internal/middleware"
	"pediblog/internal/models"
	"pediblog/internal/store"
)

// Comments serves per-post comment threads.
type Comments struct {
	comments *store.CommentStore
	posts    *store.PostStore
}

// NewComments creates the comment handler group.
func NewComments(comments *store.CommentStore, posts *store.PostStore) *Comments {
	return &Comments{comments: comments, posts: posts}
}

// ListByPost handles GET /comments/{postId}.
func (h *Comments) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "postId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	items, err := h.comments.ListByPost(postID)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Comment{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /comments/{postId}. The post must exist; comments on
// deleted posts would otherwise surface as an opaque FK failure.
func (h *Comments) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	postID, err := uuid.Parse(chi.URLParam(r, "postId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req struct {
		Desc string `json:"desc"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateComment(req.Desc); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	post, err := h.posts.FindByID(postID)
	if err != nil {
		respondError(w, err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	created, err := h.comments.Create(actor.UserID, postID, req.Desc)
	if err != nil {
		respondError(w, err)
		return
	}
	created.User = &models.Author{Username: actor.Username}
	writeJSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /comments/{id}. Admins remove any comment; everyone
// else only their own.
func (h *Comments) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if actor.IsAdmin {
		err = h.comments.Delete(id)
	} else {
		err = h.comments.DeleteOwned(id, actor.UserID)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
