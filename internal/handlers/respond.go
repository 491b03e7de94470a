// Package handlers implements the JSON HTTP API. Handler groups are plain
// structs over the stores they need; authorization decisions that depend on
// ownership live here, while pure capability gates (auth, admin) are
// enforced by middleware on the route tree.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"pediblog/internal/store"
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeRawJSON writes an already-encoded JSON payload, used for cache hits.
func writeRawJSON(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// writeError writes the API error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// respondError maps store sentinel errors onto the HTTP error taxonomy.
// Anything unmapped is an internal failure: logged in full, reported generic.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrNotOwned):
		writeError(w, http.StatusForbidden, "you can only modify your own content")
	case errors.Is(err, store.ErrConflict),
		errors.Is(err, store.ErrCategoryInUse),
		errors.Is(err, store.ErrFeaturedLimit):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody parses a JSON request body into v, rejecting unknown noise
// only at the syntax level. Returns false after writing the error response.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
