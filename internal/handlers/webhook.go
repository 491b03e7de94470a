package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	svix "github.com/svix/svix-webhooks/go"

	"pediblog/internal/store"
)

// maxWebhookBody bounds the webhook payload size.
const maxWebhookBody = 1 << 20

// Webhook receives identity-provider user events. The provider signs each
// delivery with the svix scheme; anything that fails verification is
// rejected before the payload is even parsed.
type Webhook struct {
	users    *store.UserStore
	verifier *svix.Webhook
}

// NewWebhook creates the webhook handler. It fails when the signing secret
// is malformed, which should stop startup rather than silently accept
// unverifiable deliveries.
func NewWebhook(users *store.UserStore, secret string) (*Webhook, error) {
	verifier, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, err
	}
	return &Webhook{users: users, verifier: verifier}, nil
}

// identityEvent is the provider's event envelope.
type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string  `json:"id"`
		Username       *string `json:"username"`
		ImageURL       *string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// Handle processes POST /webhooks/identity. Deliveries are retried by the
// provider, so both event types are idempotent: replaying a creation or a
// deletion succeeds without changing anything.
func (h *Webhook) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable payload")
		return
	}

	if err := h.verifier.Verify(body, r.Header); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid webhook signature")
		return
	}

	var event identityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid webhook payload")
		return
	}
	if event.Data.ID == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	switch event.Type {
	case "user.created":
		h.userCreated(w, event)
	case "user.deleted":
		h.userDeleted(w, event)
	default:
		// Unknown event types are acknowledged so the provider stops retrying.
		slog.Debug("webhook event ignored", "type", event.Type)
		writeJSON(w, http.StatusOK, map[string]string{"message": "ignored"})
	}
}

func (h *Webhook) userCreated(w http.ResponseWriter, event identityEvent) {
	email := ""
	if len(event.Data.EmailAddresses) > 0 {
		email = event.Data.EmailAddresses[0].EmailAddress
	}
	if email == "" {
		writeError(w, http.StatusBadRequest, "missing email address")
		return
	}

	username := ""
	if event.Data.Username != nil {
		username = *event.Data.Username
	}

	_, err := h.users.Create(event.Data.ID, username, email, event.Data.ImageURL)
	if errors.Is(err, store.ErrConflict) {
		// Only a replay of this subject may be acknowledged. A conflict on
		// another account's username or email must stay non-2xx so the
		// provider keeps retrying instead of dropping the user.
		existing, ferr := h.users.FindByExternalID(event.Data.ID)
		if ferr != nil {
			respondError(w, ferr)
			return
		}
		if existing != nil {
			writeJSON(w, http.StatusOK, map[string]string{"message": "user already exists"})
			return
		}
		slog.Error("user sync conflict", "external_id", event.Data.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "user sync conflict")
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}

	slog.Info("user provisioned", "external_id", event.Data.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "user created"})
}

func (h *Webhook) userDeleted(w http.ResponseWriter, event identityEvent) {
	err := h.users.DeleteByExternalID(event.Data.ID)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "user already removed"})
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}

	slog.Info("user removed with content", "external_id", event.Data.ID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
