package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"pediblog/internal/auth"
	"pediblog/internal/models"
)

type contextKey string

const actorKey contextKey = "actor"

// UserResolver maps a verified token subject to the local account mirror.
type UserResolver interface {
	FindByExternalID(externalID string) (*models.User, error)
}

// Auth verifies bearer tokens and attaches the resolved Actor to the
// request context. Routes decide how much capability they need via
// RequireAuth and RequireAdmin.
type Auth struct {
	verifier *auth.Verifier
	users    UserResolver
}

// NewAuth creates the auth middleware from a token verifier and a user store.
func NewAuth(verifier *auth.Verifier, users UserResolver) *Auth {
	return &Auth{verifier: verifier, users: users}
}

// Load parses an Authorization bearer token when one is present. Requests
// without a token pass through anonymous; a token that is present but
// invalid, or that names no local account, is rejected outright.
func (a *Auth) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "malformed authorization header")
			return
		}

		claims, err := a.verifier.Verify(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		user, err := a.users.FindByExternalID(claims.Subject)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if user == nil {
			// Valid token but the webhook sync never delivered this account.
			writeJSONError(w, http.StatusUnauthorized, "unknown account")
			return
		}

		actor := &auth.Actor{
			UserID:     user.ID,
			ExternalID: user.ExternalID,
			Username:   user.Username,
			IsAdmin:    claims.IsAdmin(),
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// WithActor returns a context carrying the given actor. Load uses it after
// token verification; handler tests use it to simulate an authenticated
// request without a real token.
func WithActor(ctx context.Context, actor *auth.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom returns the authenticated caller attached by Load, if any.
func ActorFrom(ctx context.Context) (*auth.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(*auth.Actor)
	return actor, ok
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ActorFrom(r.Context()); !ok {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with 401 and authenticated
// non-admin requests with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFrom(r.Context())
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !actor.IsAdmin {
			writeJSONError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSONError emits the API's error envelope from middleware, which
// cannot import the handlers package.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
