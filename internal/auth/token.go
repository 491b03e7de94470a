// Package auth verifies identity-provider session tokens and models the
// resulting caller capability. A token's subject is the provider-side user
// id; the local account is resolved separately against the user store.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AdminRole is the metadata role value that grants admin capability.
const AdminRole = "admin"

// ErrInvalidToken covers every way a bearer token can fail verification.
// Callers only need the yes/no; the wrapped cause stays available for logs.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified payload of a session token. The provider puts the
// role under a metadata object rather than a top-level claim.
type Claims struct {
	jwt.RegisteredClaims
	Metadata struct {
		Role string `json:"role"`
	} `json:"metadata"`
}

// IsAdmin reports whether the token carries the admin role.
func (c *Claims) IsAdmin() bool {
	return c.Metadata.Role == AdminRole
}

// Actor is the resolved caller capability attached to a request: the local
// account plus the admin flag from the token.
type Actor struct {
	UserID     uuid.UUID
	ExternalID string
	Username   string
	IsAdmin    bool
}

// Verifier checks HMAC-signed session tokens against a shared secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a bearer token. It returns the claims on
// success; any failure (bad signature, wrong alg, expired, malformed,
// missing subject) comes back wrapped in ErrInvalidToken.
func (v *Verifier) Verify(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidToken)
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return &claims, nil
}
