// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a local mirror of an identity-provider account. Users are created
// and deleted exclusively by provider webhook events, never by the API.
type User struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"-"` // identity-provider subject, never exposed
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Img        *string   `json:"img,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Author is the public subset of a user joined onto posts and comments.
type Author struct {
	Username string  `json:"username"`
	Img      *string `json:"img,omitempty"`
}

// UsernameFromEmail derives a fallback username from the local part of an
// email address. Used when the provider event carries no username.
func UsernameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
