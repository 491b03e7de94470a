package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxFeaturedPosts is the hard cap on simultaneously featured posts.
const MaxFeaturedPosts = 3

// Post is a blog article. Category is a loose string (slug or name of a
// Category), not a foreign key. Deleting a category is guarded by a string
// match against this column instead.
type Post struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Desc       string    `json:"desc"`
	Category   string    `json:"category"`
	Content    string    `json:"content"`
	Img        *string   `json:"img,omitempty"`
	Visit      int       `json:"visit"`
	IsFeatured bool      `json:"isFeatured"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Virtual field populated by store methods that join the owner.
	User *Author `json:"user,omitempty"`
}

// PostPatch carries the updatable fields of a post. Ownership is never part
// of a patch: the owner column is fixed at creation time.
type PostPatch struct {
	Title    *string `json:"title"`
	Desc     *string `json:"desc"`
	Category *string `json:"category"`
	Content  *string `json:"content"`
	Img      *string `json:"img"`
}
