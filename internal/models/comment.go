package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader comment on a post. Comments are removed together with
// their post and with their author (ON DELETE CASCADE).
type Comment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	PostID    uuid.UUID `json:"post_id"`
	Desc      string    `json:"desc"`
	CreatedAt time.Time `json:"created_at"`

	// Virtual field populated by store methods that join the author.
	User *Author `json:"user,omitempty"`
}
