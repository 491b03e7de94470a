package models

import (
	"time"

	"github.com/google/uuid"
)

// Default presentation values applied when a category is created without them.
const (
	DefaultCategoryIcon       = "fas fa-folder"
	DefaultCategoryColor      = "bg-blue-600 text-white"
	DefaultCategoryHoverColor = "hover:bg-blue-700"
)

// Category labels posts. Name and slug are unique; posts reference a
// category by either string rather than by ID.
type Category struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Icon       string    `json:"icon"`
	Color      string    `json:"color"`
	HoverColor string    `json:"hoverColor"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Virtual field populated by CategoryStore.List.
	PostCount int `json:"post_count"`
}
