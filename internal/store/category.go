package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"pediblog/internal/models"
)

// CategoryStore handles all category-related database operations.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore with the given database connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `c.id, c.name, c.slug, c.icon, c.color, c.hover_color, c.created_at, c.updated_at`

// List returns all categories ordered by name, each with a live count of
// posts referencing it. Posts carry the category as a loose string, so the
// count matches on either the name or the slug.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT ` + categoryColumns + `, COUNT(p.id) AS post_count
		FROM categories c
		LEFT JOIN posts p ON p.category = c.name OR p.category = c.slug
		GROUP BY c.id
		ORDER BY c.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Icon, &c.Color, &c.HoverColor,
			&c.CreatedAt, &c.UpdatedAt, &c.PostCount,
		); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by its UUID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	var c models.Category
	err := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories c WHERE c.id = $1`, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Icon, &c.Color, &c.HoverColor,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return &c, nil
}

// FindByName retrieves a category by exact name. Returns nil if not found.
func (s *CategoryStore) FindByName(name string) (*models.Category, error) {
	var c models.Category
	err := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories c WHERE c.name = $1`, name).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Icon, &c.Color, &c.HoverColor,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by name: %w", err)
	}
	return &c, nil
}

// First returns the alphabetically first category, used as the default when
// a post arrives without one. Returns nil when no categories exist yet.
func (s *CategoryStore) First() (*models.Category, error) {
	var c models.Category
	err := s.db.QueryRow(`SELECT ` + categoryColumns + ` FROM categories c ORDER BY c.name ASC LIMIT 1`).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Icon, &c.Color, &c.HoverColor,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("first category: %w", err)
	}
	return &c, nil
}

// Create inserts a new category. Empty presentation fields fall back to the
// shared defaults. A duplicate name or slug maps to ErrConflict.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	if c.Icon == "" {
		c.Icon = models.DefaultCategoryIcon
	}
	if c.Color == "" {
		c.Color = models.DefaultCategoryColor
	}
	if c.HoverColor == "" {
		c.HoverColor = models.DefaultCategoryHoverColor
	}

	var created models.Category
	err := s.db.QueryRow(`
		INSERT INTO categories (name, slug, icon, color, hover_color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, slug, icon, color, hover_color, created_at, updated_at
	`, c.Name, c.Slug, c.Icon, c.Color, c.HoverColor).Scan(
		&created.ID, &created.Name, &created.Slug, &created.Icon, &created.Color,
		&created.HoverColor, &created.CreatedAt, &created.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("create category %q: %w", c.Name, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &created, nil
}

// Delete removes a category, but only when no posts reference it by name or
// slug. The reference check and the delete run in one transaction with the
// row locked, so a post created mid-delete cannot orphan its category.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete category: begin tx: %w", err)
	}
	defer tx.Rollback()

	var name, catSlug string
	err = tx.QueryRow(`SELECT name, slug FROM categories WHERE id = $1 FOR UPDATE`, id).Scan(&name, &catSlug)
	if err == sql.ErrNoRows {
		return fmt.Errorf("delete category: %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	var inUse bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM posts WHERE category = $1 OR category = $2)`, name, catSlug).Scan(&inUse)
	if err != nil {
		return fmt.Errorf("delete category: reference check: %w", err)
	}
	if inUse {
		return fmt.Errorf("delete category %q: %w", name, ErrCategoryInUse)
	}

	if _, err := tx.Exec(`DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return tx.Commit()
}
