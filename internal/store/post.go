package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pediblog/internal/listing"
	"pediblog/internal/models"
	"pediblog/internal/slug"
)

// featuredLockID keys the advisory lock serializing featured-post toggles.
// The cap check and the flip must not interleave between transactions.
const featuredLockID = 874011

// createAttempts bounds the slug conflict-retry loop. Each retry re-probes
// against the current slug set, so contention must be continuous to exhaust it.
const createAttempts = 3

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `p.id, p.user_id, p.slug, p.title, p."desc", p.category, p.content, p.img, p.visit, p.is_featured, p.created_at, p.updated_at`

func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.UserID, &p.Slug, &p.Title, &p.Desc, &p.Category,
		&p.Content, &p.Img, &p.Visit, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PostFilter narrows a post listing. Zero values mean "no filter".
// Sort defaults to newest when unset.
type PostFilter struct {
	Category     string
	FeaturedOnly bool
	Search       string // case-insensitive literal substring match on title
	OwnerID      *uuid.UUID
	Sort         listing.Sort
}

// escapeLike neutralizes LIKE metacharacters so search input matches
// literally instead of acting as a pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// where builds the WHERE clause and argument list for this filter.
func (f PostFilter) where() (string, []any) {
	var conds []string
	var args []any

	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("p.category = $%d", len(args)))
	}
	if f.FeaturedOnly {
		conds = append(conds, "p.is_featured")
	}
	if f.Search != "" {
		args = append(args, escapeLike(f.Search))
		conds = append(conds, fmt.Sprintf("p.title ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if f.OwnerID != nil {
		args = append(args, *f.OwnerID)
		conds = append(conds, fmt.Sprintf("p.user_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// List returns the page window of posts matching the filter, sorted per
// f.Sort, with the owner's public profile joined. Sort clauses reference
// output columns, so the author join cannot make them ambiguous.
func (s *PostStore) List(f PostFilter, page listing.Params) ([]models.Post, error) {
	where, args := f.where()
	args = append(args, page.Limit, page.Offset())

	query := fmt.Sprintf(`
		SELECT `+postColumns+`, u.username, u.img AS author_img
		FROM posts p
		JOIN users u ON u.id = p.user_id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, where, f.Sort.OrderBy(), len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		var p models.Post
		var author models.Author
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Slug, &p.Title, &p.Desc, &p.Category,
			&p.Content, &p.Img, &p.Visit, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
			&author.Username, &author.Img,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.User = &author
		items = append(items, p)
	}
	return items, rows.Err()
}

// Count returns the number of posts matching the filter, ignoring pagination.
func (s *PostStore) Count(f PostFilter) (int, error) {
	where, args := f.where()
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts p `+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts p WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a post by slug with the owner's public profile
// joined. Returns nil if not found.
func (s *PostStore) FindBySlug(postSlug string) (*models.Post, error) {
	var p models.Post
	var author models.Author
	err := s.db.QueryRow(`
		SELECT `+postColumns+`, u.username, u.img AS author_img
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.slug = $1
	`, postSlug).Scan(
		&p.ID, &p.UserID, &p.Slug, &p.Title, &p.Desc, &p.Category,
		&p.Content, &p.Img, &p.Visit, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
		&author.Username, &author.Img,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	p.User = &author
	return &p, nil
}

// SlugExists reports whether any post already uses the given slug.
func (s *PostStore) SlugExists(postSlug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM posts WHERE slug = $1)`, postSlug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new post. p.Slug carries the base slug; the stored slug
// is the first free candidate in the base, base-2, base-3, … sequence. The
// unique index backstops the probe: a concurrent insert that takes the
// chosen slug surfaces as a unique violation and the probe reruns.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	base := p.Slug

	for attempt := 0; attempt < createAttempts; attempt++ {
		unique, err := slug.MakeUnique(base, s.SlugExists)
		if err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}

		row := s.db.QueryRow(`
			INSERT INTO posts (user_id, slug, title, "desc", category, content, img)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+strings.ReplaceAll(postColumns, "p.", ""),
			p.UserID, unique, p.Title, p.Desc, p.Category, p.Content, p.Img,
		)
		created, err := scanPost(row)
		if isUniqueViolation(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
		return created, nil
	}

	return nil, fmt.Errorf("create post: slug contention on %q: %w", base, ErrConflict)
}

// applyPatch is the shared COALESCE update. The owner column is absent from
// the statement, so no patch can ever reassign a post.
const applyPatch = `
	UPDATE posts SET
		title = COALESCE($1, title),
		"desc" = COALESCE($2, "desc"),
		category = COALESCE($3, category),
		content = COALESCE($4, content),
		img = COALESCE($5, img),
		updated_at = NOW()
`

// Update modifies a post by id regardless of owner (admin path). The
// original owner is always preserved. Returns ErrNotFound for a missing id.
func (s *PostStore) Update(id uuid.UUID, patch models.PostPatch) (*models.Post, error) {
	row := s.db.QueryRow(
		applyPatch+`WHERE id = $6 RETURNING `+strings.ReplaceAll(postColumns, "p.", ""),
		patch.Title, patch.Desc, patch.Category, patch.Content, patch.Img, id,
	)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("update post: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

// UpdateOwned modifies a post only if ownerID owns it. Returns ErrNotFound
// for a missing post and ErrNotOwned when it belongs to someone else.
func (s *PostStore) UpdateOwned(id, ownerID uuid.UUID, patch models.PostPatch) (*models.Post, error) {
	row := s.db.QueryRow(
		applyPatch+`WHERE id = $6 AND user_id = $7 RETURNING `+strings.ReplaceAll(postColumns, "p.", ""),
		patch.Title, patch.Desc, patch.Category, patch.Content, patch.Img, id, ownerID,
	)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, s.ownershipError("update", id)
	}
	if err != nil {
		return nil, fmt.Errorf("update owned post: %w", err)
	}
	return p, nil
}

// Delete removes a post by id regardless of owner (admin path).
func (s *PostStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete post: %w", ErrNotFound)
	}
	return nil
}

// DeleteOwned removes a post only if ownerID owns it.
func (s *PostStore) DeleteOwned(id, ownerID uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete owned post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return s.ownershipError("delete", id)
	}
	return nil
}

// ownershipError distinguishes a missing post from one owned by someone else.
func (s *PostStore) ownershipError(op string, id uuid.UUID) error {
	existing, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%s post: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s post: %w", op, ErrNotOwned)
}

// FeaturedCount returns how many posts are currently featured.
func (s *PostStore) FeaturedCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE is_featured`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("featured count: %w", err)
	}
	return count, nil
}

// ToggleFeatured flips a post's featured flag. Featuring is guarded by the
// MaxFeaturedPosts cap; unfeaturing is unconditional. The whole
// check-then-flip runs in one transaction serialized by an advisory lock,
// so two concurrent toggles cannot push the count past the cap.
func (s *PostStore) ToggleFeatured(id uuid.UUID) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("toggle featured: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`SELECT pg_advisory_xact_lock($1)`, featuredLockID); err != nil {
		return nil, fmt.Errorf("toggle featured: lock: %w", err)
	}

	var featured bool
	err = tx.QueryRow(`SELECT is_featured FROM posts WHERE id = $1`, id).Scan(&featured)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("toggle featured: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle featured: %w", err)
	}

	if !featured {
		var count int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM posts WHERE is_featured`).Scan(&count); err != nil {
			return nil, fmt.Errorf("toggle featured: count: %w", err)
		}
		if count >= models.MaxFeaturedPosts {
			return nil, fmt.Errorf("toggle featured: %w", ErrFeaturedLimit)
		}
	}

	row := tx.QueryRow(`
		UPDATE posts SET is_featured = NOT is_featured, updated_at = NOW()
		WHERE id = $1
		RETURNING `+strings.ReplaceAll(postColumns, "p.", ""), id)
	p, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("toggle featured: update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("toggle featured: commit: %w", err)
	}
	return p, nil
}
