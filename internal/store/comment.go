package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"pediblog/internal/models"
)

// CommentStore handles all comment-related database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// ListByPost returns all comments on a post, newest first, with each
// author's public profile joined.
func (s *CommentStore) ListByPost(postID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.user_id, c.post_id, c."desc", c.created_at, u.username, u.img
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		var c models.Comment
		var author models.Author
		if err := rows.Scan(&c.ID, &c.UserID, &c.PostID, &c.Desc, &c.CreatedAt,
			&author.Username, &author.Img); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.User = &author
		items = append(items, c)
	}
	return items, rows.Err()
}

// Create inserts a new comment on a post.
func (s *CommentStore) Create(userID, postID uuid.UUID, desc string) (*models.Comment, error) {
	var c models.Comment
	err := s.db.QueryRow(`
		INSERT INTO comments (user_id, post_id, "desc")
		VALUES ($1, $2, $3)
		RETURNING id, user_id, post_id, "desc", created_at
	`, userID, postID, desc).Scan(&c.ID, &c.UserID, &c.PostID, &c.Desc, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &c, nil
}

// Delete removes a comment by id regardless of owner (admin path).
func (s *CommentStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete comment: %w", ErrNotFound)
	}
	return nil
}

// DeleteOwned removes a comment only if ownerID owns it. Returns
// ErrNotFound for a missing comment and ErrNotOwned when it belongs to
// someone else.
func (s *CommentStore) DeleteOwned(id, ownerID uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM comments WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete owned comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	var exists bool
	if err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("delete owned comment: %w", err)
	}
	if !exists {
		return fmt.Errorf("delete comment: %w", ErrNotFound)
	}
	return fmt.Errorf("delete comment: %w", ErrNotOwned)
}
