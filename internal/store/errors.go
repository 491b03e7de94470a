// Package store provides database access methods for all pediblog entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
//
// Finds return (nil, nil) when the row does not exist; guarded mutations
// return one of the sentinel errors below so handlers can map them onto the
// HTTP error taxonomy without inspecting driver errors.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by mutations targeting a missing row.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique constraint (slug, category
	// name, username, email) rejects a write.
	ErrConflict = errors.New("already exists")

	// ErrNotOwned is returned when a non-admin mutation targets a post or
	// comment the caller does not own.
	ErrNotOwned = errors.New("not owned by caller")

	// ErrCategoryInUse blocks deleting a category still referenced by posts.
	ErrCategoryInUse = errors.New("category is referenced by existing posts")

	// ErrFeaturedLimit blocks featuring a post beyond the fixed cap.
	ErrFeaturedLimit = errors.New("cannot feature more than 3 posts")
)

// pgUniqueViolation is the Postgres error code for unique_violation.
const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique-index conflict.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// isUsernameViolation reports whether err is the unique violation on
// users.username specifically. UserStore.Create uses it to tell a
// derived-username collision apart from a duplicate account.
func isUsernameViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation &&
		pgErr.ConstraintName == "users_username_key"
}
