package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"pediblog/internal/models"
)

// UserStore handles the local mirror of identity-provider accounts.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, external_id, username, email, img, created_at, updated_at`

func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := scanner.Scan(
		&u.ID, &u.ExternalID, &u.Username, &u.Email,
		&u.Img, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByExternalID retrieves a user by their identity-provider subject id.
// Returns nil if not found.
func (s *UserStore) FindByExternalID(externalID string) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE external_id = $1`, externalID)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by external id: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// usernameAttempts bounds the derived-username suffix probe in Create.
const usernameAttempts = 3

// Create inserts a local user from an identity-provider "user created"
// event. Username falls back to the email local-part when the provider
// sends none; if another account already holds that derived name, numeric
// suffixes are probed (john, john-2, john-3) before giving up. Duplicate
// external id, email, or explicitly supplied username maps to ErrConflict;
// the unique indexes are the source of truth, not a prior read.
func (s *UserStore) Create(externalID, username, email string, img *string) (*models.User, error) {
	derived := username == ""
	if derived {
		username = models.UsernameFromEmail(email)
	}

	for attempt := 1; ; attempt++ {
		u, err := s.insert(externalID, username, email, img)
		if err == nil {
			return u, nil
		}
		if derived && attempt < usernameAttempts && isUsernameViolation(err) {
			username = fmt.Sprintf("%s-%d", models.UsernameFromEmail(email), attempt+1)
			continue
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create user %q: %w", externalID, ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
}

func (s *UserStore) insert(externalID, username, email string, img *string) (*models.User, error) {
	row := s.db.QueryRow(`
		INSERT INTO users (external_id, username, email, img)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		externalID, username, email, img,
	)
	return scanUser(row)
}

// DeleteByExternalID removes a user on an identity-provider "user deleted"
// event. The user's posts and comments go with them in the same statement
// via ON DELETE CASCADE. Returns ErrNotFound if no such user exists.
func (s *UserStore) DeleteByExternalID(externalID string) error {
	res, err := s.db.Exec(`DELETE FROM users WHERE external_id = $1`, externalID)
	if err != nil {
		return fmt.Errorf("delete user by external id: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete user %q: %w", externalID, ErrNotFound)
	}
	return nil
}
