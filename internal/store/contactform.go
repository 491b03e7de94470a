package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pediblog/internal/listing"
	"pediblog/internal/models"
)

// ContactFormStore handles consultation-request persistence.
type ContactFormStore struct {
	db *sql.DB
}

// NewContactFormStore creates a new ContactFormStore with the given database connection.
func NewContactFormStore(db *sql.DB) *ContactFormStore {
	return &ContactFormStore{db: db}
}

const contactFormColumns = `cf.id, cf.parent_name, cf.parent_surname, cf.child_name, cf.child_gender,
	cf.child_age, cf.child_birth_date, cf.contact_phone, cf.contact_email,
	cf.consultation_reason, cf.status, cf.related_post_id, cf.created_at, cf.updated_at`

func scanContactForm(scanner interface{ Scan(...any) error }) (*models.ContactForm, error) {
	var f models.ContactForm
	err := scanner.Scan(
		&f.ID, &f.ParentName, &f.ParentSurname, &f.ChildName, &f.ChildGender,
		&f.ChildAge, &f.ChildBirthDate, &f.ContactPhone, &f.ContactEmail,
		&f.ConsultationReason, &f.Status, &f.RelatedPostID, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a new contact form in the pending state. RelatedPostID is
// stored as sent without checking that the post exists.
func (s *ContactFormStore) Create(f *models.ContactForm) (*models.ContactForm, error) {
	row := s.db.QueryRow(`
		INSERT INTO contact_forms (
			parent_name, parent_surname, child_name, child_gender, child_age,
			child_birth_date, contact_phone, contact_email, consultation_reason,
			related_post_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+strings.ReplaceAll(contactFormColumns, "cf.", ""),
		f.ParentName, f.ParentSurname, f.ChildName, f.ChildGender, f.ChildAge,
		f.ChildBirthDate, f.ContactPhone, f.ContactEmail, f.ConsultationReason,
		f.RelatedPostID,
	)
	created, err := scanContactForm(row)
	if err != nil {
		return nil, fmt.Errorf("create contact form: %w", err)
	}
	return created, nil
}

// List returns the page window of contact forms, newest first, optionally
// filtered by status. An empty status means all states. The referenced
// post's title and slug are joined in while the post still exists.
func (s *ContactFormStore) List(status models.ContactFormStatus, page listing.Params) ([]models.ContactForm, error) {
	var args []any
	where := ""
	if status != "" {
		args = append(args, status)
		where = "WHERE cf.status = $1"
	}
	args = append(args, page.Limit, page.Offset())

	query := fmt.Sprintf(`
		SELECT `+contactFormColumns+`, p.title, p.slug
		FROM contact_forms cf
		LEFT JOIN posts p ON p.id = cf.related_post_id
		%s
		ORDER BY cf.created_at DESC, cf.id DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contact forms: %w", err)
	}
	defer rows.Close()

	var items []models.ContactForm
	for rows.Next() {
		var f models.ContactForm
		var postTitle, postSlug sql.NullString
		if err := rows.Scan(
			&f.ID, &f.ParentName, &f.ParentSurname, &f.ChildName, &f.ChildGender,
			&f.ChildAge, &f.ChildBirthDate, &f.ContactPhone, &f.ContactEmail,
			&f.ConsultationReason, &f.Status, &f.RelatedPostID, &f.CreatedAt, &f.UpdatedAt,
			&postTitle, &postSlug,
		); err != nil {
			return nil, fmt.Errorf("scan contact form: %w", err)
		}
		if postTitle.Valid {
			f.RelatedPost = &models.RelatedPost{Title: postTitle.String, Slug: postSlug.String}
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

// Count returns the number of contact forms matching the status filter.
func (s *ContactFormStore) Count(status models.ContactFormStatus) (int, error) {
	var count int
	var err error
	if status == "" {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM contact_forms`).Scan(&count)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM contact_forms WHERE status = $1`, status).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count contact forms: %w", err)
	}
	return count, nil
}

// UpdateStatus moves a contact form to the given state. Any state may
// transition to any other. Returns ErrNotFound for a missing id.
func (s *ContactFormStore) UpdateStatus(id uuid.UUID, status models.ContactFormStatus) (*models.ContactForm, error) {
	row := s.db.QueryRow(`
		UPDATE contact_forms SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+strings.ReplaceAll(contactFormColumns, "cf.", ""),
		status, id,
	)
	f, err := scanContactForm(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("update contact form status: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update contact form status: %w", err)
	}
	return f, nil
}

// Delete removes a contact form. Returns ErrNotFound for a missing id.
func (s *ContactFormStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM contact_forms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact form: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete contact form: %w", ErrNotFound)
	}
	return nil
}
