package handlers

import (
	"strings"
	"unicode/utf8"

	"pediblog/internal/models"
)

// Validation limits for post and contact-form fields.
const (
	maxTitleLen   = 300
	maxDescLen    = 1_000
	maxContentLen = 100_000
	maxNameLen    = 200
	maxReasonLen  = 5_000
)

// validatePost checks post creation inputs and returns the first error found.
func validatePost(title, desc, content string) string {
	if strings.TrimSpace(title) == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(desc) > maxDescLen {
		return "description is too long (max 1,000 characters)"
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "content is too long (max 100,000 characters)"
	}
	return ""
}

// validatePostPatch applies the creation limits to whichever fields a patch
// carries. Nil fields are left out of the update and are skipped.
func validatePostPatch(p models.PostPatch) string {
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return "title cannot be empty"
		}
		if utf8.RuneCountInString(*p.Title) > maxTitleLen {
			return "title is too long (max 300 characters)"
		}
	}
	if p.Desc != nil && utf8.RuneCountInString(*p.Desc) > maxDescLen {
		return "description is too long (max 1,000 characters)"
	}
	if p.Content != nil && utf8.RuneCountInString(*p.Content) > maxContentLen {
		return "content is too long (max 100,000 characters)"
	}
	return ""
}

// validateContactForm checks the required consultation-request fields and
// returns the first error found.
func validateContactForm(parentName, parentSurname, phone, email, reason string) string {
	if strings.TrimSpace(parentName) == "" {
		return "parentName is required"
	}
	if strings.TrimSpace(parentSurname) == "" {
		return "parentSurname is required"
	}
	if utf8.RuneCountInString(parentName) > maxNameLen || utf8.RuneCountInString(parentSurname) > maxNameLen {
		return "name is too long (max 200 characters)"
	}
	if strings.TrimSpace(phone) == "" {
		return "contactPhone is required"
	}
	if strings.TrimSpace(email) == "" {
		return "contactEmail is required"
	}
	if !strings.Contains(email, "@") {
		return "contactEmail is not a valid email address"
	}
	if strings.TrimSpace(reason) == "" {
		return "consultationReason is required"
	}
	if utf8.RuneCountInString(reason) > maxReasonLen {
		return "consultationReason is too long (max 5,000 characters)"
	}
	return ""
}

// validateComment checks a comment body.
func validateComment(desc string) string {
	if strings.TrimSpace(desc) == "" {
		return "comment text is required"
	}
	if utf8.RuneCountInString(desc) > maxDescLen {
		return "comment is too long (max 1,000 characters)"
	}
	return ""
}
