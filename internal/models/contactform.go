package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactFormStatus is the handling state of an inbound contact form.
// It is a flat enum: any value may transition to any other.
type ContactFormStatus string

const (
	ContactFormPending   ContactFormStatus = "pending"
	ContactFormReviewed  ContactFormStatus = "reviewed"
	ContactFormContacted ContactFormStatus = "contacted"
)

// ValidContactFormStatus reports whether s is one of the three known states.
func ValidContactFormStatus(s ContactFormStatus) bool {
	switch s {
	case ContactFormPending, ContactFormReviewed, ContactFormContacted:
		return true
	}
	return false
}

// RelatedPost is the public identity of the post a contact form was
// submitted from.
type RelatedPost struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// ContactForm is a consultation request submitted by a site visitor.
// RelatedPostID is stored verbatim without an existence check, so it may
// dangle after the post is deleted.
type ContactForm struct {
	ID                 uuid.UUID         `json:"id"`
	ParentName         string            `json:"parentName"`
	ParentSurname      string            `json:"parentSurname"`
	ChildName          *string           `json:"childName,omitempty"`
	ChildGender        *string           `json:"childGender,omitempty"`
	ChildAge           *string           `json:"childAge,omitempty"`
	ChildBirthDate     *string           `json:"childBirthDate,omitempty"`
	ContactPhone       string            `json:"contactPhone"`
	ContactEmail       string            `json:"contactEmail"`
	ConsultationReason string            `json:"consultationReason"`
	Status             ContactFormStatus `json:"status"`
	RelatedPostID      *uuid.UUID        `json:"relatedPost,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`

	// Virtual field populated by listings that join the referenced post.
	// Nil when the reference is unset or dangles.
	RelatedPost *RelatedPost `json:"relatedPostInfo,omitempty"`
}
