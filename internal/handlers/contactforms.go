package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pediblog/internal/listing"
	"pediblog/internal/models"
	"pediblog/internal/store"
)

// ContactForms serves the public consultation-request intake and the admin
// review surface.
type ContactForms struct {
	forms *store.ContactFormStore
}

// NewContactForms creates the contact-form handler group.
func NewContactForms(forms *store.ContactFormStore) *ContactForms {
	return &ContactForms{forms: forms}
}

// createContactFormRequest is the POST /api/contact-forms body.
type createContactFormRequest struct {
	ParentName         string  `json:"parentName"`
	ParentSurname      string  `json:"parentSurname"`
	ChildName          *string `json:"childName"`
	ChildGender        *string `json:"childGender"`
	ChildAge           *string `json:"childAge"`
	ChildBirthDate     *string `json:"childBirthDate"`
	ContactPhone       string  `json:"contactPhone"`
	ContactEmail       string  `json:"contactEmail"`
	ConsultationReason string  `json:"consultationReason"`
	RelatedPostID      *string `json:"relatedPost"`
}

// Create handles POST /api/contact-forms. Public and rate limited. A
// relatedPost that parses as a UUID is stored as sent without checking the
// post exists; anything else is rejected.
func (h *ContactForms) Create(w http.ResponseWriter, r *http.Request) {
	var req createContactFormRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateContactForm(req.ParentName, req.ParentSurname, req.ContactPhone, req.ContactEmail, req.ConsultationReason); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var relatedPostID *uuid.UUID
	if req.RelatedPostID != nil && *req.RelatedPostID != "" {
		id, err := uuid.Parse(*req.RelatedPostID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid relatedPost id")
			return
		}
		relatedPostID = &id
	}

	created, err := h.forms.Create(&models.ContactForm{
		ParentName:         req.ParentName,
		ParentSurname:      req.ParentSurname,
		ChildName:          req.ChildName,
		ChildGender:        req.ChildGender,
		ChildAge:           req.ChildAge,
		ChildBirthDate:     req.ChildBirthDate,
		ContactPhone:       req.ContactPhone,
		ContactEmail:       req.ContactEmail,
		ConsultationReason: req.ConsultationReason,
		RelatedPostID:      relatedPostID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// contactFormListResponse is the pagination envelope for the admin listing.
type contactFormListResponse struct {
	Forms   []models.ContactForm `json:"forms"`
	Total   int                  `json:"total"`
	Page    int                  `json:"page"`
	Limit   int                  `json:"limit"`
	HasMore bool                 `json:"hasMore"`
}

// List handles GET /api/contact-forms (admin) with an optional status filter.
func (h *ContactForms) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	status := models.ContactFormStatus(q.Get("status"))
	if status != "" && !models.ValidContactFormStatus(status) {
		writeError(w, http.StatusBadRequest, "invalid status filter")
		return
	}
	page := listing.Parse(q, listing.DefaultAdminLimit)

	total, err := h.forms.Count(status)
	if err != nil {
		respondError(w, err)
		return
	}
	items, err := h.forms.List(status, page)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.ContactForm{}
	}

	writeJSON(w, http.StatusOK, contactFormListResponse{
		Forms:   items,
		Total:   total,
		Page:    page.Page,
		Limit:   page.Limit,
		HasMore: listing.HasMore(page, total),
	})
}

// UpdateStatus handles PATCH /api/contact-forms/{id}/status (admin).
func (h *ContactForms) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact form id")
		return
	}

	var req struct {
		Status models.ContactFormStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !models.ValidContactFormStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "status must be one of pending, reviewed, contacted")
		return
	}

	updated, err := h.forms.UpdateStatus(id, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/contact-forms/{id} (admin).
func (h *ContactForms) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact form id")
		return
	}

	if err := h.forms.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "contact form deleted"})
}
