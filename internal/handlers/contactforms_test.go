package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"pediblog/internal/models"
)

func TestContactFormsCreate(t *testing.T) {
	env := newTestEnv(t)

	email := "handler-cf-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { env.DB.Exec("DELETE FROM contact_forms WHERE contact_email = $1", email) })

	body := `{
		"parentName": "Maria",
		"parentSurname": "Popescu",
		"contactPhone": "+40700000000",
		"contactEmail": "` + email + `",
		"consultationReason": "night fevers"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact-forms", strings.NewReader(body))
	rr := httptest.NewRecorder()
	env.ContactForms.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201: %s", rr.Code, rr.Body.String())
	}
	var created models.ContactForm
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Status != models.ContactFormPending {
		t.Errorf("status: got %q, want pending", created.Status)
	}
}

func TestContactFormsCreateValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing parentName", `{"parentSurname": "P", "contactPhone": "1", "contactEmail": "a@b.c", "consultationReason": "r"}`},
		{"missing reason", `{"parentName": "M", "parentSurname": "P", "contactPhone": "1", "contactEmail": "a@b.c"}`},
		{"bad relatedPost", `{"parentName": "M", "parentSurname": "P", "contactPhone": "1", "contactEmail": "a@b.c", "consultationReason": "r", "relatedPost": "not-a-uuid"}`},
		{"invalid json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/contact-forms", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			env.ContactForms.Create(rr, req)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("got status %d, want 400: %s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestContactFormsUpdateStatus(t *testing.T) {
	env := newTestEnv(t)

	email := "handler-cf-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { env.DB.Exec("DELETE FROM contact_forms WHERE contact_email = $1", email) })

	body := `{"parentName": "M", "parentSurname": "P", "contactPhone": "1", "contactEmail": "` + email + `", "consultationReason": "r"}`
	rr := httptest.NewRecorder()
	env.ContactForms.Create(rr, httptest.NewRequest(http.MethodPost, "/api/contact-forms", strings.NewReader(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("seed form: got status %d: %s", rr.Code, rr.Body.String())
	}
	var created models.ContactForm
	json.Unmarshal(rr.Body.Bytes(), &created)

	// Unknown enum value is rejected before touching the store.
	req := withChiURLParam(httptest.NewRequest(http.MethodPatch, "/api/contact-forms/x/status", strings.NewReader(`{"status": "archived"}`)), "id", created.ID.String())
	rr = httptest.NewRecorder()
	env.ContactForms.UpdateStatus(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("invalid status: got %d, want 400", rr.Code)
	}

	req = withChiURLParam(httptest.NewRequest(http.MethodPatch, "/api/contact-forms/x/status", strings.NewReader(`{"status": "reviewed"}`)), "id", created.ID.String())
	rr = httptest.NewRecorder()
	env.ContactForms.UpdateStatus(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var updated models.ContactForm
	json.Unmarshal(rr.Body.Bytes(), &updated)
	if updated.Status != models.ContactFormReviewed {
		t.Errorf("status: got %q, want reviewed", updated.Status)
	}

	// Missing form.
	req = withChiURLParam(httptest.NewRequest(http.MethodPatch, "/api/contact-forms/x/status", strings.NewReader(`{"status": "reviewed"}`)), "id", uuid.NewString())
	rr = httptest.NewRecorder()
	env.ContactForms.UpdateStatus(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("missing form: got %d, want 404", rr.Code)
	}
}
