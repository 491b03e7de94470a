package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"pediblog/internal/models"
)

func TestUserStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	suffix := uuid.NewString()[:8]
	extID := "test_ext_" + suffix
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE external_id = $1", extID) })

	img := "https://img.example.com/avatar.png"
	created, err := s.Create(extID, "parentdoc-"+suffix, "doc-"+suffix+"@example.com", &img)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.Img == nil || *created.Img != img {
		t.Errorf("img: got %v, want %q", created.Img, img)
	}

	found, err := s.FindByExternalID(extID)
	if err != nil {
		t.Fatalf("FindByExternalID: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("FindByExternalID: got %+v, want id %s", found, created.ID)
	}

	missing, err := s.FindByExternalID("test_ext_nonexistent")
	if err != nil {
		t.Fatalf("FindByExternalID (missing): %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown external id")
	}
}

func TestUserStoreCreateUsernameFallback(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	suffix := uuid.NewString()[:8]
	extID := "test_ext_" + suffix
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE external_id = $1", extID) })

	created, err := s.Create(extID, "", "fallback-"+suffix+"@example.com", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Username != "fallback-"+suffix {
		t.Errorf("username: got %q, want email local-part %q", created.Username, "fallback-"+suffix)
	}
}

func TestUserStoreCreateDerivedUsernameCollision(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	suffix := uuid.NewString()[:8]
	local := "shared-" + suffix
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE username LIKE $1", local+"%") })

	// Distinct subjects with the same email local-part get suffixed
	// usernames instead of a conflict.
	want := []string{local, local + "-2", local + "-3"}
	for i, w := range want {
		u, err := s.Create("test_ext_"+suffix+"_"+w, "", local+"@host"+uuid.NewString()[:4]+".example.com", nil)
		if err != nil {
			t.Fatalf("Create #%d: %v", i+1, err)
		}
		if u.Username != w {
			t.Errorf("username #%d: got %q, want %q", i+1, u.Username, w)
		}
	}

	// An explicitly chosen username is never rewritten.
	_, err := s.Create("test_ext_explicit_"+suffix, local, "explicit-"+suffix+"@example.com", nil)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("explicit duplicate username: got %v, want ErrConflict", err)
	}
}

func TestUserStoreCreateDuplicate(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	suffix := uuid.NewString()[:8]
	extID := "test_ext_" + suffix
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE external_id = $1", extID) })

	if _, err := s.Create(extID, "dup-"+suffix, "dup-"+suffix+"@example.com", nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := s.Create(extID, "dup2-"+suffix, "dup2-"+suffix+"@example.com", nil)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate external id: got %v, want ErrConflict", err)
	}
}

func TestUserStoreDeleteCascades(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	posts := NewPostStore(db)

	u := testUser(t, db)

	base := "test-cascade-" + uuid.NewString()[:8]
	created, err := posts.Create(&models.Post{
		UserID: u.ID, Slug: base, Title: "Orphan Check", Content: "c",
	})
	if err != nil {
		t.Fatalf("Create post: %v", err)
	}
	comment, err := NewCommentStore(db).Create(u.ID, created.ID, "great advice")
	if err != nil {
		t.Fatalf("Create comment: %v", err)
	}

	if err := users.DeleteByExternalID(u.ExternalID); err != nil {
		t.Fatalf("DeleteByExternalID: %v", err)
	}

	if p, _ := posts.FindByID(created.ID); p != nil {
		t.Error("expected post removed with its owner")
	}
	var count int
	db.QueryRow("SELECT COUNT(*) FROM comments WHERE id = $1", comment.ID).Scan(&count)
	if count != 0 {
		t.Error("expected comment removed with its author")
	}

	if err := users.DeleteByExternalID(u.ExternalID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}
