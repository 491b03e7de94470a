package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"pediblog/internal/models"
)

func TestCategoryStoreCreateDefaults(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	name := "Test Defaults " + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, name) })

	created, err := s.Create(&models.Category{
		Name: name,
		Slug: "test-defaults-" + uuid.NewString()[:8],
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.Icon != models.DefaultCategoryIcon {
		t.Errorf("icon: got %q, want default %q", created.Icon, models.DefaultCategoryIcon)
	}
	if created.Color != models.DefaultCategoryColor {
		t.Errorf("color: got %q, want default %q", created.Color, models.DefaultCategoryColor)
	}
	if created.HoverColor != models.DefaultCategoryHoverColor {
		t.Errorf("hoverColor: got %q, want default %q", created.HoverColor, models.DefaultCategoryHoverColor)
	}
}

func TestCategoryStoreCreateDuplicate(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	name := "Test Dup " + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, name) })

	first := &models.Category{Name: name, Slug: "test-dup-" + uuid.NewString()[:8]}
	if _, err := s.Create(first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := s.Create(&models.Category{Name: name, Slug: "test-dup-" + uuid.NewString()[:8]})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate name: got %v, want ErrConflict", err)
	}
}

func TestCategoryStoreListPostCount(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	owner := testUser(t, db)

	name := "Test Count " + uuid.NewString()[:8]
	catSlug := "test-count-" + uuid.NewString()[:8]
	postSlug := "test-catcount-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanPosts(t, db, postSlug)
		cleanCategories(t, db, name)
	})

	created, err := s.Create(&models.Category{Name: name, Slug: catSlug})
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}

	// One post referencing the name, one referencing the slug. Both count.
	posts := NewPostStore(db)
	for _, ref := range []string{name, catSlug} {
		if _, err := posts.Create(&models.Post{
			UserID: owner.ID, Slug: postSlug, Title: "Counted", Category: ref, Content: "c",
		}); err != nil {
			t.Fatalf("Create post: %v", err)
		}
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var got *models.Category
	for i := range all {
		if all[i].ID == created.ID {
			got = &all[i]
			break
		}
	}
	if got == nil {
		t.Fatal("created category missing from List")
	}
	if got.PostCount != 2 {
		t.Errorf("postCount: got %d, want 2", got.PostCount)
	}

	// Alphabetical ordering.
	for i := 1; i < len(all); i++ {
		if all[i-1].Name > all[i].Name {
			t.Errorf("List not sorted by name: %q before %q", all[i-1].Name, all[i].Name)
		}
	}
}

func TestCategoryStoreDeleteGuarded(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	owner := testUser(t, db)

	name := "Test Guard " + uuid.NewString()[:8]
	catSlug := "test-guard-" + uuid.NewString()[:8]
	postSlug := "test-guardpost-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanPosts(t, db, postSlug)
		cleanCategories(t, db, name)
	})

	created, err := s.Create(&models.Category{Name: name, Slug: catSlug})
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}

	post, err := NewPostStore(db).Create(&models.Post{
		UserID: owner.ID, Slug: postSlug, Title: "Holder", Category: catSlug, Content: "c",
	})
	if err != nil {
		t.Fatalf("Create post: %v", err)
	}

	if err := s.Delete(created.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Errorf("Delete referenced category: got %v, want ErrCategoryInUse", err)
	}

	if err := NewPostStore(db).Delete(post.ID); err != nil {
		t.Fatalf("Delete post: %v", err)
	}
	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete unreferenced category: %v", err)
	}

	if err := s.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}
