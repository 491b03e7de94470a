// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable; the
// response cache and object storage are left nil, which disables them.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"pediblog/internal/auth"
	"pediblog/internal/database"
	"pediblog/internal/middleware"
	"pediblog/internal/models"
	"pediblog/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "pediblog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "pediblog")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB           *sql.DB
	Users        *store.UserStore
	PostStore    *store.PostStore
	Posts        *Posts
	Categories   *Categories
	ContactForms *ContactForms
	Comments     *Comments
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	users := store.NewUserStore(db)
	posts := store.NewPostStore(db)
	categories := store.NewCategoryStore(db)
	forms := store.NewContactFormStore(db)
	comments := store.NewCommentStore(db)

	return &testEnv{
		DB:           db,
		Users:        users,
		PostStore:    posts,
		Posts:        NewPosts(posts, categories, nil, nil),
		Categories:   NewCategories(categories, nil),
		ContactForms: NewContactForms(forms),
		Comments:     NewComments(comments, posts),
	}
}

// testActor creates a throwaway user and returns it as a request actor.
func testActor(t *testing.T, env *testEnv, isAdmin bool) *auth.Actor {
	t.Helper()

	suffix := uuid.NewString()[:8]
	u, err := env.Users.Create("test_ext_"+suffix, "handler-"+suffix, "handler-"+suffix+"@example.com", nil)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM users WHERE id = $1", u.ID) })

	return &auth.Actor{
		UserID:     u.ID,
		ExternalID: u.ExternalID,
		Username:   u.Username,
		IsAdmin:    isAdmin,
	}
}

// asActor attaches an actor to the request the way the auth middleware does.
func asActor(r *http.Request, actor *auth.Actor) *http.Request {
	return r.WithContext(middleware.WithActor(r.Context(), actor))
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// seedPost inserts a post owned by the given actor.
func seedPost(t *testing.T, env *testEnv, actor *auth.Actor, title string) *models.Post {
	t.Helper()

	base := "test-handler-" + uuid.NewString()[:8]
	post, err := env.PostStore.Create(&models.Post{
		UserID: actor.UserID, Slug: base, Title: title, Content: "body",
	})
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM posts WHERE id = $1", post.ID) })
	return post
}
