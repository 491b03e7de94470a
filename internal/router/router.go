// Package router sets up all HTTP routes and middleware chains for the
// pediblog API. Routes are grouped by the capability they need: public,
// authenticated, and admin.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"pediblog/internal/handlers"
	"pediblog/internal/middleware"
)

// contactFormRateLimit allows a handful of anonymous submissions per client
// before backing off.
const (
	contactFormRateLimit  = 5
	contactFormRateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. clientURL is the SPA origin allowed by CORS.
func New(
	clientURL string,
	auth *middleware.Auth,
	posts *handlers.Posts,
	categories *handlers.Categories,
	contactForms *handlers.ContactForms,
	comments *handlers.Comments,
	webhook *handlers.Webhook,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{clientURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(auth.Load)

	// Health check.
	r.Get("/health", healthHandler)

	// Identity-provider webhook. Verified by signature, never by bearer token.
	r.Post("/webhooks/identity", webhook.Handle)

	// Public post surface plus the authenticated mutations that live beside it.
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", posts.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/upload-auth", posts.UploadAuth)
			r.Post("/", posts.Create)
			r.Delete("/{id}", posts.Delete)
		})

		r.With(middleware.RequireAdmin).Patch("/feature", posts.ToggleFeatured)

		// Registered last so fixed segments above win.
		r.Get("/{slug}", posts.GetBySlug)
	})

	// Dashboard surface.
	r.Route("/api/user-posts", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/", posts.ListMine)
		r.With(middleware.RequireAdmin).Get("/all", posts.ListAll)
		r.With(middleware.RequireAdmin).Get("/admin/{id}", posts.GetAny)
		r.With(middleware.RequireAdmin).Put("/admin/{id}", posts.UpdateAny)
		r.Get("/{id}", posts.GetMine)
		r.Put("/{id}", posts.UpdateMine)
		r.Delete("/{id}", posts.Delete)
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", categories.List)
		r.With(middleware.RequireAuth).Post("/", categories.Create)
		r.With(middleware.RequireAuth).Delete("/{id}", categories.Delete)
	})

	r.Route("/api/contact-forms", func(r chi.Router) {
		limiter := middleware.NewRateLimiter(contactFormRateLimit, contactFormRateWindow)
		r.With(limiter.Middleware).Post("/", contactForms.Create)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/", contactForms.List)
			r.Patch("/{id}/status", contactForms.UpdateStatus)
			r.Delete("/{id}", contactForms.Delete)
		})
	})

	r.Route("/comments", func(r chi.Router) {
		r.Get("/{postId}", comments.ListByPost)
		r.With(middleware.RequireAuth).Post("/{postId}", comments.Create)
		r.With(middleware.RequireAuth).Delete("/{id}", comments.Delete)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
