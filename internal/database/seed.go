package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/brianvoe/gofakeit/v6"

	"pediblog/internal/slug"
)

// seedCategories are the default sections of the hospital blog.
var seedCategories = []struct {
	name, icon, color, hoverColor string
}{
	{"General", "fas fa-folder", "bg-gray-600 text-white", "hover:bg-gray-700"},
	{"Nutrition", "fas fa-apple-alt", "bg-green-600 text-white", "hover:bg-green-700"},
	{"Vaccines", "fas fa-syringe", "bg-blue-600 text-white", "hover:bg-blue-700"},
	{"Development", "fas fa-child", "bg-purple-600 text-white", "hover:bg-purple-700"},
	{"First Aid", "fas fa-briefcase-medical", "bg-red-600 text-white", "hover:bg-red-700"},
}

// Seed populates the database with initial development data: the default
// category set, one demo author, and a handful of fake posts. It is a no-op
// when users already exist (e.g. after the first webhook sync).
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	for _, c := range seedCategories {
		_, err := db.Exec(`
			INSERT INTO categories (name, slug, icon, color, hover_color)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (name) DO NOTHING
		`, c.name, slug.Generate(c.name), c.icon, c.color, c.hoverColor)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.name, err)
		}
	}

	var authorID string
	err := db.QueryRow(`
		INSERT INTO users (external_id, username, email)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "seed_demo_author", "demo-author", "author@pediblog.local").Scan(&authorID)
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	for i := 0; i < 8; i++ {
		title := gofakeit.Sentence(gofakeit.Number(4, 9))
		_, err := db.Exec(`
			INSERT INTO posts (user_id, slug, title, "desc", category, content, visit)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			authorID,
			fmt.Sprintf("%s-%d", slug.Generate(title), i+1),
			title,
			gofakeit.Sentence(12),
			slug.Generate(seedCategories[i%len(seedCategories)].name),
			"<p>"+gofakeit.Paragraph(3, 4, 12, "</p><p>")+"</p>",
			gofakeit.Number(0, 500),
		)
		if err != nil {
			return fmt.Errorf("seed insert post: %w", err)
		}
	}

	slog.Info("database seeded with demo categories and posts",
		"categories", len(seedCategories),
		"posts", 8,
	)

	return nil
}
