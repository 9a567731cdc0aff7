// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: a starter
// category set and a published welcome post. It is a no-op when any
// category already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM blog_categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	categories := []struct {
		name, slug, description string
		sortOrder               int
	}{
		{"General", "general", "Everything that fits nowhere else", 1},
		{"Engineering", "engineering", "Technical deep dives", 2},
		{"Announcements", "announcements", "Product and company news", 3},
	}
	var generalID string
	for _, c := range categories {
		var id string
		err := db.QueryRow(`
			INSERT INTO blog_categories (name, slug, description, sort_order)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, c.name, c.slug, c.description, c.sortOrder).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.slug, err)
		}
		if c.slug == "general" {
			generalID = id
		}
	}

	_, err := db.Exec(`
		INSERT INTO blog_posts (title, slug, excerpt, content, category_id,
		                        status, published_at, reading_time)
		VALUES ($1, $2, $3, $4, $5, 'published', NOW(), 1)
	`, "Welcome to your blog", "welcome-to-your-blog",
		"Your blog is up and running.",
		"# Welcome\n\nThis post was created by the database seeder. Edit or delete it from the admin API.",
		generalID,
	)
	if err != nil {
		return fmt.Errorf("seed insert welcome post: %w", err)
	}

	slog.Info("database seeded with starter categories and welcome post")
	return nil
}
