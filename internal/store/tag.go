// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/blog"
	"inkwell/internal/models"
)

const tagColumns = `t.id, t.name, t.slug, t.description, t.created_at, t.updated_at,
	       (SELECT COUNT(*) FROM blog_post_tags pt WHERE pt.tag_id = t.id)`

// TagStore implements blog.TagRepository on Postgres.
type TagStore struct {
	db *sql.DB
}

// NewTagStore creates a TagStore with the given database connection.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

func scanTag(row interface{ Scan(...any) error }) (*models.Tag, error) {
	t := &models.Tag{}
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Description,
		&t.CreatedAt, &t.UpdatedAt, &t.PostCount,
	)
	return t, err
}

// FindByID retrieves a tag with its post count.
func (s *TagStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+tagColumns+`
		FROM blog_tags t WHERE t.id = $1
	`, id)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find tag by id: %w", err)
	}
	return t, nil
}

// FindBySlug retrieves a tag by slug.
func (s *TagStore) FindBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+tagColumns+`
		FROM blog_tags t WHERE t.slug = $1
	`, slug)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find tag by slug: %w", err)
	}
	return t, nil
}

// SlugsLike returns every tag slug starting with prefix, minus the
// excluded tag.
func (s *TagStore) SlugsLike(ctx context.Context, prefix string, excluding uuid.UUID) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug FROM blog_tags
		WHERE slug LIKE $1 || '%' AND ($2::uuid IS NULL OR id != $2)
	`, prefix, nullableID(excluding))
	if err != nil {
		return nil, fmt.Errorf("tag slugs like: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("scan slug: %w", err)
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

// Create inserts a new tag.
func (s *TagStore) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO blog_tags (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id, name, slug, description, created_at, updated_at, 0
	`, tag.Name, tag.Slug, tag.Description)

	created, err := scanTag(row)
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return created, nil
}

// Update rewrites a tag's mutable columns.
func (s *TagStore) Update(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE blog_tags SET
			name = $1, slug = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, name, slug, description, created_at, updated_at,
		          (SELECT COUNT(*) FROM blog_post_tags pt WHERE pt.tag_id = blog_tags.id)
	`, tag.Name, tag.Slug, tag.Description, tag.ID)

	updated, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return updated, nil
}

// Delete removes a tag. Pivot rows go with it via ON DELETE CASCADE.
func (s *TagStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM blog_tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if affected == 0 {
		return blog.ErrNotFound
	}
	return nil
}

// List returns all tags alphabetically.
func (s *TagStore) List(ctx context.Context) ([]models.Tag, error) {
	return s.queryTags(ctx, `
		SELECT `+tagColumns+`
		FROM blog_tags t
		ORDER BY t.name ASC
	`)
}

// Search matches tag names case-insensitively, up to limit results.
func (s *TagStore) Search(ctx context.Context, query string, limit int) ([]models.Tag, error) {
	return s.queryTags(ctx, `
		SELECT `+tagColumns+`
		FROM blog_tags t
		WHERE t.name ILIKE '%' || $1 || '%'
		ORDER BY t.name ASC
		LIMIT $2
	`, query, limit)
}

// Popular returns tags ranked by descending post count.
func (s *TagStore) Popular(ctx context.Context, limit int) ([]models.Tag, error) {
	return s.queryTags(ctx, `
		SELECT `+tagColumns+`
		FROM blog_tags t
		ORDER BY 7 DESC, t.name ASC
		LIMIT $1
	`, limit)
}

func (s *TagStore) queryTags(ctx context.Context, query string, args ...any) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, *t)
	}
	return tags, rows.Err()
}
