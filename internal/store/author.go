// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/blog"
	"inkwell/internal/models"
)

// AuthorStore implements blog.AuthorRepository on Postgres. Social links
// live in a jsonb column.
type AuthorStore struct {
	db *sql.DB
}

// NewAuthorStore creates an AuthorStore with the given database connection.
func NewAuthorStore(db *sql.DB) *AuthorStore {
	return &AuthorStore{db: db}
}

func scanAuthor(row interface{ Scan(...any) error }) (*models.AuthorProfile, error) {
	a := &models.AuthorProfile{}
	var links []byte
	err := row.Scan(
		&a.ID, &a.UserID, &a.DisplayName, &a.Bio, &a.Avatar, &links,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(links) > 0 {
		if err := json.Unmarshal(links, &a.SocialLinks); err != nil {
			return nil, fmt.Errorf("decode social links: %w", err)
		}
	}
	return a, nil
}

func encodeSocialLinks(links map[string]string) ([]byte, error) {
	if links == nil {
		links = map[string]string{}
	}
	return json.Marshal(links)
}

// FindByID retrieves an author profile by its own ID.
func (s *AuthorStore) FindByID(ctx context.Context, id uuid.UUID) (*models.AuthorProfile, error) {
	a, err := scanAuthor(s.db.QueryRowContext(ctx, `
		SELECT id, user_id, display_name, bio, avatar, social_links, created_at, updated_at
		FROM blog_author_profiles WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find author by id: %w", err)
	}
	return a, nil
}

// FindByUserID retrieves an author profile by the host application's user
// reference.
func (s *AuthorStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.AuthorProfile, error) {
	a, err := scanAuthor(s.db.QueryRowContext(ctx, `
		SELECT id, user_id, display_name, bio, avatar, social_links, created_at, updated_at
		FROM blog_author_profiles WHERE user_id = $1
	`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find author by user id: %w", err)
	}
	return a, nil
}

// Create inserts a new author profile.
func (s *AuthorStore) Create(ctx context.Context, profile *models.AuthorProfile) (*models.AuthorProfile, error) {
	links, err := encodeSocialLinks(profile.SocialLinks)
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}

	a, err := scanAuthor(s.db.QueryRowContext(ctx, `
		INSERT INTO blog_author_profiles (user_id, display_name, bio, avatar, social_links)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, display_name, bio, avatar, social_links, created_at, updated_at
	`, profile.UserID, profile.DisplayName, profile.Bio, profile.Avatar, links))
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return a, nil
}

// Update rewrites an author profile's mutable columns.
func (s *AuthorStore) Update(ctx context.Context, profile *models.AuthorProfile) (*models.AuthorProfile, error) {
	links, err := encodeSocialLinks(profile.SocialLinks)
	if err != nil {
		return nil, fmt.Errorf("update author: %w", err)
	}

	a, err := scanAuthor(s.db.QueryRowContext(ctx, `
		UPDATE blog_author_profiles SET
			display_name = $1, bio = $2, avatar = $3, social_links = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, user_id, display_name, bio, avatar, social_links, created_at, updated_at
	`, profile.DisplayName, profile.Bio, profile.Avatar, links, profile.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update author: %w", err)
	}
	return a, nil
}

// List returns all author profiles ordered by display name.
func (s *AuthorStore) List(ctx context.Context) ([]models.AuthorProfile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, display_name, bio, avatar, social_links, created_at, updated_at
		FROM blog_author_profiles
		ORDER BY display_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var authors []models.AuthorProfile
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	return authors, rows.Err()
}
