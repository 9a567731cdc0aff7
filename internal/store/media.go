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

// MediaStore implements blog.MediaRepository on Postgres. It tracks
// metadata only; the bytes live on the storage backend named by Disk.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

func scanMedia(row interface{ Scan(...any) error }) (*models.Media, error) {
	m := &models.Media{}
	err := row.Scan(
		&m.ID, &m.FileName, &m.FilePath, &m.MimeType, &m.FileSize,
		&m.AltText, &m.Caption, &m.Disk, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// FindByID retrieves a media record.
func (s *MediaStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	m, err := scanMedia(s.db.QueryRowContext(ctx, `
		SELECT id, file_name, file_path, mime_type, file_size,
		       alt_text, caption, disk, created_at, updated_at
		FROM blog_media WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// Create inserts a new media record.
func (s *MediaStore) Create(ctx context.Context, media *models.Media) (*models.Media, error) {
	m, err := scanMedia(s.db.QueryRowContext(ctx, `
		INSERT INTO blog_media (file_name, file_path, mime_type, file_size,
		                        alt_text, caption, disk)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, file_name, file_path, mime_type, file_size,
		          alt_text, caption, disk, created_at, updated_at
	`, media.FileName, media.FilePath, media.MimeType, media.FileSize,
		media.AltText, media.Caption, media.Disk))
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return m, nil
}

// Delete removes a media record.
func (s *MediaStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM blog_media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	if affected == 0 {
		return blog.ErrNotFound
	}
	return nil
}

// List returns all media records, newest first.
func (s *MediaStore) List(ctx context.Context) ([]models.Media, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_name, file_path, mime_type, file_size,
		       alt_text, caption, disk, created_at, updated_at
		FROM blog_media
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}
