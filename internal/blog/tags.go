// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/slug"
)

// TagService manages tags: CRUD with the shared slug policy, name search
// for auto-complete, and popularity ranking by post count.
type TagService struct {
	repo   TagRepository
	events EventSink
}

// TagOption configures a TagService.
type TagOption func(*TagService)

// WithTagEvents sets the event sink notified after mutations persist.
func WithTagEvents(sink EventSink) TagOption {
	return func(s *TagService) { s.events = sink }
}

// NewTagService returns a TagService over the given repository.
func NewTagService(repo TagRepository, opts ...TagOption) *TagService {
	s := &TagService{repo: repo, events: NoopSink{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTagInput carries the fields for creating a tag.
type CreateTagInput struct {
	Name        string
	Slug        string
	Description string
}

// UpdateTagInput carries a partial tag update.
type UpdateTagInput struct {
	Name        *string
	Slug        *string
	Description *string
}

// Get returns a tag by ID.
func (s *TagService) Get(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBySlug returns a tag by slug.
func (s *TagService) GetBySlug(ctx context.Context, tagSlug string) (*models.Tag, error) {
	return s.repo.FindBySlug(ctx, tagSlug)
}

// List returns all tags.
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	return s.repo.List(ctx)
}

// Search returns up to limit tags whose names match the query.
func (s *TagService) Search(ctx context.Context, query string, limit int) ([]models.Tag, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.Search(ctx, query, limit)
}

// Popular returns up to limit tags ranked by descending post count.
func (s *TagService) Popular(ctx context.Context, limit int) ([]models.Tag, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.Popular(ctx, limit)
}

// Create inserts a new tag, deriving a unique slug from the name when
// none is supplied.
func (s *TagService) Create(ctx context.Context, in CreateTagInput) (*models.Tag, error) {
	tagSlug := in.Slug
	if tagSlug == "" {
		var err error
		tagSlug, err = s.uniqueSlug(ctx, in.Name, uuid.Nil)
		if err != nil {
			return nil, err
		}
	}

	created, err := s.repo.Create(ctx, &models.Tag{
		Name:        in.Name,
		Slug:        tagSlug,
		Description: in.Description,
	})
	if err != nil {
		return nil, err
	}

	if err := s.events.TagCreated(ctx, created); err != nil {
		slog.Warn("event sink error", "event", "tag created", "error", err)
	}
	return created, nil
}

// Update applies a partial update, regenerating the slug when the name
// changed without an explicit slug in the same update.
func (s *TagService) Update(ctx context.Context, id uuid.UUID, in UpdateTagInput) (*models.Tag, error) {
	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	nameChanged := in.Name != nil && *in.Name != tag.Name
	if in.Name != nil {
		tag.Name = *in.Name
	}
	switch {
	case in.Slug != nil:
		tag.Slug = *in.Slug
	case nameChanged:
		tag.Slug, err = s.uniqueSlug(ctx, tag.Name, tag.ID)
		if err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		tag.Description = *in.Description
	}

	return s.repo.Update(ctx, tag)
}

// Delete removes a tag.
func (s *TagService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// uniqueSlug derives a slug from name and resolves collisions against
// sibling tags with one prefix query.
func (s *TagService) uniqueSlug(ctx context.Context, name string, excluding uuid.UUID) (string, error) {
	base := slug.Generate(name)
	taken, err := s.repo.SlugsLike(ctx, base, excluding)
	if err != nil {
		return "", err
	}
	return slug.Unique(base, taken)
}
