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

// CategoryService owns the linear ordering over all categories and the
// three mutation primitives that preserve it: swap with the previous
// neighbour, swap with the next, and move to an absolute position with a
// closing shift. Reads sort ascending by (sort_order, name).
type CategoryService struct {
	repo   CategoryRepository
	events EventSink
}

// CategoryOption configures a CategoryService.
type CategoryOption func(*CategoryService)

// WithCategoryEvents sets the event sink notified after mutations persist.
func WithCategoryEvents(sink EventSink) CategoryOption {
	return func(s *CategoryService) { s.events = sink }
}

// NewCategoryService returns a CategoryService over the given repository.
func NewCategoryService(repo CategoryRepository, opts ...CategoryOption) *CategoryService {
	s := &CategoryService{repo: repo, events: NoopSink{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCategoryInput carries the fields for creating a category. Slug is
// derived from Name when empty; SortOrder defaults to zero.
type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description string
	SortOrder   int
}

// UpdateCategoryInput carries a partial category update.
type UpdateCategoryInput struct {
	Name        *string
	Slug        *string
	Description *string
	SortOrder   *int
}

// Get returns a category by ID.
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBySlug returns a category by slug.
func (s *CategoryService) GetBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	return s.repo.FindBySlug(ctx, categorySlug)
}

// ListOrdered returns all categories in canonical display order.
func (s *CategoryService) ListOrdered(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListOrdered(ctx)
}

// Create inserts a new category, deriving a unique slug from the name
// when none is supplied.
func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	categorySlug := in.Slug
	if categorySlug == "" {
		var err error
		categorySlug, err = s.uniqueSlug(ctx, in.Name, uuid.Nil)
		if err != nil {
			return nil, err
		}
	}

	created, err := s.repo.Create(ctx, &models.Category{
		Name:        in.Name,
		Slug:        categorySlug,
		Description: in.Description,
		SortOrder:   in.SortOrder,
	})
	if err != nil {
		return nil, err
	}

	if err := s.events.CategoryCreated(ctx, created); err != nil {
		slog.Warn("event sink error", "event", "category created", "error", err)
	}
	return created, nil
}

// Update applies a partial update, regenerating the slug when the name
// changed without an explicit slug in the same update.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, in UpdateCategoryInput) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	nameChanged := in.Name != nil && *in.Name != category.Name
	if in.Name != nil {
		category.Name = *in.Name
	}
	switch {
	case in.Slug != nil:
		category.Slug = *in.Slug
	case nameChanged:
		category.Slug, err = s.uniqueSlug(ctx, category.Name, category.ID)
		if err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.SortOrder != nil {
		category.SortOrder = *in.SortOrder
	}

	return s.repo.Update(ctx, category)
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// MoveUp swaps the category's sort order with its predecessor (the
// category holding the largest order strictly below). Returns false, not
// an error, when the category is already first.
func (s *CategoryService) MoveUp(ctx context.Context, id uuid.UUID) (bool, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	prev, err := s.repo.FindAdjacent(ctx, category.SortOrder, Before)
	if err != nil {
		return false, &CategoryError{ID: id, Op: "move up", Err: err}
	}
	if prev == nil {
		return false, nil
	}

	err = s.repo.UpdateOrders(ctx, []OrderUpdate{
		{ID: category.ID, SortOrder: prev.SortOrder},
		{ID: prev.ID, SortOrder: category.SortOrder},
	})
	if err != nil {
		return false, &CategoryError{ID: id, Op: "move up", Err: err}
	}
	return true, nil
}

// MoveDown swaps the category's sort order with its successor. Returns
// false when the category is already last.
func (s *CategoryService) MoveDown(ctx context.Context, id uuid.UUID) (bool, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	next, err := s.repo.FindAdjacent(ctx, category.SortOrder, After)
	if err != nil {
		return false, &CategoryError{ID: id, Op: "move down", Err: err}
	}
	if next == nil {
		return false, nil
	}

	err = s.repo.UpdateOrders(ctx, []OrderUpdate{
		{ID: category.ID, SortOrder: next.SortOrder},
		{ID: next.ID, SortOrder: category.SortOrder},
	})
	if err != nil {
		return false, &CategoryError{ID: id, Op: "move down", Err: err}
	}
	return true, nil
}

// SetOrder moves a category to an absolute position. Categories between
// the old and new position shift by one to close the gap: moving later
// decrements every order in (old, new], moving earlier increments every
// order in [new, old). The whole batch persists atomically or not at all.
func (s *CategoryService) SetOrder(ctx context.Context, id uuid.UUID, newOrder int) error {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	var updates []OrderUpdate
	switch {
	case newOrder > category.SortOrder:
		affected, err := s.repo.ListByOrderRange(ctx, category.SortOrder+1, newOrder, category.ID)
		if err != nil {
			return &CategoryError{ID: id, Op: "set order", Err: err}
		}
		for _, c := range affected {
			updates = append(updates, OrderUpdate{ID: c.ID, SortOrder: c.SortOrder - 1})
		}
	case newOrder < category.SortOrder:
		affected, err := s.repo.ListByOrderRange(ctx, newOrder, category.SortOrder-1, category.ID)
		if err != nil {
			return &CategoryError{ID: id, Op: "set order", Err: err}
		}
		for _, c := range affected {
			updates = append(updates, OrderUpdate{ID: c.ID, SortOrder: c.SortOrder + 1})
		}
	}
	updates = append(updates, OrderUpdate{ID: category.ID, SortOrder: newOrder})

	if err := s.repo.UpdateOrders(ctx, updates); err != nil {
		return &CategoryError{ID: id, Op: "set order", Err: err}
	}
	return nil
}

// uniqueSlug derives a slug from name and resolves collisions against
// sibling categories with one prefix query.
func (s *CategoryService) uniqueSlug(ctx context.Context, name string, excluding uuid.UUID) (string, error) {
	base := slug.Generate(name)
	taken, err := s.repo.SlugsLike(ctx, base, excluding)
	if err != nil {
		return "", err
	}
	return slug.Unique(base, taken)
}
