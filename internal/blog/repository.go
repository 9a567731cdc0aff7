// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

// Package blog holds the domain services for the blog engine: the post
// lifecycle state machine, the category ordering engine, tag management,
// and the storage ports the concrete drivers implement.
package blog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// Direction selects a neighbour relative to a sort order value.
type Direction string

const (
	Before Direction = "before"
	After  Direction = "after"
)

// OrderUpdate assigns a new sort order to one category. Batches passed to
// UpdateOrders must be applied atomically: either every row moves or none.
type OrderUpdate struct {
	ID        uuid.UUID
	SortOrder int
}

// PostQuery describes filtering, sorting, and pagination for post listings.
// Zero values mean "no filter". Sort accepts a column name with an optional
// leading '-' for descending; drivers default to "-published_at".
type PostQuery struct {
	CategoryID    *uuid.UUID
	TagID         *uuid.UUID
	TagIDs        []uuid.UUID
	AuthorID      *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	Status        *models.PostStatus
	PublishedOnly bool // status=published and published_at <= now
	ScheduledOnly bool // status=published and published_at > now
	Search        string
	Sort          string
	Page          int
	PerPage       int
}

// PostRepository is the storage port for posts. Lookups return ErrNotFound
// when the identifier or slug does not resolve; List returns the page of
// posts plus the total match count.
type PostRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	// SlugsLike returns every existing slug starting with prefix,
	// excluding the given post (uuid.Nil to exclude nothing). One call
	// serves the whole suffix search during slug collision resolution.
	SlugsLike(ctx context.Context, prefix string, excluding uuid.UUID) ([]string, error)
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q PostQuery) ([]models.Post, int, error)
	TagIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error)
	SyncTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error
}

// CategoryRepository is the storage port for categories. The ordering
// engine relies on FindAdjacent, ListByOrderRange, and the atomicity of
// UpdateOrders; everything else is plain CRUD.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	SlugsLike(ctx context.Context, prefix string, excluding uuid.UUID) ([]string, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListOrdered returns all categories in canonical display order:
	// ascending (sort_order, name).
	ListOrdered(ctx context.Context) ([]models.Category, error)
	// FindAdjacent returns the category whose sort order is nearest to
	// order in the given direction, or nil when none exists.
	FindAdjacent(ctx context.Context, order int, dir Direction) (*models.Category, error)
	// ListByOrderRange returns categories with low <= sort_order <= high,
	// excluding the given id.
	ListByOrderRange(ctx context.Context, low, high int, excluding uuid.UUID) ([]models.Category, error)
	// UpdateOrders applies all order assignments atomically.
	UpdateOrders(ctx context.Context, updates []OrderUpdate) error
}

// TagRepository is the storage port for tags.
type TagRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	FindBySlug(ctx context.Context, slug string) (*models.Tag, error)
	SlugsLike(ctx context.Context, prefix string, excluding uuid.UUID) ([]string, error)
	Create(ctx context.Context, tag *models.Tag) (*models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) (*models.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Tag, error)
	// Search matches tag names case-insensitively, for auto-complete.
	Search(ctx context.Context, query string, limit int) ([]models.Tag, error)
	// Popular returns tags ordered by descending post count.
	Popular(ctx context.Context, limit int) ([]models.Tag, error)
}

// AuthorRepository is the storage port for author profiles.
type AuthorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.AuthorProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.AuthorProfile, error)
	Create(ctx context.Context, profile *models.AuthorProfile) (*models.AuthorProfile, error)
	Update(ctx context.Context, profile *models.AuthorProfile) (*models.AuthorProfile, error)
	List(ctx context.Context) ([]models.AuthorProfile, error)
}

// MediaRepository is the storage port for media library records.
type MediaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error)
	Create(ctx context.Context, media *models.Media) (*models.Media, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Media, error)
}
