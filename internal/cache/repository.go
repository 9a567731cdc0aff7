// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"

	"inkwell/internal/blog"
	"inkwell/internal/models"
)

const (
	postKeyPrefix     = "blog:posts:"
	categoryKeyPrefix = "blog:categories:"
)

// CachedPostRepository decorates a PostRepository with read-through
// caching. Every mutation clears the whole post keyspace; precision
// invalidation is not worth the bookkeeping at blog scale.
type CachedPostRepository struct {
	inner blog.PostRepository
	cache *QueryCache
}

// NewCachedPostRepository wraps repo with the given query cache.
func NewCachedPostRepository(repo blog.PostRepository, cache *QueryCache) *CachedPostRepository {
	return &CachedPostRepository{inner: repo, cache: cache}
}

func (r *CachedPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.cache.Remember(ctx, postKeyPrefix+"id:"+id.String(), &post, func() (any, error) {
		return r.inner.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *CachedPostRepository) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.cache.Remember(ctx, postKeyPrefix+"slug:"+slug, &post, func() (any, error) {
		return r.inner.FindBySlug(ctx, slug)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// SlugsLike always hits the driver. Collision checks must never see a
// stale slug set.
func (r *CachedPostRepository) SlugsLike(ctx context.Context, prefix string, excluding uuid.UUID) ([]string, error) {
	return r.inner.SlugsLike(ctx, prefix, excluding)
}

func (r *CachedPostRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	created, err := r.inner.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	r.cache.InvalidatePrefix(ctx, postKeyPrefix)
	return created, nil
}

func (r *CachedPostRepository) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	updated, err := r.inner.Update(ctx, post)
	if err != nil {
		return nil, err
	}
	r.cache.InvalidatePrefix(ctx, postKeyPrefix)
	return updated, nil
}

func (r *CachedPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.InvalidatePrefix(ctx, postKeyPrefix)
	return nil
}

func (r *CachedPostRepository) List(ctx context.Context, q blog.PostQuery) ([]models.Post, int, error) {
	var page struct {
		Posts []models.Post `json:"posts"`
		Total int           `json:"total"`
	}
	err := r.cache.Remember(ctx, postKeyPrefix+"list:"+queryKey(q), &page, func() (any, error) {
		posts, total, err := r.inner.List(ctx, q)
		if err != nil {
			return nil, err
		}
		return map[string]any{"posts": posts, "total": total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return page.Posts, page.Total, nil
}

func (r *CachedPostRepository) TagIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	return r.inner.TagIDs(ctx, postID)
}

func (r *CachedPostRepository) SyncTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	if err := r.inner.SyncTags(ctx, postID, tagIDs); err != nil {
		return err
	}
	r.cache.InvalidatePrefix(ctx, postKeyPrefix)
	return nil
}

// CachedCategoryRepository decorates a CategoryRepository with
// read-through caching on the lookups and the ordered list.
type CachedCategoryRepository struct {
	inner blog.CategoryRepository
	cache *QueryCache
}

// NewCachedCategoryRepository wraps repo with the given query cache.
func NewCachedCategoryRepository(repo blog.CategoryRepository, cache *QueryCache) *CachedCategoryRepository {
	return &CachedCategoryRepository{inner: repo, cache: cache}
}

func (r *CachedCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.cache.Remember(ctx, categoryKeyPrefix+"id:"+id.String(), &category, func() (any, error) {
		return r.inner.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CachedCategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.cache.Remember(ctx, categoryKeyPrefix+"slug:"+slug, &category, func() (any, error) {
		return r.inner.FindBySlug(ctx, slug)
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// SlugsLike always hits the driver, same as for posts.
func (r *CachedCategoryRepository) SlugsLike(ctx context.Context, prefix string, excluding uuid.UUID) ([]string, error) {
	return r.inner.SlugsLike(ctx, prefix, excluding)
}

func (r *CachedCategoryRepository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	created, err := r.inner.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	r.cache.InvalidatePrefix(ctx, categoryKeyPrefix)
	return created, nil
}

func (r *CachedCategoryRepository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	updated, err := r.inner.Update(ctx, category)
	if err != nil {
		return nil, err
	}
	r.cache.InvalidatePrefix(ctx, categoryKeyPrefix)
	return updated, nil
}

func (r *CachedCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.InvalidatePrefix(ctx, categoryKeyPrefix)
	return nil
}

func (r *CachedCategoryRepository) ListOrdered(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.cache.Remember(ctx, categoryKeyPrefix+"ordered", &categories, func() (any, error) {
		return r.inner.ListOrdered(ctx)
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// FindAdjacent and ListByOrderRange feed the reorder engine; they must
// always see current orders.
func (r *CachedCategoryRepository) FindAdjacent(ctx context.Context, order int, dir blog.Direction) (*models.Category, error) {
	return r.inner.FindAdjacent(ctx, order, dir)
}

func (r *CachedCategoryRepository) ListByOrderRange(ctx context.Context, low, high int, excluding uuid.UUID) ([]models.Category, error) {
	return r.inner.ListByOrderRange(ctx, low, high, excluding)
}

func (r *CachedCategoryRepository) UpdateOrders(ctx context.Context, updates []blog.OrderUpdate) error {
	if err := r.inner.UpdateOrders(ctx, updates); err != nil {
		return err
	}
	r.cache.InvalidatePrefix(ctx, categoryKeyPrefix)
	return nil
}

// queryKey derives a stable cache key suffix from a post query.
func queryKey(q blog.PostQuery) string {
	raw, err := json.Marshal(q)
	if err != nil {
		return "invalid"
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}
