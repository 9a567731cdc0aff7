// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package contentapi

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/blog"
	"inkwell/internal/models"
)

type categoryDoc struct {
	ID          string    `json:"_id"`
	CreatedAt   time.Time `json:"_createdAt"`
	UpdatedAt   time.Time `json:"_updatedAt"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sortOrder"`
	PostCount   int       `json:"postCount"`
}

func (d *categoryDoc) toModel() models.Category {
	return models.Category{
		ID:          docUUID(d.ID),
		Name:        d.Title,
		Slug:        d.Slug,
		Description: d.Description,
		SortOrder:   d.SortOrder,
		PostCount:   d.PostCount,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type tagDoc struct {
	ID          string    `json:"_id"`
	CreatedAt   time.Time `json:"_createdAt"`
	UpdatedAt   time.Time `json:"_updatedAt"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PostCount   int       `json:"postCount"`
}

func (d *tagDoc) toModel() models.Tag {
	return models.Tag{
		ID:          docUUID(d.ID),
		Name:        d.Title,
		Slug:        d.Slug,
		Description: d.Description,
		PostCount:   d.PostCount,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

const categoryProjection = `{
	_id, _createdAt, _updatedAt, title, "slug": slug.current,
	description, sortOrder,
	"postCount": count(*[_type == "post" && references(^._id)])
}`

const tagProjection = `{
	_id, _createdAt, _updatedAt, title, "slug": slug.current, description,
	"postCount": count(*[_type == "post" && references(^._id)])
}`

// CategorySource implements blog.CategoryRepository over the remote CMS.
type CategorySource struct {
	c *Client
}

// NewCategorySource returns a CategorySource over the given client.
func NewCategorySource(c *Client) *CategorySource { return &CategorySource{c: c} }

func (s *CategorySource) fetchAll(ctx context.Context) ([]models.Category, error) {
	var docs []categoryDoc
	err := s.c.query(ctx, `*[_type == "category"]`+categoryProjection, nil, &docs)
	if err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

// FindByID resolves a derived UUID against the remote category set.
func (s *CategorySource) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, blog.ErrNotFound
}

// FindBySlug retrieves a category by slug.
func (s *CategorySource) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var docs []categoryDoc
	err := s.c.query(ctx,
		`*[_type == "category" && slug.current == $slug]`+categoryProjection,
		map[string]string{"slug": slug}, &docs)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, blog.ErrNotFound
	}
	c := docs[0].toModel()
	return &c, nil
}

// SlugsLike returns remote category slugs starting with prefix.
func (s *CategorySource) SlugsLike(ctx context.Context, prefix string, excluding uuid.UUID) ([]string, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	var slugs []string
	for _, c := range all {
		if c.ID != excluding && strings.HasPrefix(c.Slug, prefix) {
			slugs = append(slugs, c.Slug)
		}
	}
	return slugs, nil
}

// Create is not supported; the remote studio owns the taxonomy.
func (s *CategorySource) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	return nil, blog.ErrDriverReadOnly
}

// Update is not supported.
func (s *CategorySource) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	return nil, blog.ErrDriverReadOnly
}

// Delete is not supported.
func (s *CategorySource) Delete(ctx context.Context, id uuid.UUID) error {
	return blog.ErrDriverReadOnly
}

// ListOrdered returns remote categories in canonical display order.
func (s *CategorySource) ListOrdered(ctx context.Context) ([]models.Category, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].SortOrder != all[j].SortOrder {
			return all[i].SortOrder < all[j].SortOrder
		}
		return all[i].Name < all[j].Name
	})
	return all, nil
}

// FindAdjacent returns the category nearest to order in the given
// direction, or nil when none exists.
func (s *CategorySource) FindAdjacent(ctx context.Context, order int, dir blog.Direction) (*models.Category, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	var best *models.Category
	for i := range all {
		c := &all[i]
		switch dir {
		case blog.Before:
			if c.SortOrder < order && (best == nil || c.SortOrder > best.SortOrder) {
				best = c
			}
		case blog.After:
			if c.SortOrder > order && (best == nil || c.SortOrder < best.SortOrder) {
				best = c
			}
		}
	}
	return best, nil
}

// ListByOrderRange returns categories with low <= sort_order <= high,
// excluding the given id.
func (s *CategorySource) ListByOrderRange(ctx context.Context, low, high int, excluding uuid.UUID) ([]models.Category, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Category
	for _, c := range all {
		if c.ID == excluding {
			continue
		}
		if c.SortOrder >= low && c.SortOrder <= high {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

// UpdateOrders is not supported.
func (s *CategorySource) UpdateOrders(ctx context.Context, updates []blog.OrderUpdate) error {
	return blog.ErrDriverReadOnly
}

// TagSource implements blog.TagRepository over the remote CMS.
type TagSource struct {
	c *Client
}

// NewTagSource returns a TagSource over the given client.
func NewTagSource(c *Client) *TagSource { return &TagSource{c: c} }

func (s *TagSource) fetchAll(ctx context.Context) ([]models.Tag, error) {
	var docs []tagDoc
	err := s.c.query(ctx, `*[_type == "tag"]`+tagProjection, nil, &docs)
	if err != nil {
		return nil, err
	}
	out := make([]models.Tag, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

// FindByID resolves a derived UUID against the remote tag set.
func (s *TagSource) FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, blog.ErrNotFound
}

// FindBySlug retrieves a tag by slug.
func (s *TagSource) FindBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var docs []tagDoc
	err := s.c.query(ctx,
		`*[_type == "tag" && slug.current == $slug]`+tagProjection,
		map[string]string{"slug": slug}, &docs)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, blog.ErrNotFound
	}
	t := docs[0].toModel()
	return &t, nil
}

// SlugsLike returns remote tag slugs starting with prefix.
func (s *TagSource) SlugsLike(ctx context.Context, prefix string, excluding uuid.UUID) ([]string, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	var slugs []string
	for _, t := range all {
		if t.ID != excluding && strings.HasPrefix(t.Slug, prefix) {
			slugs = append(slugs, t.Slug)
		}
	}
	return slugs, nil
}

// Create is not supported.
func (s *TagSource) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	return nil, blog.ErrDriverReadOnly
}

// Update is not supported.
func (s *TagSource) Update(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	return nil, blog.ErrDriverReadOnly
}

// Delete is not supported.
func (s *TagSource) Delete(ctx context.Context, id uuid.UUID) error {
	return blog.ErrDriverReadOnly
}

// List returns all remote tags alphabetically.
func (s *TagSource) List(ctx context.Context) ([]models.Tag, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

// Search matches tag names case-insensitively.
func (s *TagSource) Search(ctx context.Context, query string, limit int) ([]models.Tag, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(query)
	var out []models.Tag
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Name), term) {
			out = append(out, t)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Popular returns remote tags ranked by descending post count.
func (s *TagSource) Popular(ctx context.Context, limit int) ([]models.Tag, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].PostCount != all[j].PostCount {
			return all[i].PostCount > all[j].PostCount
		}
		return all[i].Name < all[j].Name
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
