// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

// Package memory provides in-memory implementations of the blog storage
// ports. It backs the engine unit tests and the library-only embedding
// use case where no database is wanted. All repositories returned by one
// Store share state, so tag associations resolve across them.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/blog"
	"inkwell/internal/models"
)

// Store holds the shared in-memory state behind the repositories.
type Store struct {
	mu         sync.RWMutex
	posts      map[uuid.UUID]*models.Post
	categories map[uuid.UUID]*models.Category
	tags       map[uuid.UUID]*models.Tag
	authors    map[uuid.UUID]*models.AuthorProfile
	media      map[uuid.UUID]*models.Media
	postTags   map[uuid.UUID][]uuid.UUID
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		posts:      make(map[uuid.UUID]*models.Post),
		categories: make(map[uuid.UUID]*models.Category),
		tags:       make(map[uuid.UUID]*models.Tag),
		authors:    make(map[uuid.UUID]*models.AuthorProfile),
		media:      make(map[uuid.UUID]*models.Media),
		postTags:   make(map[uuid.UUID][]uuid.UUID),
	}
}

// Posts returns the post repository backed by this store.
func (s *Store) Posts() blog.PostRepository { return &postRepo{s} }

// Categories returns the category repository backed by this store.
func (s *Store) Categories() blog.CategoryRepository { return &categoryRepo{s} }

// Tags returns the tag repository backed by this store.
func (s *Store) Tags() blog.TagRepository { return &tagRepo{s} }

// Authors returns the author repository backed by this store.
func (s *Store) Authors() blog.AuthorRepository { return &authorRepo{s} }

// Media returns the media repository backed by this store.
func (s *Store) Media() blog.MediaRepository { return &mediaRepo{s} }

// --- posts ---

type postRepo struct{ s *Store }

// load returns a detached copy of a post with its virtual relations
// attached. Caller must hold at least a read lock.
func (r *postRepo) load(p *models.Post) *models.Post {
	out := *p
	if p.CategoryID != nil {
		if c, ok := r.s.categories[*p.CategoryID]; ok {
			cc := *c
			out.Category = &cc
		}
	}
	if p.AuthorID != nil {
		for _, a := range r.s.authors {
			if a.UserID == *p.AuthorID || a.ID == *p.AuthorID {
				ac := *a
				out.Author = &ac
				break
			}
		}
	}
	out.Tags = nil
	for _, tagID := range r.s.postTags[p.ID] {
		if t, ok := r.s.tags[tagID]; ok {
			out.Tags = append(out.Tags, *t)
		}
	}
	return &out
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, blog.ErrNotFound
	}
	return r.load(p), nil
}

func (r *postRepo) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.posts {
		if p.Slug == slug {
			return r.load(p), nil
		}
	}
	return nil, blog.ErrNotFound
}

func (r *postRepo) SlugsLike(ctx context.Context, prefix string, excluding uuid.UUID) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var slugs []string
	for _, p := range r.s.posts {
		if p.ID != excluding && strings.HasPrefix(p.Slug, prefix) {
			slugs = append(slugs, p.Slug)
		}
	}
	return slugs, nil
}

func (r *postRepo) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *post
	stored.ID = uuid.New()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.Category, stored.Author, stored.Tags = nil, nil, nil
	r.s.posts[stored.ID] = &stored

	return r.load(&stored), nil
}

func (r *postRepo) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[post.ID]; !ok {
		return nil, blog.ErrNotFound
	}
	stored := *post
	stored.UpdatedAt = time.Now().UTC()
	stored.Category, stored.Author, stored.Tags = nil, nil, nil
	r.s.posts[stored.ID] = &stored

	return r.load(&stored), nil
}

func (r *postRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return blog.ErrNotFound
	}
	delete(r.s.posts, id)
	delete(r.s.postTags, id)
	return nil
}

func (r *postRepo) List(ctx context.Context, q blog.PostQuery) ([]models.Post, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	now := time.Now()
	var matched []*models.Post
	for _, p := range r.s.posts {
		if !r.matches(p, q, now) {
			continue
		}
		matched = append(matched, p)
	}

	sortPosts(matched, q.Sort)
	total := len(matched)

	if q.PerPage > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * q.PerPage
		if start >= len(matched) {
			matched = nil
		} else {
			end := start + q.PerPage
			if end > len(matched) {
				end = len(matched)
			}
			matched = matched[start:end]
		}
	}

	out := make([]models.Post, 0, len(matched))
	for _, p := range matched {
		out = append(out, *r.load(p))
	}
	return out, total, nil
}

// matches applies every filter in the query. Caller holds a read lock.
func (r *postRepo) matches(p *models.Post, q blog.PostQuery, now time.Time) bool {
	if q.PublishedOnly && !p.IsPublishedAt(now) {
		return false
	}
	if q.ScheduledOnly && !p.IsScheduledAt(now) {
		return false
	}
	if q.Status != nil && p.Status != *q.Status {
		return false
	}
	if q.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *q.CategoryID) {
		return false
	}
	if q.AuthorID != nil && (p.AuthorID == nil || *p.AuthorID != *q.AuthorID) {
		return false
	}
	if q.StartDate != nil && (p.PublishedAt == nil || p.PublishedAt.Before(*q.StartDate)) {
		return false
	}
	if q.EndDate != nil && (p.PublishedAt == nil || p.PublishedAt.After(*q.EndDate)) {
		return false
	}
	if q.TagID != nil && !r.hasTag(p.ID, *q.TagID) {
		return false
	}
	for _, tagID := range q.TagIDs {
		if !r.hasTag(p.ID, tagID) {
			return false
		}
	}
	if q.Search != "" {
		term := strings.ToLower(q.Search)
		excerpt := ""
		if p.Excerpt != nil {
			excerpt = *p.Excerpt
		}
		if !strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Content), term) &&
			!strings.Contains(strings.ToLower(excerpt), term) {
			return false
		}
	}
	return true
}

func (r *postRepo) hasTag(postID, tagID uuid.UUID) bool {
	for _, id := range r.s.postTags[postID] {
		if id == tagID {
			return true
		}
	}
	return false
}

// sortPosts orders posts by the query's sort expression: a column name
// with an optional leading '-' for descending. Default: -published_at.
func sortPosts(posts []*models.Post, sortBy string) {
	if sortBy == "" {
		sortBy = "-published_at"
	}
	desc := strings.HasPrefix(sortBy, "-")
	col := strings.TrimPrefix(sortBy, "-")

	less := func(a, b *models.Post) bool {
		switch col {
		case "title":
			return a.Title < b.Title
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		case "reading_time":
			return a.ReadingTime < b.ReadingTime
		default: // published_at, nil timestamps last
			switch {
			case a.PublishedAt == nil && b.PublishedAt == nil:
				return a.CreatedAt.Before(b.CreatedAt)
			case a.PublishedAt == nil:
				return false
			case b.PublishedAt == nil:
				return true
			default:
				return a.PublishedAt.Before(*b.PublishedAt)
			}
		}
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if desc {
			return less(posts[j], posts[i])
		}
		return less(posts[i], posts[j])
	})
}

func (r *postRepo) TagIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.posts[postID]; !ok {
		return nil, blog.ErrNotFound
	}
	out := make([]uuid.UUID, len(r.s.postTags[postID]))
	copy(out, r.s.postTags[postID])
	return out, nil
}

func (r *postRepo) SyncTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[postID]; !ok {
		return blog.ErrNotFound
	}
	next := make([]uuid.UUID, len(tagIDs))
	copy(next, tagIDs)
	r.s.postTags[postID] = next
	return nil
}

// --- categories ---

type categoryRepo struct{ s *Store }

// load attaches the post count. Caller holds a read lock.
func (r *categoryRepo) load(c *models.Category) *models.Category {
	out := *c
	out.PostCount = 0
	for _, p := range r.s.posts {
		if p.CategoryID != nil && *p.CategoryID == c.ID {
			out.PostCount++
		}
	}
	return &out
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, blog.ErrNotFound
	}
	return r.load(c), nil
}

func (r *categoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.categories {
		if c.Slug == slug {
			return r.load(c), nil
		}
	}
	return nil, blog.ErrNotFound
}

func (r *categoryRepo) SlugsLike(ctx context.Context, prefix string, excluding uuid.UUID) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var slugs []string
	for _, c := range r.s.categories {
		if c.ID != excluding && strings.HasPrefix(c.Slug, prefix) {
			slugs = append(slugs, c.Slug)
		}
	}
	return slugs, nil
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *category
	stored.ID = uuid.New()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.categories[stored.ID] = &stored

	return r.load(&stored), nil
}

func (r *categoryRepo) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[category.ID]; !ok {
		return nil, blog.ErrNotFound
	}
	stored := *category
	stored.UpdatedAt = time.Now().UTC()
	r.s.categories[stored.ID] = &stored

	return r.load(&stored), nil
}

func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return blog.ErrNotFound
	}
	delete(r.s.categories, id)
	return nil
}

func (r *categoryRepo) ListOrdered(ctx context.Context) ([]models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, *r.load(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *categoryRepo) FindAdjacent(ctx context.Context, order int, dir blog.Direction) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var best *models.Category
	for _, c := range r.s.categories {
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
	if best == nil {
		return nil, nil
	}
	return r.load(best), nil
}

func (r *categoryRepo) ListByOrderRange(ctx context.Context, low, high int, excluding uuid.UUID) ([]models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []models.Category
	for _, c := range r.s.categories {
		if c.ID == excluding {
			continue
		}
		if c.SortOrder >= low && c.SortOrder <= high {
			out = append(out, *r.load(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *categoryRepo) UpdateOrders(ctx context.Context, updates []blog.OrderUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Validate the whole batch before touching anything so a missing row
	// cannot leave a half-applied reorder.
	for _, u := range updates {
		if _, ok := r.s.categories[u.ID]; !ok {
			return blog.ErrNotFound
		}
	}
	now := time.Now().UTC()
	for _, u := range updates {
		c := r.s.categories[u.ID]
		c.SortOrder = u.SortOrder
		c.UpdatedAt = now
	}
	return nil
}

// --- tags ---

type tagRepo struct{ s *Store }

// load attaches the post count. Caller holds a read lock.
func (r *tagRepo) load(t *models.Tag) *models.Tag {
	out := *t
	out.PostCount = 0
	for _, ids := range r.s.postTags {
		for _, id := range ids {
			if id == t.ID {
				out.PostCount++
			}
		}
	}
	return &out
}

func (r *tagRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tags[id]
	if !ok {
		return nil, blog.ErrNotFound
	}
	return r.load(t), nil
}

func (r *tagRepo) FindBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.tags {
		if t.Slug == slug {
			return r.load(t), nil
		}
	}
	return nil, blog.ErrNotFound
}

func (r *tagRepo) SlugsLike(ctx context.Context, prefix string, excluding uuid.UUID) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var slugs []string
	for _, t := range r.s.tags {
		if t.ID != excluding && strings.HasPrefix(t.Slug, prefix) {
			slugs = append(slugs, t.Slug)
		}
	}
	return slugs, nil
}

func (r *tagRepo) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *tag
	stored.ID = uuid.New()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.tags[stored.ID] = &stored

	return r.load(&stored), nil
}

func (r *tagRepo) Update(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tags[tag.ID]; !ok {
		return nil, blog.ErrNotFound
	}
	stored := *tag
	stored.UpdatedAt = time.Now().UTC()
	r.s.tags[stored.ID] = &stored

	return r.load(&stored), nil
}

func (r *tagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tags[id]; !ok {
		return blog.ErrNotFound
	}
	delete(r.s.tags, id)
	for postID, ids := range r.s.postTags {
		var kept []uuid.UUID
		for _, tagID := range ids {
			if tagID != id {
				kept = append(kept, tagID)
			}
		}
		r.s.postTags[postID] = kept
	}
	return nil
}

func (r *tagRepo) List(ctx context.Context) ([]models.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Tag, 0, len(r.s.tags))
	for _, t := range r.s.tags {
		out = append(out, *r.load(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *tagRepo) Search(ctx context.Context, query string, limit int) ([]models.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	term := strings.ToLower(query)
	var out []models.Tag
	for _, t := range r.s.tags {
		if strings.Contains(strings.ToLower(t.Name), term) {
			out = append(out, *r.load(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *tagRepo) Popular(ctx context.Context, limit int) ([]models.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Tag, 0, len(r.s.tags))
	for _, t := range r.s.tags {
		out = append(out, *r.load(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PostCount != out[j].PostCount {
			return out[i].PostCount > out[j].PostCount
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- authors ---

type authorRepo struct{ s *Store }

func (r *authorRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.AuthorProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.authors[id]
	if !ok {
		return nil, blog.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (r *authorRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.AuthorProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.authors {
		if a.UserID == userID {
			out := *a
			return &out, nil
		}
	}
	return nil, blog.ErrNotFound
}

func (r *authorRepo) Create(ctx context.Context, profile *models.AuthorProfile) (*models.AuthorProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *profile
	stored.ID = uuid.New()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.authors[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *authorRepo) Update(ctx context.Context, profile *models.AuthorProfile) (*models.AuthorProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.authors[profile.ID]; !ok {
		return nil, blog.ErrNotFound
	}
	stored := *profile
	stored.UpdatedAt = time.Now().UTC()
	r.s.authors[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *authorRepo) List(ctx context.Context) ([]models.AuthorProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.AuthorProfile, 0, len(r.s.authors))
	for _, a := range r.s.authors {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

// --- media ---

type mediaRepo struct{ s *Store }

func (r *mediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.media[id]
	if !ok {
		return nil, blog.ErrNotFound
	}
	out := *m
	return &out, nil
}

func (r *mediaRepo) Create(ctx context.Context, media *models.Media) (*models.Media, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *media
	stored.ID = uuid.New()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.media[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *mediaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.media[id]; !ok {
		return blog.ErrNotFound
	}
	delete(r.s.media, id)
	return nil
}

func (r *mediaRepo) List(ctx context.Context) ([]models.Media, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Media, 0, len(r.s.media))
	for _, m := range r.s.media {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
