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

// postProjection shapes remote post documents into a flat payload with
// dereferenced category, tags, and author.
const postProjection = `{
	_id, _createdAt, _updatedAt, title, "slug": slug.current,
	excerpt, body, "featuredImage": featuredImage.asset->url,
	publishedAt,
	category->{_id, title, "slug": slug.current, description, sortOrder},
	tags[]->{_id, title, "slug": slug.current, description},
	author->{_id, name, bio, "avatar": image.asset->url}
}`

type postDoc struct {
	ID            string       `json:"_id"`
	CreatedAt     time.Time    `json:"_createdAt"`
	UpdatedAt     time.Time    `json:"_updatedAt"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Excerpt       *string      `json:"excerpt"`
	Body          string       `json:"body"`
	FeaturedImage *string      `json:"featuredImage"`
	PublishedAt   *time.Time   `json:"publishedAt"`
	Category      *categoryDoc `json:"category"`
	Tags          []tagDoc     `json:"tags"`
	Author        *authorDoc   `json:"author"`
}

type authorDoc struct {
	ID     string  `json:"_id"`
	Name   string  `json:"name"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

func (d *postDoc) toModel() models.Post {
	p := models.Post{
		ID:            docUUID(d.ID),
		Title:         d.Title,
		Slug:          d.Slug,
		Excerpt:       d.Excerpt,
		Content:       d.Body,
		FeaturedImage: d.FeaturedImage,
		// Remote studios only expose published documents; draft state
		// lives on their side of the fence.
		Status:      models.PostStatusPublished,
		PublishedAt: d.PublishedAt,
		ReadingTime: models.CalculateReadingTime(d.Body),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.Category != nil {
		c := d.Category.toModel()
		p.Category = &c
		p.CategoryID = &c.ID
	}
	if d.Author != nil {
		authorID := docUUID(d.Author.ID)
		p.AuthorID = &authorID
		p.Author = &models.AuthorProfile{
			ID:          authorID,
			UserID:      authorID,
			DisplayName: d.Author.Name,
			Bio:         d.Author.Bio,
			Avatar:      d.Author.Avatar,
		}
	}
	for _, t := range d.Tags {
		p.Tags = append(p.Tags, t.toModel())
	}
	return p
}

// PostSource implements blog.PostRepository over the remote CMS.
type PostSource struct {
	c *Client
}

// NewPostSource returns a PostSource over the given client.
func NewPostSource(c *Client) *PostSource { return &PostSource{c: c} }

// FindByID resolves the derived UUID against the remote document set.
// Remote IDs are opaque strings, so the lookup scans the published IDs.
func (s *PostSource) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var ids []string
	if err := s.c.query(ctx, `*[_type == "post"][]._id`, nil, &ids); err != nil {
		return nil, err
	}
	for _, docID := range ids {
		if docUUID(docID) == id {
			var docs []postDoc
			err := s.c.query(ctx,
				`*[_type == "post" && _id == $id]`+postProjection,
				map[string]string{"id": docID}, &docs)
			if err != nil {
				return nil, err
			}
			if len(docs) == 0 {
				return nil, blog.ErrNotFound
			}
			p := docs[0].toModel()
			return &p, nil
		}
	}
	return nil, blog.ErrNotFound
}

// FindBySlug retrieves a post by slug.
func (s *PostSource) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var docs []postDoc
	err := s.c.query(ctx,
		`*[_type == "post" && slug.current == $slug]`+postProjection,
		map[string]string{"slug": slug}, &docs)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, blog.ErrNotFound
	}
	p := docs[0].toModel()
	return &p, nil
}

// SlugsLike returns remote slugs starting with prefix. The excluding ID
// is honored against derived UUIDs, though slug generation never runs
// against a read-only driver in practice.
func (s *PostSource) SlugsLike(ctx context.Context, prefix string, excluding uuid.UUID) ([]string, error) {
	var docs []struct {
		ID   string `json:"_id"`
		Slug string `json:"slug"`
	}
	err := s.c.query(ctx,
		`*[_type == "post" && string::startsWith(slug.current, $prefix)]{_id, "slug": slug.current}`,
		map[string]string{"prefix": prefix}, &docs)
	if err != nil {
		return nil, err
	}

	var slugs []string
	for _, d := range docs {
		if excluding != uuid.Nil && docUUID(d.ID) == excluding {
			continue
		}
		slugs = append(slugs, d.Slug)
	}
	return slugs, nil
}

// Create is not supported; the remote studio owns the content.
func (s *PostSource) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	return nil, blog.ErrDriverReadOnly
}

// Update is not supported.
func (s *PostSource) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	return nil, blog.ErrDriverReadOnly
}

// Delete is not supported.
func (s *PostSource) Delete(ctx context.Context, id uuid.UUID) error {
	return blog.ErrDriverReadOnly
}

// List fetches the published set and applies the query locally. Remote
// filters cover search; reference filters resolve against derived UUIDs,
// which only exist on this side.
func (s *PostSource) List(ctx context.Context, q blog.PostQuery) ([]models.Post, int, error) {
	groq := `*[_type == "post"`
	params := map[string]string{}
	if q.Search != "" {
		groq += ` && (title match $term || body match $term)`
		params["term"] = q.Search + "*"
	}
	groq += `]` + postProjection

	var docs []postDoc
	if err := s.c.query(ctx, groq, params, &docs); err != nil {
		return nil, 0, err
	}

	now := time.Now()
	var posts []models.Post
	for _, d := range docs {
		p := d.toModel()
		if !matchesQuery(&p, q, now) {
			continue
		}
		posts = append(posts, p)
	}

	sortPosts(posts, q.Sort)
	total := len(posts)

	if q.PerPage > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * q.PerPage
		if start >= len(posts) {
			posts = nil
		} else {
			end := start + q.PerPage
			if end > len(posts) {
				end = len(posts)
			}
			posts = posts[start:end]
		}
	}
	return posts, total, nil
}

func matchesQuery(p *models.Post, q blog.PostQuery, now time.Time) bool {
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
	tagIDs := q.TagIDs
	if q.TagID != nil {
		tagIDs = append(tagIDs, *q.TagID)
	}
	for _, want := range tagIDs {
		found := false
		for _, t := range p.Tags {
			if t.ID == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortPosts(posts []models.Post, sortBy string) {
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
		default:
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
			return less(&posts[j], &posts[i])
		}
		return less(&posts[i], &posts[j])
	})
}

// TagIDs returns the derived tag UUIDs attached to a post.
func (s *PostSource) TagIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	post, err := s.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(post.Tags))
	for _, t := range post.Tags {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

// SyncTags is not supported.
func (s *PostSource) SyncTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	return blog.ErrDriverReadOnly
}
