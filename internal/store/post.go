// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/blog"
	"inkwell/internal/models"
)

const postColumns = `id, title, slug, excerpt, content, featured_image,
	       category_id, author_id, status, published_at, reading_time,
	       created_at, updated_at`

// PostStore implements blog.PostRepository on Postgres.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.FeaturedImage,
		&p.CategoryID, &p.AuthorID, &p.Status, &p.PublishedAt, &p.ReadingTime,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// FindByID retrieves a post with its category and tags attached.
func (s *PostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM blog_posts WHERE id = $1
	`, id)

	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	if err := s.attachRelations(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindBySlug retrieves a post by slug regardless of status. Visibility
// filtering is the caller's job.
func (s *PostStore) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM blog_posts WHERE slug = $1
	`, slug)

	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	if err := s.attachRelations(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SlugsLike returns every post slug starting with prefix, minus the
// excluded post. One query covers the whole collision search.
func (s *PostStore) SlugsLike(ctx context.Context, prefix string, excluding uuid.UUID) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug FROM blog_posts
		WHERE slug LIKE $1 || '%' AND ($2::uuid IS NULL OR id != $2)
	`, prefix, nullableID(excluding))
	if err != nil {
		return nil, fmt.Errorf("slugs like: %w", err)
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

// Create inserts a new post and returns it with generated fields.
func (s *PostStore) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO blog_posts (title, slug, excerpt, content, featured_image,
		                        category_id, author_id, status, published_at, reading_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+postColumns+`
	`, post.Title, post.Slug, post.Excerpt, post.Content, post.FeaturedImage,
		post.CategoryID, post.AuthorID, post.Status, post.PublishedAt, post.ReadingTime,
	)

	created, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	if err := s.attachRelations(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update rewrites every mutable column of a post.
func (s *PostStore) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE blog_posts SET
			title = $1, slug = $2, excerpt = $3, content = $4, featured_image = $5,
			category_id = $6, author_id = $7, status = $8, published_at = $9,
			reading_time = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING `+postColumns+`
	`, post.Title, post.Slug, post.Excerpt, post.Content, post.FeaturedImage,
		post.CategoryID, post.AuthorID, post.Status, post.PublishedAt,
		post.ReadingTime, post.ID,
	)

	updated, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if err := s.attachRelations(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a post. The pivot rows go with it via ON DELETE CASCADE.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if affected == 0 {
		return blog.ErrNotFound
	}
	return nil
}

// List returns one page of posts matching the query plus the total match
// count. Filters compose into a single WHERE clause; the count query
// reuses it.
func (s *PostStore) List(ctx context.Context, q blog.PostQuery) ([]models.Post, int, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.PublishedOnly {
		where = append(where, "status = 'published' AND published_at <= NOW()")
	}
	if q.ScheduledOnly {
		where = append(where, "status = 'published' AND published_at > NOW()")
	}
	if q.Status != nil {
		where = append(where, "status = "+arg(*q.Status))
	}
	if q.CategoryID != nil {
		where = append(where, "category_id = "+arg(*q.CategoryID))
	}
	if q.AuthorID != nil {
		where = append(where, "author_id = "+arg(*q.AuthorID))
	}
	if q.StartDate != nil {
		where = append(where, "published_at >= "+arg(*q.StartDate))
	}
	if q.EndDate != nil {
		where = append(where, "published_at <= "+arg(*q.EndDate))
	}
	tagIDs := q.TagIDs
	if q.TagID != nil {
		tagIDs = append(tagIDs, *q.TagID)
	}
	for _, tagID := range tagIDs {
		where = append(where, `EXISTS (
			SELECT 1 FROM blog_post_tags pt
			WHERE pt.post_id = blog_posts.id AND pt.tag_id = `+arg(tagID)+`)`)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		p := arg(pattern)
		where = append(where,
			"(title ILIKE "+p+" OR content ILIKE "+p+" OR excerpt ILIKE "+p+")")
	}

	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM blog_posts "+clause, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	query := "SELECT " + postColumns + " FROM blog_posts " + clause +
		" ORDER BY " + orderClause(q.Sort)
	if q.PerPage > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", q.PerPage, (page-1)*q.PerPage)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := s.attachRelationsBatch(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// orderClause maps the query sort expression onto a whitelisted ORDER BY.
// Unknown columns fall back to the default.
func orderClause(sortBy string) string {
	desc := strings.HasPrefix(sortBy, "-")
	col := strings.TrimPrefix(sortBy, "-")

	switch col {
	case "title", "created_at", "updated_at", "reading_time":
	case "published_at":
		if desc {
			return "published_at DESC NULLS LAST, created_at DESC"
		}
		return "published_at ASC NULLS LAST, created_at ASC"
	default:
		return "published_at DESC NULLS LAST, created_at DESC"
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

// TagIDs returns the tag IDs attached to a post.
func (s *PostStore) TagIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tag_id FROM blog_post_tags WHERE post_id = $1
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("post tag ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tag id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SyncTags replaces a post's tag associations with the given set, in one
// transaction.
func (s *PostStore) SyncTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sync tags: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM blog_post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("sync tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO blog_post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tagID); err != nil {
			return fmt.Errorf("sync tags: %w", err)
		}
	}
	return tx.Commit()
}

// attachRelations loads the category, author profile, and tags for one post.
func (s *PostStore) attachRelations(ctx context.Context, p *models.Post) error {
	posts := []models.Post{*p}
	if err := s.attachRelationsBatch(ctx, posts); err != nil {
		return err
	}
	*p = posts[0]
	return nil
}

// attachRelationsBatch loads categories, author profiles, and tags for a
// page of posts with three queries total.
func (s *PostStore) attachRelationsBatch(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uuid.UUID, len(posts))
	var categoryIDs, authorIDs []uuid.UUID
	for i, p := range posts {
		postIDs[i] = p.ID
		if p.CategoryID != nil {
			categoryIDs = append(categoryIDs, *p.CategoryID)
		}
		if p.AuthorID != nil {
			authorIDs = append(authorIDs, *p.AuthorID)
		}
	}

	categories := make(map[uuid.UUID]models.Category)
	if len(categoryIDs) > 0 {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name, slug, description, sort_order, created_at, updated_at
			FROM blog_categories WHERE id = ANY($1)
		`, categoryIDs)
		if err != nil {
			return fmt.Errorf("load post categories: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var c models.Category
			if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description,
				&c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
				return fmt.Errorf("scan category: %w", err)
			}
			categories[c.ID] = c
		}
		if err := rows.Err(); err != nil {
			return err
		}
	}

	authors := make(map[uuid.UUID]models.AuthorProfile)
	if len(authorIDs) > 0 {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, user_id, display_name, bio, avatar, social_links, created_at, updated_at
			FROM blog_author_profiles WHERE user_id = ANY($1)
		`, authorIDs)
		if err != nil {
			return fmt.Errorf("load post authors: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			a, err := scanAuthor(rows)
			if err != nil {
				return fmt.Errorf("scan author: %w", err)
			}
			authors[a.UserID] = *a
		}
		if err := rows.Err(); err != nil {
			return err
		}
	}

	tagsByPost := make(map[uuid.UUID][]models.Tag)
	rows, err := s.db.QueryContext(ctx, `
		SELECT pt.post_id, t.id, t.name, t.slug, t.description, t.created_at, t.updated_at
		FROM blog_post_tags pt
		JOIN blog_tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.name
	`, postIDs)
	if err != nil {
		return fmt.Errorf("load post tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var postID uuid.UUID
		var t models.Tag
		if err := rows.Scan(&postID, &t.ID, &t.Name, &t.Slug, &t.Description,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return fmt.Errorf("scan post tag: %w", err)
		}
		tagsByPost[postID] = append(tagsByPost[postID], t)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range posts {
		if posts[i].CategoryID != nil {
			if c, ok := categories[*posts[i].CategoryID]; ok {
				posts[i].Category = &c
			}
		}
		if posts[i].AuthorID != nil {
			if a, ok := authors[*posts[i].AuthorID]; ok {
				posts[i].Author = &a
			}
		}
		posts[i].Tags = tagsByPost[posts[i].ID]
	}
	return nil
}

// nullableID maps uuid.Nil onto SQL NULL so "exclude nothing" works in
// one query shape.
func nullableID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
