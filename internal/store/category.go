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

const categoryColumns = `c.id, c.name, c.slug, c.description, c.sort_order,
	       c.created_at, c.updated_at,
	       (SELECT COUNT(*) FROM blog_posts p WHERE p.category_id = c.id)`

// CategoryStore implements blog.CategoryRepository on Postgres.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a CategoryStore with the given database connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func scanCategory(row interface{ Scan(...any) error }) (*models.Category, error) {
	c := &models.Category{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.SortOrder,
		&c.CreatedAt, &c.UpdatedAt, &c.PostCount,
	)
	return c, err
}

// FindByID retrieves a category with its post count.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+`
		FROM blog_categories c WHERE c.id = $1
	`, id)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+`
		FROM blog_categories c WHERE c.slug = $1
	`, slug)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// SlugsLike returns every category slug starting with prefix, minus the
// excluded category.
func (s *CategoryStore) SlugsLike(ctx context.Context, prefix string, excluding uuid.UUID) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug FROM blog_categories
		WHERE slug LIKE $1 || '%' AND ($2::uuid IS NULL OR id != $2)
	`, prefix, nullableID(excluding))
	if err != nil {
		return nil, fmt.Errorf("category slugs like: %w", err)
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

// Create inserts a new category.
func (s *CategoryStore) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO blog_categories (name, slug, description, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, slug, description, sort_order, created_at, updated_at, 0
	`, category.Name, category.Slug, category.Description, category.SortOrder)

	created, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// Update rewrites a category's mutable columns.
func (s *CategoryStore) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE blog_categories SET
			name = $1, slug = $2, description = $3, sort_order = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, name, slug, description, sort_order, created_at, updated_at,
		          (SELECT COUNT(*) FROM blog_posts p WHERE p.category_id = blog_categories.id)
	`, category.Name, category.Slug, category.Description, category.SortOrder, category.ID)

	updated, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

// Delete removes a category. Posts pointing at it get their category_id
// nulled via ON DELETE SET NULL.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM blog_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if affected == 0 {
		return blog.ErrNotFound
	}
	return nil
}

// ListOrdered returns all categories in canonical display order.
func (s *CategoryStore) ListOrdered(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM blog_categories c
		ORDER BY c.sort_order ASC, c.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

// FindAdjacent returns the category nearest to order in the given
// direction, or nil when none exists.
func (s *CategoryStore) FindAdjacent(ctx context.Context, order int, dir blog.Direction) (*models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM blog_categories c
		WHERE c.sort_order < $1
		ORDER BY c.sort_order DESC LIMIT 1`
	if dir == blog.After {
		query = `
		SELECT ` + categoryColumns + `
		FROM blog_categories c
		WHERE c.sort_order > $1
		ORDER BY c.sort_order ASC LIMIT 1`
	}

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, order))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find adjacent category: %w", err)
	}
	return c, nil
}

// ListByOrderRange returns categories with low <= sort_order <= high,
// excluding the given id, ascending by order.
func (s *CategoryStore) ListByOrderRange(ctx context.Context, low, high int, excluding uuid.UUID) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM blog_categories c
		WHERE c.sort_order BETWEEN $1 AND $2
		  AND ($3::uuid IS NULL OR c.id != $3)
		ORDER BY c.sort_order ASC
	`, low, high, nullableID(excluding))
	if err != nil {
		return nil, fmt.Errorf("list categories by order range: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

// UpdateOrders applies a batch of sort order assignments in one
// transaction so a reorder can never half-apply.
func (s *CategoryStore) UpdateOrders(ctx context.Context, updates []blog.OrderUpdate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update orders: %w", err)
	}
	defer tx.Rollback()

	for _, u := range updates {
		result, err := tx.ExecContext(ctx, `
			UPDATE blog_categories SET sort_order = $1, updated_at = NOW()
			WHERE id = $2
		`, u.SortOrder, u.ID)
		if err != nil {
			return fmt.Errorf("update orders: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update orders: %w", err)
		}
		if affected == 0 {
			return blog.ErrNotFound
		}
	}
	return tx.Commit()
}
