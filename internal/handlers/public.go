// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"inkwell/internal/blog"
	"inkwell/internal/models"
)

// Public groups the read-only blog endpoints. Everything it serves is
// restricted to visibly published posts.
type Public struct {
	posts      *blog.PostService
	categories *blog.CategoryService
	tags       *blog.TagService
	authors    blog.AuthorRepository
	now        func() time.Time
}

// NewPublic creates the public handler group.
func NewPublic(posts *blog.PostService, categories *blog.CategoryService, tags *blog.TagService, authors blog.AuthorRepository) *Public {
	return &Public{
		posts:      posts,
		categories: categories,
		tags:       tags,
		authors:    authors,
		now:        time.Now,
	}
}

// Posts lists published posts with optional filters, sorting, and
// pagination.
func (h *Public) Posts(w http.ResponseWriter, r *http.Request) {
	q := parsePostQuery(r)
	q.PublishedOnly = true

	posts, total, err := h.posts.List(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, newPostList(posts, total, q.Page, q.PerPage))
}

// SearchPosts full-text searches published posts.
func (h *Public) SearchPosts(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		respondValidation(w, r, "q is required")
		return
	}
	page, perPage := parsePagination(r)

	posts, total, err := h.posts.Search(r.Context(), term, page, perPage)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, newPostList(posts, total, page, perPage))
}

// Post serves a single published post by slug or UUID. Drafts, archived
// posts, and posts scheduled for the future all read as 404 here.
func (h *Public) Post(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "post")

	var (
		post *models.Post
		err  error
	)
	if id, parseErr := uuid.Parse(key); parseErr == nil {
		post, err = h.posts.Get(r.Context(), id)
	} else {
		post, err = h.posts.GetBySlug(r.Context(), key)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !post.IsPublishedAt(h.now()) {
		respondError(w, r, blog.ErrNotFound)
		return
	}
	render.JSON(w, r, newPostResource(post))
}

// Categories lists all categories in display order.
func (h *Public) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListOrdered(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{"data": categories})
}

// CategoryPosts lists published posts in one category.
func (h *Public) CategoryPosts(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid category id")
		return
	}
	if _, err := h.categories.Get(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	q := parsePostQuery(r)
	q.CategoryID = &id
	q.PublishedOnly = true

	posts, total, err := h.posts.List(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, newPostList(posts, total, q.Page, q.PerPage))
}

// Tags lists all tags.
func (h *Public) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{"data": tags})
}

// PopularTags lists tags ranked by post count.
func (h *Public) PopularTags(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	tags, err := h.tags.Popular(r.Context(), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{"data": tags})
}

// TagPosts lists published posts carrying one tag.
func (h *Public) TagPosts(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid tag id")
		return
	}
	if _, err := h.tags.Get(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	q := parsePostQuery(r)
	q.TagID = &id
	q.PublishedOnly = true

	posts, total, err := h.posts.List(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, newPostList(posts, total, q.Page, q.PerPage))
}

// Author serves one author profile.
func (h *Public) Author(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid author id")
		return
	}
	author, err := h.authors.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, author)
}

// AuthorPosts lists published posts by one author.
func (h *Public) AuthorPosts(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid author id")
		return
	}
	if _, err := h.authors.FindByID(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	q := parsePostQuery(r)
	q.AuthorID = &id
	q.PublishedOnly = true

	posts, total, err := h.posts.List(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, newPostList(posts, total, q.Page, q.PerPage))
}
