// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"inkwell/internal/blog"
	"inkwell/internal/models"
	"inkwell/internal/storage"
)

// Admin groups the authenticated management endpoints and their
// dependencies. storageClient may be nil when S3 is not configured;
// media uploads then answer 503.
type Admin struct {
	posts         *blog.PostService
	categories    *blog.CategoryService
	tags          *blog.TagService
	media         blog.MediaRepository
	storageClient *storage.Client
}

// NewAdmin creates the admin handler group.
func NewAdmin(posts *blog.PostService, categories *blog.CategoryService, tags *blog.TagService, media blog.MediaRepository, storageClient *storage.Client) *Admin {
	return &Admin{
		posts:         posts,
		categories:    categories,
		tags:          tags,
		media:         media,
		storageClient: storageClient,
	}
}

// postRequest is the JSON body for creating a post and, with absent
// fields left nil, for updating one.
type postRequest struct {
	Title         *string     `json:"title"`
	Slug          *string     `json:"slug"`
	Excerpt       *string     `json:"excerpt"`
	Content       *string     `json:"content"`
	FeaturedImage *string     `json:"featured_image"`
	CategoryID    *uuid.UUID  `json:"category_id"`
	AuthorID      *uuid.UUID  `json:"author_id"`
	Status        *string     `json:"status"`
	PublishedAt   *time.Time  `json:"published_at"`
	TagIDs        []uuid.UUID `json:"tag_ids"`
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// ListPosts lists posts of every status with the standard filters. An
// optional status query parameter narrows to one state; status=scheduled
// selects published posts whose timestamp lies ahead.
func (h *Admin) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := parsePostQuery(r)

	switch status := r.URL.Query().Get("status"); status {
	case "":
	case "scheduled":
		q.ScheduledOnly = true
	case string(models.PostStatusDraft), string(models.PostStatusPublished), string(models.PostStatusArchived):
		s := models.PostStatus(status)
		q.Status = &s
	default:
		respondValidation(w, r, "unknown status "+status)
		return
	}
	q.Search = r.URL.Query().Get("q")

	posts, total, err := h.posts.List(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, newPostList(posts, total, q.Page, q.PerPage))
}

// GetPost serves one post regardless of status.
func (h *Admin) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid post id")
		return
	}
	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, newPostResource(post))
}

// CreatePost creates a post. Status defaults to draft; a published
// status without a timestamp is stamped with the current time.
func (h *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}
	title := strOr(req.Title, "")
	if msg := validatePostInput(title, strOr(req.Slug, ""), strOr(req.Content, "")); msg != "" {
		respondValidation(w, r, msg)
		return
	}

	post, err := h.posts.Create(r.Context(), blog.CreatePostInput{
		Title:         title,
		Slug:          strOr(req.Slug, ""),
		Excerpt:       req.Excerpt,
		Content:       strOr(req.Content, ""),
		FeaturedImage: req.FeaturedImage,
		CategoryID:    req.CategoryID,
		AuthorID:      req.AuthorID,
		Status:        models.PostStatus(strOr(req.Status, "")),
		PublishedAt:   req.PublishedAt,
		TagIDs:        req.TagIDs,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, newPostResource(post))
}

// UpdatePost applies a partial update. Absent fields stay untouched; an
// absent tag_ids keeps associations while an explicit empty array clears
// them.
func (h *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid post id")
		return
	}
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}
	// Only fields present in the body are validated.
	if msg := validatePostInput(strOr(req.Title, "unchanged"), strOr(req.Slug, ""), strOr(req.Content, "")); msg != "" {
		respondValidation(w, r, msg)
		return
	}

	in := blog.UpdatePostInput{
		Title:         req.Title,
		Slug:          req.Slug,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		CategoryID:    req.CategoryID,
		AuthorID:      req.AuthorID,
		PublishedAt:   req.PublishedAt,
		TagIDs:        req.TagIDs,
	}
	if req.Status != nil {
		s := models.PostStatus(*req.Status)
		in.Status = &s
	}

	post, err := h.posts.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, newPostResource(post))
}

// DeletePost removes a post permanently.
func (h *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid post id")
		return
	}
	if err := h.posts.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// PublishPost publishes a post. An optional published_at in the body
// sets or restamps the publication time explicitly.
func (h *Admin) PublishPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid post id")
		return
	}
	var req struct {
		PublishedAt *time.Time `json:"published_at"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondBadRequest(w, r, "invalid request body")
			return
		}
	}

	post, err := h.posts.Publish(r.Context(), id, req.PublishedAt)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, newPostResource(post))
}

// UnpublishPost demotes a post to draft and clears its publication time.
func (h *Admin) UnpublishPost(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.posts.Unpublish)
}

// ToggleStatusPost flips between draft and published. A scheduled post
// counts as published, so toggling it lands on draft.
func (h *Admin) ToggleStatusPost(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.posts.ToggleStatus)
}

// ArchivePost moves a post to archived, keeping its publication time.
func (h *Admin) ArchivePost(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.posts.Archive)
}

// RestorePost returns an archived post to draft.
func (h *Admin) RestorePost(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.posts.Restore)
}

// SchedulePost publishes a post with a future timestamp.
func (h *Admin) SchedulePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid post id")
		return
	}
	var req struct {
		PublishedAt *time.Time `json:"published_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}
	if req.PublishedAt == nil {
		respondValidation(w, r, "published_at is required")
		return
	}

	post, err := h.posts.Schedule(r.Context(), id, *req.PublishedAt)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, newPostResource(post))
}

// DuplicatePost clones a post into a fresh draft. An optional title in
// the body names the copy.
func (h *Admin) DuplicatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid post id")
		return
	}
	var req struct {
		Title *string `json:"title"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondBadRequest(w, r, "invalid request body")
			return
		}
	}

	post, err := h.posts.Duplicate(r.Context(), id, req.Title)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, newPostResource(post))
}

// transition runs one of the bodyless lifecycle operations.
func (h *Admin) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID) (*models.Post, error)) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid post id")
		return
	}
	post, err := op(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, newPostResource(post))
}
