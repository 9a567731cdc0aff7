// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/slug"
)

// PostService owns the post lifecycle state machine: draft, published,
// scheduled (computed), and archived, plus CRUD with the slug policy.
// Each operation is one read-modify-write cycle against the repository;
// transactional boundaries belong to the driver.
type PostService struct {
	repo   PostRepository
	events EventSink
	now    func() time.Time
}

// PostOption configures a PostService.
type PostOption func(*PostService)

// WithPostEvents sets the event sink notified after mutations persist.
func WithPostEvents(sink EventSink) PostOption {
	return func(s *PostService) { s.events = sink }
}

// WithPostClock overrides the time source. Tests use this to pin "now".
func WithPostClock(now func() time.Time) PostOption {
	return func(s *PostService) { s.now = now }
}

// NewPostService returns a PostService over the given repository.
func NewPostService(repo PostRepository, opts ...PostOption) *PostService {
	s := &PostService{
		repo:   repo,
		events: NoopSink{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePostInput carries the fields for creating a post. Slug is derived
// from Title when empty; Status defaults to draft.
type CreatePostInput struct {
	Title         string
	Slug          string
	Excerpt       *string
	Content       string
	FeaturedImage *string
	CategoryID    *uuid.UUID
	AuthorID      *uuid.UUID
	Status        models.PostStatus
	PublishedAt   *time.Time
	TagIDs        []uuid.UUID
}

// UpdatePostInput carries a partial update. Nil fields are left unchanged;
// a nil TagIDs slice leaves tag associations alone while an empty one
// clears them.
type UpdatePostInput struct {
	Title         *string
	Slug          *string
	Excerpt       *string
	Content       *string
	FeaturedImage *string
	CategoryID    *uuid.UUID
	AuthorID      *uuid.UUID
	Status        *models.PostStatus
	PublishedAt   *time.Time
	TagIDs        []uuid.UUID
}

// Get returns a post by ID.
func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBySlug returns a post by slug.
func (s *PostService) GetBySlug(ctx context.Context, postSlug string) (*models.Post, error) {
	return s.repo.FindBySlug(ctx, postSlug)
}

// List returns posts matching the query plus the total match count.
func (s *PostService) List(ctx context.Context, q PostQuery) ([]models.Post, int, error) {
	return s.repo.List(ctx, q)
}

// Search returns published posts matching the search term.
func (s *PostService) Search(ctx context.Context, term string, page, perPage int) ([]models.Post, int, error) {
	return s.repo.List(ctx, PostQuery{
		Search:        term,
		PublishedOnly: true,
		Page:          page,
		PerPage:       perPage,
	})
}

// Drafts returns all draft posts, newest first.
func (s *PostService) Drafts(ctx context.Context) ([]models.Post, error) {
	status := models.PostStatusDraft
	posts, _, err := s.repo.List(ctx, PostQuery{Status: &status, Sort: "-created_at"})
	return posts, err
}

// Scheduled returns posts published with a future timestamp, soonest first.
func (s *PostService) Scheduled(ctx context.Context) ([]models.Post, error) {
	posts, _, err := s.repo.List(ctx, PostQuery{ScheduledOnly: true, Sort: "published_at"})
	return posts, err
}

// Archived returns all archived posts, most recently touched first.
func (s *PostService) Archived(ctx context.Context) ([]models.Post, error) {
	status := models.PostStatusArchived
	posts, _, err := s.repo.List(ctx, PostQuery{Status: &status, Sort: "-updated_at"})
	return posts, err
}

// Create inserts a new post. An empty slug is derived from the title and
// made unique among existing posts; publishing without a timestamp stamps
// the current time so the published⇒timestamped invariant holds.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	postSlug := in.Slug
	if postSlug == "" {
		var err error
		postSlug, err = s.uniqueSlug(ctx, in.Title, uuid.Nil)
		if err != nil {
			return nil, err
		}
	}

	publishedAt := in.PublishedAt
	if status == models.PostStatusPublished && publishedAt == nil {
		now := s.now()
		publishedAt = &now
	}

	post := &models.Post{
		Title:         in.Title,
		Slug:          postSlug,
		Excerpt:       in.Excerpt,
		Content:       in.Content,
		FeaturedImage: in.FeaturedImage,
		CategoryID:    in.CategoryID,
		AuthorID:      in.AuthorID,
		Status:        status,
		PublishedAt:   publishedAt,
		ReadingTime:   models.CalculateReadingTime(in.Content),
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	if len(in.TagIDs) > 0 {
		if err := s.repo.SyncTags(ctx, created.ID, in.TagIDs); err != nil {
			return nil, &PostError{ID: created.ID, Op: "sync tags", Err: err}
		}
		created, err = s.repo.FindByID(ctx, created.ID)
		if err != nil {
			return nil, err
		}
	}

	s.emit("post created", s.events.PostCreated(ctx, created))
	if created.Status == models.PostStatusPublished && created.PublishedAt != nil {
		s.emit("post published", s.events.PostPublished(ctx, created))
	}
	return created, nil
}

// CreateDraft inserts a new post forced into draft state with no publish
// timestamp, regardless of the input's status fields.
func (s *PostService) CreateDraft(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	in.Status = models.PostStatusDraft
	in.PublishedAt = nil
	return s.Create(ctx, in)
}

// Update applies a partial update. When the title changes and no slug was
// supplied in the same update, the slug is regenerated (excluding the
// post's own row from the collision check).
func (s *PostService) Update(ctx context.Context, id uuid.UUID, in UpdatePostInput) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := post.Status

	titleChanged := in.Title != nil && *in.Title != post.Title
	if in.Title != nil {
		post.Title = *in.Title
	}
	switch {
	case in.Slug != nil:
		post.Slug = *in.Slug
	case titleChanged:
		post.Slug, err = s.uniqueSlug(ctx, post.Title, post.ID)
		if err != nil {
			return nil, err
		}
	}

	if in.Excerpt != nil {
		post.Excerpt = in.Excerpt
	}
	if in.Content != nil && *in.Content != post.Content {
		post.Content = *in.Content
		post.ReadingTime = models.CalculateReadingTime(post.Content)
	}
	if in.FeaturedImage != nil {
		post.FeaturedImage = in.FeaturedImage
	}
	if in.CategoryID != nil {
		post.CategoryID = in.CategoryID
	}
	if in.AuthorID != nil {
		post.AuthorID = in.AuthorID
	}
	if in.Status != nil {
		post.Status = *in.Status
	}
	if in.PublishedAt != nil {
		post.PublishedAt = in.PublishedAt
	}
	if post.Status == models.PostStatusPublished && post.PublishedAt == nil {
		now := s.now()
		post.PublishedAt = &now
	}

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	if in.TagIDs != nil {
		if err := s.repo.SyncTags(ctx, updated.ID, in.TagIDs); err != nil {
			return nil, &PostError{ID: updated.ID, Op: "sync tags", Err: err}
		}
		updated, err = s.repo.FindByID(ctx, updated.ID)
		if err != nil {
			return nil, err
		}
	}

	s.emit("post updated", s.events.PostUpdated(ctx, updated))
	if oldStatus != models.PostStatusPublished &&
		updated.Status == models.PostStatusPublished && updated.PublishedAt != nil {
		s.emit("post published", s.events.PostPublished(ctx, updated))
	}
	return updated, nil
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.emit("post deleted", s.events.PostDeleted(ctx, id))
	return nil
}

// Publish transitions a post to published. With an explicit timestamp the
// publish time is (re)stamped; without one an already-published post keeps
// its existing timestamp and any other post is stamped "now".
func (s *PostService) Publish(ctx context.Context, id uuid.UUID, at *time.Time) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case at != nil:
		post.PublishedAt = at
	case post.Status != models.PostStatusPublished || post.PublishedAt == nil:
		now := s.now()
		post.PublishedAt = &now
	}
	post.Status = models.PostStatusPublished

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, &PostError{ID: id, Op: "publish", Err: err}
	}
	s.emit("post published", s.events.PostPublished(ctx, updated))
	return updated, nil
}

// Unpublish returns a post to draft and clears its publish timestamp.
func (s *PostService) Unpublish(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Status = models.PostStatusDraft
	post.PublishedAt = nil

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, &PostError{ID: id, Op: "unpublish", Err: err}
	}
	s.emit("post updated", s.events.PostUpdated(ctx, updated))
	return updated, nil
}

// ToggleStatus unpublishes a live or scheduled post, and publishes
// anything else immediately. Toggling a draft therefore always yields an
// immediately published post, never a scheduled one.
func (s *PostService) ToggleStatus(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if post.IsPublishedAt(now) || post.IsScheduledAt(now) {
		return s.Unpublish(ctx, id)
	}
	return s.Publish(ctx, id, nil)
}

// Schedule sets status=published with the given timestamp, past or
// future. Whether the post reads as scheduled or live is purely a function
// of the timestamp versus the clock at read time; validating that the
// timestamp is in the future is the caller's business.
func (s *PostService) Schedule(ctx context.Context, id uuid.UUID, at time.Time) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Status = models.PostStatusPublished
	post.PublishedAt = &at

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, &PostError{ID: id, Op: "schedule", Err: err}
	}
	s.emit("post published", s.events.PostPublished(ctx, updated))
	return updated, nil
}

// Archive moves a post to archived. The publish timestamp is left alone
// so a later restore-then-publish sequence can pick it back up.
func (s *PostService) Archive(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Status = models.PostStatusArchived

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, &PostError{ID: id, Op: "archive", Err: err}
	}
	s.emit("post updated", s.events.PostUpdated(ctx, updated))
	return updated, nil
}

// Restore returns an archived post to draft. Unlike Unpublish it keeps
// the publish timestamp; the asymmetry is deliberate.
func (s *PostService) Restore(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Status = models.PostStatusDraft

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, &PostError{ID: id, Op: "restore", Err: err}
	}
	s.emit("post updated", s.events.PostUpdated(ctx, updated))
	return updated, nil
}

// Duplicate creates a fresh draft copy of a post: new title (or
// "<title> (Copy)"), a freshly generated unique slug, no publish
// timestamp, and the source's tag associations copied one-to-one. The
// source row is never mutated.
func (s *PostService) Duplicate(ctx context.Context, id uuid.UUID, newTitle *string) (*models.Post, error) {
	source, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := source.Title + " (Copy)"
	if newTitle != nil {
		title = *newTitle
	}

	copySlug, err := s.uniqueSlug(ctx, title, uuid.Nil)
	if err != nil {
		return nil, err
	}

	dup := &models.Post{
		Title:         title,
		Slug:          copySlug,
		Excerpt:       source.Excerpt,
		Content:       source.Content,
		FeaturedImage: source.FeaturedImage,
		CategoryID:    source.CategoryID,
		AuthorID:      source.AuthorID,
		Status:        models.PostStatusDraft,
		ReadingTime:   source.ReadingTime,
	}

	created, err := s.repo.Create(ctx, dup)
	if err != nil {
		return nil, &PostError{ID: id, Op: "duplicate", Err: err}
	}

	tagIDs, err := s.repo.TagIDs(ctx, source.ID)
	if err != nil {
		return nil, &PostError{ID: id, Op: "duplicate", Err: err}
	}
	if len(tagIDs) > 0 {
		if err := s.repo.SyncTags(ctx, created.ID, tagIDs); err != nil {
			return nil, &PostError{ID: created.ID, Op: "sync tags", Err: err}
		}
		created, err = s.repo.FindByID(ctx, created.ID)
		if err != nil {
			return nil, err
		}
	}

	s.emit("post created", s.events.PostCreated(ctx, created))
	return created, nil
}

// uniqueSlug derives a slug from title and resolves collisions against
// sibling posts with one prefix query.
func (s *PostService) uniqueSlug(ctx context.Context, title string, excluding uuid.UUID) (string, error) {
	base := slug.Generate(title)
	taken, err := s.repo.SlugsLike(ctx, base, excluding)
	if err != nil {
		return "", err
	}
	return slug.Unique(base, taken)
}

// emit logs a sink failure without propagating it.
func (s *PostService) emit(event string, err error) {
	if err != nil {
		slog.Warn("event sink error", "event", event, "error", err)
	}
}
