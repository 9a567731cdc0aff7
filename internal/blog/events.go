// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// EventSink receives domain events after a mutation has been persisted.
// Sink errors are logged by the services, never propagated; the mutation
// has already committed by the time an event fires.
type EventSink interface {
	PostCreated(ctx context.Context, post *models.Post) error
	PostUpdated(ctx context.Context, post *models.Post) error
	PostPublished(ctx context.Context, post *models.Post) error
	PostDeleted(ctx context.Context, postID uuid.UUID) error
	CategoryCreated(ctx context.Context, category *models.Category) error
	TagCreated(ctx context.Context, tag *models.Tag) error
}

// NoopSink discards every event.
type NoopSink struct{}

func (NoopSink) PostCreated(context.Context, *models.Post) error          { return nil }
func (NoopSink) PostUpdated(context.Context, *models.Post) error          { return nil }
func (NoopSink) PostPublished(context.Context, *models.Post) error        { return nil }
func (NoopSink) PostDeleted(context.Context, uuid.UUID) error             { return nil }
func (NoopSink) CategoryCreated(context.Context, *models.Category) error  { return nil }
func (NoopSink) TagCreated(context.Context, *models.Tag) error            { return nil }

// LogSink writes every event to the structured log. Useful as a default
// sink until the host application registers its own.
type LogSink struct{}

func (LogSink) PostCreated(_ context.Context, p *models.Post) error {
	slog.Info("blog event: post created", "id", p.ID, "slug", p.Slug)
	return nil
}

func (LogSink) PostUpdated(_ context.Context, p *models.Post) error {
	slog.Info("blog event: post updated", "id", p.ID, "slug", p.Slug)
	return nil
}

func (LogSink) PostPublished(_ context.Context, p *models.Post) error {
	slog.Info("blog event: post published", "id", p.ID, "slug", p.Slug, "published_at", p.PublishedAt)
	return nil
}

func (LogSink) PostDeleted(_ context.Context, id uuid.UUID) error {
	slog.Info("blog event: post deleted", "id", id)
	return nil
}

func (LogSink) CategoryCreated(_ context.Context, c *models.Category) error {
	slog.Info("blog event: category created", "id", c.ID, "slug", c.Slug)
	return nil
}

func (LogSink) TagCreated(_ context.Context, t *models.Tag) error {
	slog.Info("blog event: tag created", "id", t.ID, "slug", t.Slug)
	return nil
}
