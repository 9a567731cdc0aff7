// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the stored publishing state of a post.
// "Scheduled" is not a stored status: a post with status published and a
// future published_at is classified as scheduled at read time.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// wordsPerMinute is the reading speed used for reading-time estimates.
const wordsPerMinute = 200

// Post represents a blog post. Category, Author, and Tags are virtual
// fields populated by repository methods; the row itself only carries the
// foreign keys.
type Post struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	Content       string     `json:"content"`
	FeaturedImage *string    `json:"featured_image,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	AuthorID      *uuid.UUID `json:"author_id,omitempty"`
	Status        PostStatus `json:"status"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	ReadingTime   int        `json:"reading_time"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Virtual fields populated by repository methods.
	Category *Category      `json:"category,omitempty"`
	Author   *AuthorProfile `json:"author,omitempty"`
	Tags     []Tag          `json:"tags,omitempty"`
}

// IsPublishedAt reports whether the post is visibly published at time t:
// status is published and published_at has passed.
func (p *Post) IsPublishedAt(t time.Time) bool {
	return p.Status == PostStatusPublished &&
		p.PublishedAt != nil &&
		!p.PublishedAt.After(t)
}

// IsScheduledAt reports whether the post is scheduled for future
// publication at time t: status is published but published_at lies ahead.
func (p *Post) IsScheduledAt(t time.Time) bool {
	return p.Status == PostStatusPublished &&
		p.PublishedAt != nil &&
		p.PublishedAt.After(t)
}

// IsDraft reports whether the post is a draft.
func (p *Post) IsDraft() bool {
	return p.Status == PostStatusDraft
}

// IsArchived reports whether the post is archived.
func (p *Post) IsArchived() bool {
	return p.Status == PostStatusArchived
}

// htmlTags matches HTML/XML tags for plain-text word counting.
var htmlTags = regexp.MustCompile(`<[^>]*>`)

// CalculateReadingTime estimates how many minutes the given content takes
// to read at 200 words per minute. Markup is stripped first; the result is
// always at least one minute.
func CalculateReadingTime(content string) int {
	text := htmlTags.ReplaceAllString(content, " ")
	words := len(strings.Fields(text))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
