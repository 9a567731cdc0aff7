// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/markdown"
	"inkwell/internal/models"
)

// PostResource is the JSON shape for a single post. ContentHTML carries
// the rendered Markdown body; list endpoints omit it to keep pages light.
type PostResource struct {
	ID            uuid.UUID             `json:"id"`
	Title         string                `json:"title"`
	Slug          string                `json:"slug"`
	Excerpt       *string               `json:"excerpt,omitempty"`
	Content       string                `json:"content,omitempty"`
	ContentHTML   string                `json:"content_html,omitempty"`
	FeaturedImage *string               `json:"featured_image,omitempty"`
	Status        models.PostStatus     `json:"status"`
	PublishedAt   *time.Time            `json:"published_at,omitempty"`
	ReadingTime   int                   `json:"reading_time"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	Category      *models.Category      `json:"category,omitempty"`
	Author        *models.AuthorProfile `json:"author,omitempty"`
	Tags          []models.Tag          `json:"tags,omitempty"`
}

// newPostResource builds the full resource, including the rendered body.
func newPostResource(p *models.Post) PostResource {
	res := newPostSummary(p)
	res.Content = p.Content

	html, err := markdown.ToHTML(p.Content)
	if err != nil {
		slog.Error("markdown render failed", "post", p.ID, "error", err)
	} else {
		res.ContentHTML = html
	}
	return res
}

// newPostSummary builds the list-item resource without the body.
func newPostSummary(p *models.Post) PostResource {
	return PostResource{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		Status:        p.Status,
		PublishedAt:   p.PublishedAt,
		ReadingTime:   p.ReadingTime,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Category:      p.Category,
		Author:        p.Author,
		Tags:          p.Tags,
	}
}

// postList is the paginated list envelope.
type postList struct {
	Data    []PostResource `json:"data"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

func newPostList(posts []models.Post, total, page, perPage int) postList {
	data := make([]PostResource, 0, len(posts))
	for i := range posts {
		data = append(data, newPostSummary(&posts[i]))
	}
	return postList{Data: data, Total: total, Page: page, PerPage: perPage}
}

// MediaResource is the JSON shape for an uploaded media file.
type MediaResource struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"file_name"`
	FilePath  string    `json:"file_path"`
	URL       string    `json:"url,omitempty"`
	MimeType  string    `json:"mime_type"`
	FileSize  int64     `json:"file_size"`
	HumanSize string    `json:"human_size"`
	AltText   *string   `json:"alt_text,omitempty"`
	Caption   *string   `json:"caption,omitempty"`
	Disk      string    `json:"disk"`
	CreatedAt time.Time `json:"created_at"`
}

func newMediaResource(m *models.Media, url string) MediaResource {
	return MediaResource{
		ID:        m.ID,
		FileName:  m.FileName,
		FilePath:  m.FilePath,
		URL:       url,
		MimeType:  m.MimeType,
		FileSize:  m.FileSize,
		HumanSize: m.HumanSize(),
		AltText:   m.AltText,
		Caption:   m.Caption,
		Disk:      m.Disk,
		CreatedAt: m.CreatedAt,
	}
}
