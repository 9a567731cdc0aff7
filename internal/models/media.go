// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Media represents an uploaded file in the blog media library. Disk names
// the storage backend the bytes live on ("s3", "local"); FilePath is the
// key within that backend.
type Media struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"file_name"`
	FilePath  string    `json:"file_path"`
	MimeType  string    `json:"mime_type"`
	FileSize  int64     `json:"file_size"`
	AltText   *string   `json:"alt_text,omitempty"`
	Caption   *string   `json:"caption,omitempty"`
	Disk      string    `json:"disk"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsImage reports whether the media file is an image.
func (m *Media) IsImage() bool {
	return strings.HasPrefix(m.MimeType, "image/")
}

// HumanSize returns the file size in human-readable form ("2.5 MB").
func (m *Media) HumanSize() string {
	size := float64(m.FileSize)
	units := []string{"B", "KB", "MB", "GB"}
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d %s", m.FileSize, units[0])
	}
	return fmt.Sprintf("%.2f %s", size, units[i])
}
