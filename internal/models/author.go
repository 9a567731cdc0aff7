// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthorProfile carries the public-facing profile for a post author.
// The user account itself belongs to the host application; UserID is an
// opaque reference into it.
type AuthorProfile struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	DisplayName string            `json:"display_name"`
	Bio         *string           `json:"bio,omitempty"`
	Avatar      *string           `json:"avatar,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
