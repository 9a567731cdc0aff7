// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for post and taxonomy fields.
const (
	maxTitleLen   = 300
	maxSlugLen    = 300
	maxContentLen = 200_000
	maxExcerptLen = 1_000
	maxNameLen    = 200
	maxDescLen    = 1_000
)

// validatePostInput checks post fields and returns the first error found,
// or "" when everything passes.
func validatePostInput(title, slug, content string) string {
	if strings.TrimSpace(title) == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "slug is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "content is too long (max 200,000 characters)"
	}
	return ""
}

// validateNamedInput checks the shared name/slug/description shape used
// by categories and tags.
func validateNamedInput(name, slug, description string) string {
	if strings.TrimSpace(name) == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is too long (max 200 characters)"
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "slug is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(description) > maxDescLen {
		return "description is too long (max 1,000 characters)"
	}
	return ""
}
