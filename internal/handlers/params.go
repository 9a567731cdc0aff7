// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/blog"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// pathUUID parses the {id} URL parameter.
func pathUUID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}

// parsePagination reads page and per_page with sane bounds.
func parsePagination(r *http.Request) (page, perPage int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(q.Get("per_page"))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// parsePostQuery builds a listing query from the request's query string.
// Filters that fail to parse are ignored rather than rejected, matching
// the lenient query handling of typical blog feeds.
func parsePostQuery(r *http.Request) blog.PostQuery {
	q := r.URL.Query()
	pq := blog.PostQuery{Sort: q.Get("sort")}
	pq.Page, pq.PerPage = parsePagination(r)

	if id, err := uuid.Parse(q.Get("category_id")); err == nil {
		pq.CategoryID = &id
	}
	if id, err := uuid.Parse(q.Get("tag_id")); err == nil {
		pq.TagID = &id
	}
	if id, err := uuid.Parse(q.Get("author_id")); err == nil {
		pq.AuthorID = &id
	}
	for _, raw := range strings.Split(q.Get("tag_ids"), ",") {
		if id, err := uuid.Parse(strings.TrimSpace(raw)); err == nil {
			pq.TagIDs = append(pq.TagIDs, id)
		}
	}
	if t, err := time.Parse("2006-01-02", q.Get("start_date")); err == nil {
		pq.StartDate = &t
	}
	if t, err := time.Parse("2006-01-02", q.Get("end_date")); err == nil {
		end := t.Add(24*time.Hour - time.Nanosecond)
		pq.EndDate = &end
	}
	return pq
}
