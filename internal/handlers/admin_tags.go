// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"inkwell/internal/blog"
)

// tagRequest is the JSON body for tag create and update.
type tagRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

// ListTags lists all tags. An optional q parameter switches to a
// case-insensitive name search for auto-complete.
func (h *Admin) ListTags(w http.ResponseWriter, r *http.Request) {
	if query := r.URL.Query().Get("q"); query != "" {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		tags, err := h.tags.Search(r.Context(), query, limit)
		if err != nil {
			respondError(w, r, err)
			return
		}
		render.JSON(w, r, map[string]any{"data": tags})
		return
	}

	tags, err := h.tags.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{"data": tags})
}

// GetTag serves one tag.
func (h *Admin) GetTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid tag id")
		return
	}
	tag, err := h.tags.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, tag)
}

// CreateTag creates a tag.
func (h *Admin) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}
	name := strOr(req.Name, "")
	if msg := validateNamedInput(name, strOr(req.Slug, ""), strOr(req.Description, "")); msg != "" {
		respondValidation(w, r, msg)
		return
	}

	tag, err := h.tags.Create(r.Context(), blog.CreateTagInput{
		Name:        name,
		Slug:        strOr(req.Slug, ""),
		Description: strOr(req.Description, ""),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, tag)
}

// UpdateTag applies a partial update.
func (h *Admin) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid tag id")
		return
	}
	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}
	if msg := validateNamedInput(strOr(req.Name, "unchanged"), strOr(req.Slug, ""), strOr(req.Description, "")); msg != "" {
		respondValidation(w, r, msg)
		return
	}

	tag, err := h.tags.Update(r.Context(), id, blog.UpdateTagInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, tag)
}

// DeleteTag removes a tag and detaches it from every post.
func (h *Admin) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid tag id")
		return
	}
	if err := h.tags.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	render.NoContent(w, r)
}
