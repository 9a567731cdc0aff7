// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"inkwell/internal/blog"
)

// categoryRequest is the JSON body for category create and update.
type categoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
}

// ListCategories lists all categories in display order, with post counts.
func (h *Admin) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListOrdered(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{"data": categories})
}

// GetCategory serves one category.
func (h *Admin) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid category id")
		return
	}
	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, category)
}

// CreateCategory creates a category. A missing sort order appends it to
// the end of the display order.
func (h *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}
	name := strOr(req.Name, "")
	if msg := validateNamedInput(name, strOr(req.Slug, ""), strOr(req.Description, "")); msg != "" {
		respondValidation(w, r, msg)
		return
	}

	var order int
	if req.SortOrder != nil {
		order = *req.SortOrder
	}
	category, err := h.categories.Create(r.Context(), blog.CreateCategoryInput{
		Name:        name,
		Slug:        strOr(req.Slug, ""),
		Description: strOr(req.Description, ""),
		SortOrder:   order,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, category)
}

// UpdateCategory applies a partial update.
func (h *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid category id")
		return
	}
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}
	if msg := validateNamedInput(strOr(req.Name, "unchanged"), strOr(req.Slug, ""), strOr(req.Description, "")); msg != "" {
		respondValidation(w, r, msg)
		return
	}

	category, err := h.categories.Update(r.Context(), id, blog.UpdateCategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, category)
}

// DeleteCategory removes a category. Posts keep existing with a null
// category.
func (h *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid category id")
		return
	}
	if err := h.categories.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// MoveCategoryUp swaps a category with its predecessor in display order.
// Already at the top is not an error; moved reports whether anything
// changed.
func (h *Admin) MoveCategoryUp(w http.ResponseWriter, r *http.Request) {
	h.moveCategory(w, r, h.categories.MoveUp)
}

// MoveCategoryDown swaps a category with its successor in display order.
func (h *Admin) MoveCategoryDown(w http.ResponseWriter, r *http.Request) {
	h.moveCategory(w, r, h.categories.MoveDown)
}

// SetCategoryOrder moves a category to an explicit position, shifting
// the categories in between.
func (h *Admin) SetCategoryOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid category id")
		return
	}
	var req struct {
		SortOrder *int `json:"sort_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}
	if req.SortOrder == nil {
		respondValidation(w, r, "sort_order is required")
		return
	}

	if err := h.categories.SetOrder(r.Context(), id, *req.SortOrder); err != nil {
		respondError(w, r, err)
		return
	}
	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, category)
}

func (h *Admin) moveCategory(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID) (bool, error)) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid category id")
		return
	}
	moved, err := op(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{"moved": moved, "category": category})
}
