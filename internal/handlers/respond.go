// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Inkwell blog API.
// Handlers are grouped by concern (public, admin, auth) and receive their
// dependencies through the handler struct. Responses are JSON throughout.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"inkwell/internal/blog"
)

// errorBody is the JSON error envelope used by every endpoint.
type errorBody struct {
	Error string `json:"error"`
}

// respondError maps a domain error onto an HTTP status and writes the
// JSON error envelope. Unknown errors become a 500 with a generic message
// so internals never leak into responses.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, blog.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, errorBody{Error: "not found"})
	case errors.Is(err, blog.ErrDriverReadOnly):
		render.Status(r, http.StatusMethodNotAllowed)
		render.JSON(w, r, errorBody{Error: "storage driver is read-only"})
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorBody{Error: "internal server error"})
	}
}

// respondValidation writes a 422 with the given validation message.
func respondValidation(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusUnprocessableEntity)
	render.JSON(w, r, errorBody{Error: msg})
}

// respondBadRequest writes a 400 for malformed input (unparseable JSON,
// bad UUIDs in the path).
func respondBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errorBody{Error: msg})
}
