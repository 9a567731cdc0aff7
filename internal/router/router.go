// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains for the
// Inkwell blog API. Routes are organized into a public group and a
// JWT-protected admin group, each behind its own rate limiter.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
)

// Options carries the handler groups and policy knobs for the router.
type Options struct {
	Public *handlers.Public
	Admin  *handlers.Admin
	Auth   *handlers.Auth
	Tokens *jwtauth.JWTAuth

	// Requests per minute per client IP; zero disables the limiter.
	PublicRateLimit int
	AdminRateLimit  int
}

// New creates the configured chi router with all middleware and route
// groups wired up.
func New(opts Options) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	r.Route("/api/blog", func(r chi.Router) {
		if opts.PublicRateLimit > 0 {
			r.Use(middleware.NewRateLimiter(opts.PublicRateLimit, time.Minute).Middleware)
		}

		r.Get("/posts", opts.Public.Posts)
		r.Get("/posts/search", opts.Public.SearchPosts)
		r.Get("/posts/{post}", opts.Public.Post)
		r.Get("/categories", opts.Public.Categories)
		r.Get("/categories/{id}/posts", opts.Public.CategoryPosts)
		r.Get("/tags", opts.Public.Tags)
		r.Get("/tags/popular", opts.Public.PopularTags)
		r.Get("/tags/{id}/posts", opts.Public.TagPosts)
		r.Get("/authors/{id}", opts.Public.Author)
		r.Get("/authors/{id}/posts", opts.Public.AuthorPosts)

		r.Route("/admin", func(r chi.Router) {
			if opts.AdminRateLimit > 0 {
				r.Use(middleware.NewRateLimiter(opts.AdminRateLimit, time.Minute).Middleware)
			}

			r.Post("/login", opts.Auth.Login)

			// Everything below requires a valid bearer token.
			r.Group(func(r chi.Router) {
				r.Use(middleware.Verifier(opts.Tokens))
				r.Use(middleware.Authenticator)

				r.Route("/posts", func(r chi.Router) {
					r.Get("/", opts.Admin.ListPosts)
					r.Post("/", opts.Admin.CreatePost)
					r.Get("/{id}", opts.Admin.GetPost)
					r.Put("/{id}", opts.Admin.UpdatePost)
					r.Delete("/{id}", opts.Admin.DeletePost)
					r.Post("/{id}/publish", opts.Admin.PublishPost)
					r.Post("/{id}/unpublish", opts.Admin.UnpublishPost)
					r.Post("/{id}/toggle-status", opts.Admin.ToggleStatusPost)
					r.Post("/{id}/schedule", opts.Admin.SchedulePost)
					r.Post("/{id}/duplicate", opts.Admin.DuplicatePost)
					r.Post("/{id}/archive", opts.Admin.ArchivePost)
					r.Post("/{id}/restore", opts.Admin.RestorePost)
				})

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", opts.Admin.ListCategories)
					r.Post("/", opts.Admin.CreateCategory)
					r.Get("/{id}", opts.Admin.GetCategory)
					r.Put("/{id}", opts.Admin.UpdateCategory)
					r.Delete("/{id}", opts.Admin.DeleteCategory)
					r.Post("/{id}/move-up", opts.Admin.MoveCategoryUp)
					r.Post("/{id}/move-down", opts.Admin.MoveCategoryDown)
					r.Post("/{id}/set-order", opts.Admin.SetCategoryOrder)
				})

				r.Route("/tags", func(r chi.Router) {
					r.Get("/", opts.Admin.ListTags)
					r.Post("/", opts.Admin.CreateTag)
					r.Get("/{id}", opts.Admin.GetTag)
					r.Put("/{id}", opts.Admin.UpdateTag)
					r.Delete("/{id}", opts.Admin.DeleteTag)
				})

				r.Route("/media", func(r chi.Router) {
					r.Get("/", opts.Admin.ListMedia)
					r.Post("/upload", opts.Admin.UploadMedia)
					r.Delete("/{id}", opts.Admin.DeleteMedia)
				})
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
