// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/blog"
	"inkwell/internal/blog/memory"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/router"
)

func newRouter(publicLimit int) http.Handler {
	store := memory.New()
	posts := blog.NewPostService(store.Posts())
	categories := blog.NewCategoryService(store.Categories())
	tags := blog.NewTagService(store.Tags())
	tokens := middleware.NewTokenAuth("router-test-secret")

	return router.New(router.Options{
		Public:          handlers.NewPublic(posts, categories, tags, store.Authors()),
		Admin:           handlers.NewAdmin(posts, categories, tags, store.Media(), nil),
		Auth:            handlers.NewAuth(tokens, "admin", "not-a-real-hash"),
		Tokens:          tokens,
		PublicRateLimit: publicLimit,
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := httptest.NewServer(newRouter(0))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}
}

func TestPublicRateLimitApplies(t *testing.T) {
	srv := httptest.NewServer(newRouter(2))
	defer srv.Close()

	got429 := false
	for i := 0; i < 4; i++ {
		resp, err := http.Get(srv.URL + "/api/blog/posts")
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			got429 = true
		}
	}
	if !got429 {
		t.Error("no request was rate limited over the configured limit")
	}

	// The health endpoint sits outside the limited group.
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health under limit pressure: status = %d, want 200", resp.StatusCode)
	}
}

func TestUnknownRoute404(t *testing.T) {
	srv := httptest.NewServer(newRouter(0))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/blog/nonsense")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
