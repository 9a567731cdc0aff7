// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

// handlers_test.go provides the shared test server. Handler tests run
// fully in memory; no external services are needed.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/blog"
	"inkwell/internal/blog/memory"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/router"
)

const (
	testAdminUser = "admin"
	testAdminPass = "letmein"
	testJWTSecret = "handler-test-secret"
)

// testServer bundles the in-memory services behind a running router.
type testServer struct {
	*httptest.Server
	store      *memory.Store
	posts      *blog.PostService
	categories *blog.CategoryService
	tags       *blog.TagService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.New()
	posts := blog.NewPostService(store.Posts())
	categories := blog.NewCategoryService(store.Categories())
	tags := blog.NewTagService(store.Tags())
	tokens := middleware.NewTokenAuth(testJWTSecret)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPass), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	r := router.New(router.Options{
		Public: handlers.NewPublic(posts, categories, tags, store.Authors()),
		Admin:  handlers.NewAdmin(posts, categories, tags, store.Media(), nil),
		Auth:   handlers.NewAuth(tokens, testAdminUser, string(hash)),
		Tokens: tokens,
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testServer{
		Server:     srv,
		store:      store,
		posts:      posts,
		categories: categories,
		tags:       tags,
	}
}

// login returns a valid bearer token for the admin API.
func (ts *testServer) login(t *testing.T) string {
	t.Helper()

	status, body := ts.request(t, http.MethodPost, "/api/blog/admin/login", "",
		map[string]any{"username": testAdminUser, "password": testAdminPass})
	if status != http.StatusOK {
		t.Fatalf("login: status = %d, body %s", status, body)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("login: decode: %v", err)
	}
	return resp.Token
}

// request performs one JSON request against the test server and returns
// the status code and raw body. A non-nil payload is JSON-encoded; an
// empty token leaves the request unauthenticated.
func (ts *testServer) request(t *testing.T, method, path, token string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}

// seedPost inserts a post directly through the service layer.
func (ts *testServer) seedPost(t *testing.T, title string, status models.PostStatus, publishedAt *time.Time) *models.Post {
	t.Helper()

	post, err := ts.posts.Create(context.Background(), blog.CreatePostInput{
		Title:       title,
		Content:     "Body of " + title,
		Status:      status,
		PublishedAt: publishedAt,
	})
	if err != nil {
		t.Fatalf("seed post %q: %v", title, err)
	}
	return post
}

func timePtr(t time.Time) *time.Time { return &t }
