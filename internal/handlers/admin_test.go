// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"inkwell/internal/models"
)

func TestAdminPosts_CreateValidateAndLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	// Missing title trips validation.
	status, _ := ts.request(t, http.MethodPost, "/api/blog/admin/posts/", token,
		map[string]any{"content": "body"})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("create without title: status = %d, want 422", status)
	}

	status, body := ts.request(t, http.MethodPost, "/api/blog/admin/posts/", token,
		map[string]any{"title": "Lifecycle Post", "content": "body"})
	if status != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", status, body)
	}
	var post models.Post
	if err := json.Unmarshal(body, &post); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if post.Slug != "lifecycle-post" || post.Status != models.PostStatusDraft {
		t.Fatalf("created post = slug %q status %q, want derived slug and draft", post.Slug, post.Status)
	}

	base := "/api/blog/admin/posts/" + post.ID.String()

	// Publish stamps the current time.
	status, body = ts.request(t, http.MethodPost, base+"/publish", token, nil)
	if status != http.StatusOK {
		t.Fatalf("publish: status = %d, body %s", status, body)
	}
	if err := json.Unmarshal(body, &post); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if post.Status != models.PostStatusPublished || post.PublishedAt == nil {
		t.Fatalf("after publish: status %q, published_at %v", post.Status, post.PublishedAt)
	}

	// Unpublish goes back to draft and clears the timestamp.
	status, body = ts.request(t, http.MethodPost, base+"/unpublish", token, nil)
	if status != http.StatusOK {
		t.Fatalf("unpublish: status = %d", status)
	}
	if err := json.Unmarshal(body, &post); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if post.Status != models.PostStatusDraft || post.PublishedAt != nil {
		t.Fatalf("after unpublish: status %q, published_at %v", post.Status, post.PublishedAt)
	}

	// Archive, then restore back to draft.
	if status, _ = ts.request(t, http.MethodPost, base+"/archive", token, nil); status != http.StatusOK {
		t.Fatalf("archive: status = %d", status)
	}
	status, body = ts.request(t, http.MethodPost, base+"/restore", token, nil)
	if status != http.StatusOK {
		t.Fatalf("restore: status = %d", status)
	}
	if err := json.Unmarshal(body, &post); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if post.Status != models.PostStatusDraft {
		t.Fatalf("after restore: status = %q, want draft", post.Status)
	}

	// Delete, then the post reads 404.
	if status, _ = ts.request(t, http.MethodDelete, base, token, nil); status != http.StatusNoContent {
		t.Fatalf("delete: status = %d, want 204", status)
	}
	if status, _ = ts.request(t, http.MethodGet, base, token, nil); status != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d, want 404", status)
	}
}

func TestAdminPosts_ScheduleAndListScheduled(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	post := ts.seedPost(t, "Queued", models.PostStatusDraft, nil)
	base := "/api/blog/admin/posts/" + post.ID.String()

	// schedule requires a timestamp.
	status, _ := ts.request(t, http.MethodPost, base+"/schedule", token, map[string]any{})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("schedule without time: status = %d, want 422", status)
	}

	at := time.Now().Add(48 * time.Hour).UTC()
	status, body := ts.request(t, http.MethodPost, base+"/schedule", token,
		map[string]any{"published_at": at})
	if status != http.StatusOK {
		t.Fatalf("schedule: status = %d, body %s", status, body)
	}

	status, body = ts.request(t, http.MethodGet, "/api/blog/admin/posts/?status=scheduled", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list scheduled: status = %d", status)
	}
	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("scheduled total = %d, want 1", resp.Total)
	}

	// The scheduled post must stay off the public feed.
	status, body = ts.request(t, http.MethodGet, "/api/blog/posts", "", nil)
	if status != http.StatusOK {
		t.Fatalf("public list: status = %d", status)
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("public total = %d, want 0", resp.Total)
	}
}

func TestAdminPosts_DuplicateReturnsFreshDraft(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	post := ts.seedPost(t, "Original", models.PostStatusPublished, timePtr(time.Now().Add(-time.Hour)))

	status, body := ts.request(t, http.MethodPost,
		"/api/blog/admin/posts/"+post.ID.String()+"/duplicate", token, nil)
	if status != http.StatusCreated {
		t.Fatalf("duplicate: status = %d, body %s", status, body)
	}
	var dup models.Post
	if err := json.Unmarshal(body, &dup); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dup.ID == post.ID || dup.Slug == post.Slug {
		t.Fatalf("copy shares identity with original: %+v", dup)
	}
	if dup.Status != models.PostStatusDraft {
		t.Errorf("copy status = %q, want draft", dup.Status)
	}
}

func TestAdminCategories_OrderingEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	var ids []string
	for i, name := range []string{"Alpha", "Beta", "Gamma"} {
		status, body := ts.request(t, http.MethodPost, "/api/blog/admin/categories/", token,
			map[string]any{"name": name, "sort_order": i + 1})
		if status != http.StatusCreated {
			t.Fatalf("create %s: status = %d, body %s", name, status, body)
		}
		var c models.Category
		if err := json.Unmarshal(body, &c); err != nil {
			t.Fatalf("decode: %v", err)
		}
		ids = append(ids, c.ID.String())
	}

	// Beta moves above Alpha.
	status, body := ts.request(t, http.MethodPost,
		"/api/blog/admin/categories/"+ids[1]+"/move-up", token, nil)
	if status != http.StatusOK {
		t.Fatalf("move-up: status = %d, body %s", status, body)
	}
	var moveResp struct {
		Moved bool `json:"moved"`
	}
	if err := json.Unmarshal(body, &moveResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !moveResp.Moved {
		t.Fatal("move-up reported no movement")
	}

	// Moving the new top up again is a calm no-op.
	status, body = ts.request(t, http.MethodPost,
		"/api/blog/admin/categories/"+ids[1]+"/move-up", token, nil)
	if status != http.StatusOK {
		t.Fatalf("move-up at top: status = %d", status)
	}
	if err := json.Unmarshal(body, &moveResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if moveResp.Moved {
		t.Error("move-up at top reported movement")
	}

	// Gamma jumps to the front via set-order.
	status, _ = ts.request(t, http.MethodPost,
		"/api/blog/admin/categories/"+ids[2]+"/set-order", token,
		map[string]any{"sort_order": 1})
	if status != http.StatusOK {
		t.Fatalf("set-order: status = %d", status)
	}

	status, body = ts.request(t, http.MethodGet, "/api/blog/admin/categories/", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list: status = %d", status)
	}
	var list struct {
		Data []models.Category `json:"data"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var names []string
	for _, c := range list.Data {
		names = append(names, c.Name)
	}
	want := []string{"Gamma", "Beta", "Alpha"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}

func TestAdminTags_CRUD(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	status, body := ts.request(t, http.MethodPost, "/api/blog/admin/tags/", token,
		map[string]any{"name": "Go Generics"})
	if status != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", status, body)
	}
	var tag models.Tag
	if err := json.Unmarshal(body, &tag); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tag.Slug != "go-generics" {
		t.Errorf("slug = %q, want go-generics", tag.Slug)
	}

	base := "/api/blog/admin/tags/" + tag.ID.String()
	status, body = ts.request(t, http.MethodPut, base, token, map[string]any{"name": "Generics"})
	if status != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", status, body)
	}
	if err := json.Unmarshal(body, &tag); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tag.Name != "Generics" || tag.Slug != "generics" {
		t.Errorf("after rename: name %q slug %q", tag.Name, tag.Slug)
	}

	if status, _ = ts.request(t, http.MethodDelete, base, token, nil); status != http.StatusNoContent {
		t.Fatalf("delete: status = %d, want 204", status)
	}
	if status, _ = ts.request(t, http.MethodGet, base, token, nil); status != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d, want 404", status)
	}
}

func TestAdminMedia_UploadWithoutStorage503(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "photo.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	part.Write([]byte("\x89PNG\r\n\x1a\nnot really a png"))
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/blog/admin/media/upload", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}
