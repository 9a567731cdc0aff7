// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package contentapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/blog"
	"inkwell/internal/models"
)

// newQueryServer fakes the remote query endpoint: it routes on substrings
// of the GROQ query and wraps each response in the {"result": ...} envelope.
func newQueryServer(t *testing.T, route func(groq string) any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		groq := r.URL.Query().Get("query")
		result := route(groq)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"result": result})
	}))
}

func testClient(srv *httptest.Server) *Client {
	return New(Config{BaseURL: srv.URL, Dataset: "production", Token: "test-token"})
}

func samplePostDocs() []map[string]any {
	published := time.Now().Add(-time.Hour).Format(time.RFC3339)
	return []map[string]any{
		{
			"_id":         "post-abc",
			"_createdAt":  "2026-01-01T00:00:00Z",
			"_updatedAt":  "2026-01-02T00:00:00Z",
			"title":       "Remote First Post",
			"slug":        "remote-first-post",
			"body":        "remote body text",
			"publishedAt": published,
			"category": map[string]any{
				"_id": "cat-1", "_createdAt": "2026-01-01T00:00:00Z",
				"_updatedAt": "2026-01-01T00:00:00Z",
				"title":      "Remote Cat", "slug": "remote-cat", "sortOrder": 1,
			},
			"tags": []map[string]any{
				{"_id": "tag-1", "_createdAt": "2026-01-01T00:00:00Z",
					"_updatedAt": "2026-01-01T00:00:00Z",
					"title":      "Remote Tag", "slug": "remote-tag"},
			},
		},
	}
}

func TestPostSource_FindBySlug(t *testing.T) {
	srv := newQueryServer(t, func(groq string) any {
		if strings.Contains(groq, `slug.current == $slug`) {
			return samplePostDocs()
		}
		return []any{}
	})
	defer srv.Close()

	post, err := testClient(srv).Posts().FindBySlug(context.Background(), "remote-first-post")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if post.Title != "Remote First Post" {
		t.Errorf("Title = %q", post.Title)
	}
	if post.Status != models.PostStatusPublished {
		t.Errorf("Status = %q, want published", post.Status)
	}
	if post.ID != docUUID("post-abc") {
		t.Errorf("ID not derived from document ID")
	}
	if post.Category == nil || post.Category.Slug != "remote-cat" {
		t.Errorf("category not attached: %+v", post.Category)
	}
	if len(post.Tags) != 1 || post.Tags[0].Slug != "remote-tag" {
		t.Errorf("tags not attached: %+v", post.Tags)
	}
	if post.ReadingTime < 1 {
		t.Errorf("ReadingTime = %d, want >= 1", post.ReadingTime)
	}
}

func TestPostSource_FindBySlug_NotFound(t *testing.T) {
	srv := newQueryServer(t, func(string) any { return []any{} })
	defer srv.Close()

	_, err := testClient(srv).Posts().FindBySlug(context.Background(), "missing")
	if !errors.Is(err, blog.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPostSource_FindByID_DerivedUUID(t *testing.T) {
	srv := newQueryServer(t, func(groq string) any {
		switch {
		case strings.Contains(groq, `[]._id`):
			return []string{"post-abc"}
		case strings.Contains(groq, `_id == $id`):
			return samplePostDocs()
		default:
			return []any{}
		}
	})
	defer srv.Close()

	post, err := testClient(srv).Posts().FindByID(context.Background(), docUUID("post-abc"))
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if post.Slug != "remote-first-post" {
		t.Errorf("Slug = %q", post.Slug)
	}

	_, err = testClient(srv).Posts().FindByID(context.Background(), uuid.New())
	if !errors.Is(err, blog.ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestPostSource_MutationsReadOnly(t *testing.T) {
	srv := newQueryServer(t, func(string) any { return []any{} })
	defer srv.Close()

	ctx := context.Background()
	posts := testClient(srv).Posts()

	if _, err := posts.Create(ctx, &models.Post{}); !errors.Is(err, blog.ErrDriverReadOnly) {
		t.Errorf("Create err = %v, want ErrDriverReadOnly", err)
	}
	if _, err := posts.Update(ctx, &models.Post{}); !errors.Is(err, blog.ErrDriverReadOnly) {
		t.Errorf("Update err = %v, want ErrDriverReadOnly", err)
	}
	if err := posts.Delete(ctx, uuid.New()); !errors.Is(err, blog.ErrDriverReadOnly) {
		t.Errorf("Delete err = %v, want ErrDriverReadOnly", err)
	}
	if err := posts.SyncTags(ctx, uuid.New(), nil); !errors.Is(err, blog.ErrDriverReadOnly) {
		t.Errorf("SyncTags err = %v, want ErrDriverReadOnly", err)
	}
}

func TestCategorySource_ListOrdered(t *testing.T) {
	srv := newQueryServer(t, func(groq string) any {
		if strings.Contains(groq, `_type == "category"`) {
			return []map[string]any{
				{"_id": "cat-b", "_createdAt": "2026-01-01T00:00:00Z",
					"_updatedAt": "2026-01-01T00:00:00Z",
					"title":      "Beta", "slug": "beta", "sortOrder": 2},
				{"_id": "cat-a", "_createdAt": "2026-01-01T00:00:00Z",
					"_updatedAt": "2026-01-01T00:00:00Z",
					"title":      "Alpha", "slug": "alpha", "sortOrder": 1},
			}
		}
		return []any{}
	})
	defer srv.Close()

	got, err := testClient(srv).Categories().ListOrdered(context.Background())
	if err != nil {
		t.Fatalf("ListOrdered: %v", err)
	}
	if len(got) != 2 || got[0].Slug != "alpha" || got[1].Slug != "beta" {
		t.Errorf("order wrong: %+v", got)
	}

	if err := testClient(srv).Categories().UpdateOrders(context.Background(), nil); !errors.Is(err, blog.ErrDriverReadOnly) {
		t.Errorf("UpdateOrders err = %v, want ErrDriverReadOnly", err)
	}
}

func TestTagSource_Popular(t *testing.T) {
	srv := newQueryServer(t, func(groq string) any {
		if strings.Contains(groq, `_type == "tag"`) {
			return []map[string]any{
				{"_id": "tag-cold", "_createdAt": "2026-01-01T00:00:00Z",
					"_updatedAt": "2026-01-01T00:00:00Z",
					"title":      "Cold", "slug": "cold", "postCount": 1},
				{"_id": "tag-hot", "_createdAt": "2026-01-01T00:00:00Z",
					"_updatedAt": "2026-01-01T00:00:00Z",
					"title":      "Hot", "slug": "hot", "postCount": 9},
			}
		}
		return []any{}
	})
	defer srv.Close()

	got, err := testClient(srv).Tags().Popular(context.Background(), 1)
	if err != nil {
		t.Fatalf("Popular: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "hot" {
		t.Errorf("popular = %+v, want hot", got)
	}
}

func TestClient_QueryErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "dataset not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	err := testClient(srv).Ping(context.Background())
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Errorf("err = %v, want status 404 error", err)
	}
}
