package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/blog"
	"inkwell/internal/models"
)

func TestPostStore_CRUD(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	posts := NewPostStore(db)
	cleanPosts(t, db, "store-test-post", "store-test-post-renamed")
	t.Cleanup(func() { cleanPosts(t, db, "store-test-post", "store-test-post-renamed") })

	excerpt := "a short intro"
	created, err := posts.Create(ctx, &models.Post{
		Title:       "Store Test Post",
		Slug:        "store-test-post",
		Excerpt:     &excerpt,
		Content:     "full body text",
		Status:      models.PostStatusDraft,
		ReadingTime: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected generated ID")
	}
	if created.Status != models.PostStatusDraft {
		t.Errorf("Status = %q, want draft", created.Status)
	}

	found, err := posts.FindBySlug(ctx, "store-test-post")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("FindBySlug ID = %v, want %v", found.ID, created.ID)
	}

	now := time.Now().UTC().Truncate(time.Second)
	found.Slug = "store-test-post-renamed"
	found.Status = models.PostStatusPublished
	found.PublishedAt = &now
	updated, err := posts.Update(ctx, found)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Slug != "store-test-post-renamed" {
		t.Errorf("Slug = %q after update", updated.Slug)
	}
	if updated.PublishedAt == nil || !updated.PublishedAt.Equal(now) {
		t.Errorf("PublishedAt = %v, want %v", updated.PublishedAt, now)
	}

	if err := posts.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := posts.FindByID(ctx, created.ID); err != blog.ErrNotFound {
		t.Errorf("FindByID after delete: err = %v, want ErrNotFound", err)
	}
}

func TestPostStore_SlugsLike(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	posts := NewPostStore(db)
	slugs := []string{"prefix-test", "prefix-test-1", "prefix-test-2"}
	cleanPosts(t, db, slugs...)
	t.Cleanup(func() { cleanPosts(t, db, slugs...) })

	var last *models.Post
	for _, slug := range slugs {
		p, err := posts.Create(ctx, &models.Post{
			Title: "Prefix Test", Slug: slug, Content: "x",
			Status: models.PostStatusDraft, ReadingTime: 1,
		})
		if err != nil {
			t.Fatalf("Create %q: %v", slug, err)
		}
		last = p
	}

	got, err := posts.SlugsLike(ctx, "prefix-test", uuid.Nil)
	if err != nil {
		t.Fatalf("SlugsLike: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("SlugsLike returned %d slugs, want 3", len(got))
	}

	got, err = posts.SlugsLike(ctx, "prefix-test", last.ID)
	if err != nil {
		t.Fatalf("SlugsLike excluding: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("SlugsLike excluding returned %d slugs, want 2", len(got))
	}
}

func TestPostStore_ListFilters(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	posts := NewPostStore(db)
	categories := NewCategoryStore(db)

	cleanPosts(t, db, "filter-live", "filter-scheduled", "filter-draft")
	cleanCategories(t, db, "filter-cat")
	t.Cleanup(func() {
		cleanPosts(t, db, "filter-live", "filter-scheduled", "filter-draft")
		cleanCategories(t, db, "filter-cat")
	})

	cat, err := categories.Create(ctx, &models.Category{Name: "Filter Cat", Slug: "filter-cat"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	seed := []struct {
		slug        string
		status      models.PostStatus
		publishedAt *time.Time
	}{
		{"filter-live", models.PostStatusPublished, &past},
		{"filter-scheduled", models.PostStatusPublished, &future},
		{"filter-draft", models.PostStatusDraft, nil},
	}
	for _, s := range seed {
		_, err := posts.Create(ctx, &models.Post{
			Title: "Filter " + s.slug, Slug: s.slug, Content: "x",
			CategoryID: &cat.ID, Status: s.status, PublishedAt: s.publishedAt,
			ReadingTime: 1,
		})
		if err != nil {
			t.Fatalf("Create %q: %v", s.slug, err)
		}
	}

	live, total, err := posts.List(ctx, blog.PostQuery{CategoryID: &cat.ID, PublishedOnly: true})
	if err != nil {
		t.Fatalf("List published: %v", err)
	}
	if total != 1 || len(live) != 1 || live[0].Slug != "filter-live" {
		t.Errorf("published list = %d rows (total %d), want just filter-live", len(live), total)
	}

	scheduled, _, err := posts.List(ctx, blog.PostQuery{CategoryID: &cat.ID, ScheduledOnly: true})
	if err != nil {
		t.Fatalf("List scheduled: %v", err)
	}
	if len(scheduled) != 1 || scheduled[0].Slug != "filter-scheduled" {
		t.Errorf("scheduled list wrong: %+v", scheduled)
	}

	all, total, err := posts.List(ctx, blog.PostQuery{CategoryID: &cat.ID})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	for _, p := range all {
		if p.Category == nil || p.Category.ID != cat.ID {
			t.Errorf("post %q missing category relation", p.Slug)
		}
	}
}

func TestPostStore_SyncTags(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	posts := NewPostStore(db)
	tags := NewTagStore(db)

	cleanPosts(t, db, "sync-tags-post")
	cleanTags(t, db, "sync-tag-a", "sync-tag-b")
	t.Cleanup(func() {
		cleanPosts(t, db, "sync-tags-post")
		cleanTags(t, db, "sync-tag-a", "sync-tag-b")
	})

	post, err := posts.Create(ctx, &models.Post{
		Title: "Sync", Slug: "sync-tags-post", Content: "x",
		Status: models.PostStatusDraft, ReadingTime: 1,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	tagA, err := tags.Create(ctx, &models.Tag{Name: "Sync Tag A", Slug: "sync-tag-a"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	tagB, err := tags.Create(ctx, &models.Tag{Name: "Sync Tag B", Slug: "sync-tag-b"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	if err := posts.SyncTags(ctx, post.ID, []uuid.UUID{tagA.ID, tagB.ID}); err != nil {
		t.Fatalf("SyncTags: %v", err)
	}
	ids, err := posts.TagIDs(ctx, post.ID)
	if err != nil {
		t.Fatalf("TagIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("TagIDs = %d, want 2", len(ids))
	}

	// Re-sync to a smaller set replaces, not appends.
	if err := posts.SyncTags(ctx, post.ID, []uuid.UUID{tagB.ID}); err != nil {
		t.Fatalf("SyncTags replace: %v", err)
	}
	ids, err = posts.TagIDs(ctx, post.ID)
	if err != nil {
		t.Fatalf("TagIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != tagB.ID {
		t.Errorf("TagIDs after replace = %v, want [%v]", ids, tagB.ID)
	}

	found, err := posts.FindByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(found.Tags) != 1 || found.Tags[0].Slug != "sync-tag-b" {
		t.Errorf("loaded tags = %+v, want sync-tag-b", found.Tags)
	}
}
