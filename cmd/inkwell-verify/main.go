// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

// Package main implements inkwell-verify, a diagnostic command that
// exercises both storage drivers and reports reachability and sample
// consistency. Run it after wiring a new environment to confirm the
// database and the remote content API both serve the blog correctly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"inkwell/internal/blog"
	"inkwell/internal/config"
	"inkwell/internal/contentapi"
	"inkwell/internal/database"
	"inkwell/internal/store"
)

func main() {
	timeout := flag.Duration("timeout", 15*time.Second, "per-check timeout")
	sample := flag.Int("sample", 5, "posts to sample from each driver")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	failed := false
	if !verifyDatabase(cfg, *timeout, *sample) {
		failed = true
	}
	if cfg.ContentAPIBaseURL != "" {
		if !verifyContentAPI(cfg, *timeout, *sample) {
			failed = true
		}
	} else {
		slog.Info("content API not configured, skipping")
	}

	if failed {
		os.Exit(1)
	}
	slog.Info("all checks passed")
}

func verifyDatabase(cfg *config.Config, timeout time.Duration, sample int) bool {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("database: connect failed", "error", err)
		return false
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("database: migrate failed", "error", err)
		return false
	}
	slog.Info("database: reachable, schema current")

	return verifyDriver(ctx, "database", store.NewPostStore(db), store.NewCategoryStore(db), sample)
}

func verifyContentAPI(cfg *config.Config, timeout time.Duration, sample int) bool {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := contentapi.New(contentapi.Config{
		BaseURL:    cfg.ContentAPIBaseURL,
		Dataset:    cfg.ContentAPIDataset,
		Token:      cfg.ContentAPIToken,
		APIVersion: cfg.ContentAPIVersion,
	})
	if err := client.Ping(ctx); err != nil {
		slog.Error("content API: ping failed", "error", err)
		return false
	}
	slog.Info("content API: reachable", "base_url", cfg.ContentAPIBaseURL, "dataset", cfg.ContentAPIDataset)

	return verifyDriver(ctx, "content API", contentapi.NewPostSource(client), contentapi.NewCategorySource(client), sample)
}

// verifyDriver samples posts and categories from one driver and checks
// the invariants every driver must hold: listed posts resolve by slug to
// the same post, and category order is ascending.
func verifyDriver(ctx context.Context, name string, posts blog.PostRepository, categories blog.CategoryRepository, sample int) bool {
	ok := true

	listed, total, err := posts.List(ctx, blog.PostQuery{PublishedOnly: true, PerPage: sample})
	if err != nil {
		slog.Error(name+": post listing failed", "error", err)
		return false
	}
	slog.Info(name+": published posts", "total", total, "sampled", len(listed))

	for i := range listed {
		p := &listed[i]
		got, err := posts.FindBySlug(ctx, p.Slug)
		if err != nil {
			slog.Error(name+": slug lookup failed", "slug", p.Slug, "error", err)
			ok = false
			continue
		}
		if got.ID != p.ID {
			slog.Error(name+": slug resolves to a different post",
				"slug", p.Slug, "listed_id", p.ID, "found_id", got.ID)
			ok = false
		}
	}

	ordered, err := categories.ListOrdered(ctx)
	if err != nil {
		slog.Error(name+": category listing failed", "error", err)
		return false
	}
	for i := 1; i < len(ordered); i++ {
		prev, cur := &ordered[i-1], &ordered[i]
		if cur.SortOrder < prev.SortOrder ||
			(cur.SortOrder == prev.SortOrder && cur.Name < prev.Name) {
			slog.Error(name+": categories out of order",
				"before", fmt.Sprintf("%s(%d)", prev.Name, prev.SortOrder),
				"after", fmt.Sprintf("%s(%d)", cur.Name, cur.SortOrder))
			ok = false
		}
	}
	slog.Info(name+": categories ordered", "count", len(ordered))

	return ok
}
