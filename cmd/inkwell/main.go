// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Inkwell blog API server.
// It loads configuration, connects the selected storage driver, sets up
// routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/internal/blog"
	"inkwell/internal/blog/memory"
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/contentapi"
	"inkwell/internal/database"
	"inkwell/internal/handlers"
	"inkwell/internal/imaging"
	"inkwell/internal/middleware"
	"inkwell/internal/router"
	"inkwell/internal/storage"
	"inkwell/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.Info("configuration loaded", "env", cfg.Env, "driver", cfg.Driver, "addr", cfg.Addr())

	// Storage ports, filled in by the selected driver.
	var (
		postRepo     blog.PostRepository
		categoryRepo blog.CategoryRepository
		tagRepo      blog.TagRepository
		authorRepo   blog.AuthorRepository
		mediaRepo    blog.MediaRepository
	)

	switch cfg.Driver {
	case "db":
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		if cfg.IsDev() {
			if err := database.Seed(db); err != nil {
				slog.Error("failed to seed database", "error", err)
				os.Exit(1)
			}
		}

		postRepo = store.NewPostStore(db)
		categoryRepo = store.NewCategoryStore(db)
		tagRepo = store.NewTagStore(db)
		authorRepo = store.NewAuthorStore(db)
		mediaRepo = store.NewMediaStore(db)

	case "contentapi":
		client := contentapi.New(contentapi.Config{
			BaseURL:    cfg.ContentAPIBaseURL,
			Dataset:    cfg.ContentAPIDataset,
			Token:      cfg.ContentAPIToken,
			APIVersion: cfg.ContentAPIVersion,
		})
		if err := client.Ping(context.Background()); err != nil {
			slog.Error("content API not reachable", "error", err)
			os.Exit(1)
		}

		postRepo = contentapi.NewPostSource(client)
		categoryRepo = contentapi.NewCategorySource(client)
		tagRepo = contentapi.NewTagSource(client)

		// The remote CMS carries author data inside its post documents
		// and has no media library, so those ports run in memory.
		mem := memory.New()
		authorRepo = mem.Authors()
		mediaRepo = mem.Media()
	}

	// Valkey query cache, optional. A failed connection disables caching
	// rather than blocking startup.
	if client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword); err != nil {
		slog.Warn("valkey not reachable, query cache disabled", "error", err)
	} else {
		defer client.Close()
		qc := cache.NewQueryCache(client, cfg.CacheTTL)
		postRepo = cache.NewCachedPostRepository(postRepo, qc)
		categoryRepo = cache.NewCachedCategoryRepository(categoryRepo, qc)
		slog.Info("query cache connected", "ttl", cfg.CacheTTL)
	}

	events := blog.LogSink{}
	posts := blog.NewPostService(postRepo, blog.WithPostEvents(events))
	categories := blog.NewCategoryService(categoryRepo, blog.WithCategoryEvents(events))
	tags := blog.NewTagService(tagRepo, blog.WithTagEvents(events))

	// S3-compatible object storage, optional. Media uploads answer 503
	// when it is not configured.
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize object storage", "error", err)
			os.Exit(1)
		}
		slog.Info("object storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)

		// libvips backs the responsive rendition pipeline for uploads.
		imaging.Startup(0)
		defer imaging.Shutdown()
	} else {
		slog.Warn("object storage not configured, media uploads disabled")
	}

	tokens := middleware.NewTokenAuth(cfg.JWTSecret)
	r := router.New(router.Options{
		Public:          handlers.NewPublic(posts, categories, tags, authorRepo),
		Admin:           handlers.NewAdmin(posts, categories, tags, mediaRepo, storageClient),
		Auth:            handlers.NewAuth(tokens, cfg.AdminUser, cfg.AdminPasswordHash),
		Tokens:          tokens,
		PublicRateLimit: cfg.PublicRateLimit,
		AdminRateLimit:  cfg.AdminRateLimit,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped gracefully")
}
