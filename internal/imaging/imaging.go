// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

// Package imaging generates responsive WebP renditions of uploaded blog
// images using libvips. Renditions wider than the source are skipped to
// avoid upscaling.
package imaging

import (
	"fmt"
	"log/slog"

	"github.com/davidbyttow/govips/v2/vips"
)

// Rendition describes a single responsive output size.
type Rendition struct {
	Name    string // "thumb", "medium", "large"
	Width   int    // target width in pixels
	Quality int    // WebP quality 1-100
}

// BlogRenditions are the sizes generated for post images: a listing
// thumbnail, an in-article size, and a full-width hero.
var BlogRenditions = []Rendition{
	{Name: "thumb", Width: 400, Quality: 75},
	{Name: "medium", Width: 800, Quality: 80},
	{Name: "large", Width: 1600, Quality: 80},
}

// Image holds one generated rendition ready for upload.
type Image struct {
	Name        string
	Width       int
	Height      int
	Data        []byte
	ContentType string // always "image/webp"
}

// Startup initialises libvips. Call once at application start;
// concurrency zero lets libvips pick a worker count.
func Startup(concurrency int) {
	cfg := &vips.Config{
		ConcurrencyLevel: concurrency,
		MaxCacheSize:     100,
		MaxCacheMem:      50 * 1024 * 1024,
	}
	vips.LoggingSettings(nil, vips.LogLevelWarning)
	vips.Startup(cfg)
	slog.Info("libvips started", "version", vips.Version)
}

// Shutdown releases libvips resources.
func Shutdown() {
	vips.Shutdown()
}

// Renditions converts the source image into WebP at each requested size.
// Sizes wider than the original collapse to the original width, and once
// the original width is reached no larger renditions are produced.
func Renditions(original []byte, sizes []Rendition) ([]Image, error) {
	if len(sizes) == 0 {
		sizes = BlogRenditions
	}

	probe, err := vips.NewImageFromBuffer(original)
	if err != nil {
		return nil, fmt.Errorf("imaging: probe failed: %w", err)
	}
	origWidth := probe.Width()
	probe.Close()

	var out []Image
	for _, size := range sizes {
		width := size.Width
		if origWidth <= width {
			width = origWidth
		}

		img, err := vips.NewThumbnailFromBuffer(original, width, 0, vips.InterestingNone)
		if err != nil {
			return nil, fmt.Errorf("imaging: resize %s to %dpx: %w", size.Name, width, err)
		}
		if err := img.AutoRotate(); err != nil {
			img.Close()
			return nil, fmt.Errorf("imaging: autorotate %s: %w", size.Name, err)
		}

		params := vips.NewWebpExportParams()
		params.Quality = size.Quality
		params.Lossless = false
		params.StripMetadata = true

		buf, meta, err := img.ExportWebp(params)
		img.Close()
		if err != nil {
			return nil, fmt.Errorf("imaging: export %s: %w", size.Name, err)
		}

		out = append(out, Image{
			Name:        size.Name,
			Width:       meta.Width,
			Height:      meta.Height,
			Data:        buf,
			ContentType: "image/webp",
		})

		if origWidth <= size.Width {
			break
		}
	}
	return out, nil
}
