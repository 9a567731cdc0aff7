// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"inkwell/internal/imaging"
	"inkwell/internal/models"
)

// maxUploadSize is the maximum allowed file upload size (20 MB).
const maxUploadSize = 20 << 20

// allowedMediaTypes defines MIME types accepted for upload.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"application/pdf": true,
}

// renditionTypes are raster types that get responsive WebP renditions.
// GIF is excluded to preserve animation; SVG is vector.
var renditionTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ListMedia lists the media library, newest uploads first.
func (h *Admin) ListMedia(w http.ResponseWriter, r *http.Request) {
	items, err := h.media.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	data := make([]MediaResource, 0, len(items))
	for i := range items {
		data = append(data, newMediaResource(&items[i], h.mediaURL(&items[i])))
	}
	render.JSON(w, r, map[string]any{"data": data})
}

// UploadMedia handles a multipart file upload: the bytes go to object
// storage, the metadata becomes a media library row.
func (h *Admin) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if h.storageClient == nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, errorBody{Error: "object storage is not configured"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		render.Status(r, http.StatusRequestEntityTooLarge)
		render.JSON(w, r, errorBody{Error: "file too large, maximum size is 20 MB"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondBadRequest(w, r, "no file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		render.Status(r, http.StatusRequestEntityTooLarge)
		render.JSON(w, r, errorBody{Error: "file too large, maximum size is 20 MB"})
		return
	}

	// Detect the content type by sniffing, never trusting the client.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		respondError(w, r, err)
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	// DetectContentType reports SVGs as XML or plain text.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}
	if !allowedMediaTypes[contentType] {
		respondValidation(w, r, fmt.Sprintf("file type %q is not allowed", contentType))
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		respondError(w, r, err)
		return
	}

	now := time.Now()
	ext := filepath.Ext(header.Filename)
	key := fmt.Sprintf("blog/%d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String(), ext)

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.storageClient.Upload(r.Context(), key, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
		respondError(w, r, err)
		return
	}

	// Responsive renditions are best effort: a resize failure keeps the
	// original upload.
	if renditionTypes[contentType] {
		renditions, err := imaging.Renditions(fileBytes, imaging.BlogRenditions)
		if err != nil {
			slog.Warn("rendition generation failed", "key", key, "error", err)
		}
		for _, img := range renditions {
			rkey := renditionKey(key, img.Name)
			if err := h.storageClient.Upload(r.Context(), rkey, img.ContentType, bytes.NewReader(img.Data), int64(len(img.Data))); err != nil {
				slog.Warn("rendition upload failed", "key", rkey, "error", err)
			}
		}
	}

	media := &models.Media{
		FileName: header.Filename,
		FilePath: key,
		MimeType: contentType,
		FileSize: int64(len(fileBytes)),
		Disk:     "s3",
	}
	if alt := r.FormValue("alt_text"); alt != "" {
		media.AltText = &alt
	}
	if caption := r.FormValue("caption"); caption != "" {
		media.Caption = &caption
	}

	created, err := h.media.Create(r.Context(), media)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, newMediaResource(created, h.mediaURL(created)))
}

// DeleteMedia removes a media row and its stored object. A failed object
// delete still removes the row; orphaned objects are cheaper than broken
// listings.
func (h *Admin) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		respondBadRequest(w, r, "invalid media id")
		return
	}
	media, err := h.media.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if h.storageClient != nil && media.Disk == "s3" {
		if err := h.storageClient.Delete(r.Context(), media.FilePath); err != nil {
			slog.Warn("object delete failed", "key", media.FilePath, "error", err)
		}
		if renditionTypes[media.MimeType] {
			for _, size := range imaging.BlogRenditions {
				if err := h.storageClient.Delete(r.Context(), renditionKey(media.FilePath, size.Name)); err != nil {
					slog.Warn("rendition delete failed", "key", renditionKey(media.FilePath, size.Name), "error", err)
				}
			}
		}
	}
	if err := h.media.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// renditionKey derives the storage key for one rendition of an upload:
// "blog/2026/08/abc.png" becomes "blog/2026/08/abc_thumb.webp".
func renditionKey(key, name string) string {
	base := strings.TrimSuffix(key, filepath.Ext(key))
	return base + "_" + name + ".webp"
}

func (h *Admin) mediaURL(m *models.Media) string {
	if h.storageClient == nil || m.Disk != "s3" {
		return ""
	}
	return h.storageClient.FileURL(m.FilePath)
}
