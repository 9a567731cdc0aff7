// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

// Package contentapi is a read-only storage driver backed by a remote
// headless CMS exposing a GROQ query endpoint. It implements the read
// side of the blog repositories; every mutation fails with
// blog.ErrDriverReadOnly since the remote studio owns the content.
package contentapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Config holds the remote project coordinates.
type Config struct {
	BaseURL    string // e.g. https://<project>.api.sanity.io
	Dataset    string // e.g. production
	Token      string // read token, optional for public datasets
	APIVersion string // e.g. v2024-01-01
}

// Client speaks the query API of the remote CMS.
type Client struct {
	config Config
	client *http.Client
}

// New creates a content API client.
func New(cfg Config) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v2024-01-01"
	}
	if cfg.Dataset == "" {
		cfg.Dataset = "production"
	}
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Posts returns the read-only post repository.
func (c *Client) Posts() *PostSource { return &PostSource{c} }

// Categories returns the read-only category repository.
func (c *Client) Categories() *CategorySource { return &CategorySource{c} }

// Tags returns the read-only tag repository.
func (c *Client) Tags() *TagSource { return &TagSource{c} }

// query runs a GROQ query with parameters and decodes the result payload
// into out.
func (c *Client) query(ctx context.Context, groq string, params map[string]string, out any) error {
	endpoint := fmt.Sprintf("%s/%s/data/query/%s",
		c.config.BaseURL, c.config.APIVersion, c.config.Dataset)

	values := url.Values{}
	values.Set("query", groq)
	for k, v := range params {
		// GROQ parameters arrive as JSON-encoded query values.
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("contentapi encode param %q: %w", k, err)
		}
		values.Set("$"+k, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return fmt.Errorf("contentapi request: %w", err)
	}
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("contentapi http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("contentapi read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("contentapi query error (status %d): %s", resp.StatusCode, string(body))
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("contentapi unmarshal envelope: %w", err)
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("contentapi unmarshal result: %w", err)
	}
	return nil
}

// Ping checks that the remote dataset answers queries. Used by the
// verify command.
func (c *Client) Ping(ctx context.Context) error {
	var n int
	return c.query(ctx, `count(*[_type == "post"])`, nil, &n)
}

// docUUID maps a remote document ID onto a stable UUID so local and
// remote drivers expose the same identifier type.
func docUUID(docID string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("contentapi:"+docID))
}
