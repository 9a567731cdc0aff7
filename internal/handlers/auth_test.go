// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestLogin_IssuesUsableToken(t *testing.T) {
	ts := newTestServer(t)

	token := ts.login(t)
	if token == "" {
		t.Fatal("empty token")
	}

	status, _ := ts.request(t, http.MethodGet, "/api/blog/admin/posts/", token, nil)
	if status != http.StatusOK {
		t.Fatalf("authenticated list: status = %d, want 200", status)
	}
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", testAdminUser, "nope"},
		{"wrong username", "root", testAdminPass},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := ts.request(t, http.MethodPost, "/api/blog/admin/login", "",
				map[string]any{"username": tc.username, "password": tc.password})
			if status != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", status)
			}
			var resp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error != "invalid credentials" {
				t.Errorf("error = %q, want uniform message", resp.Error)
			}
		})
	}
}

func TestAdmin_RequiresToken(t *testing.T) {
	ts := newTestServer(t)

	paths := []string{
		"/api/blog/admin/posts/",
		"/api/blog/admin/categories/",
		"/api/blog/admin/tags/",
		"/api/blog/admin/media/",
	}
	for _, path := range paths {
		status, _ := ts.request(t, http.MethodGet, path, "", nil)
		if status != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status = %d, want 401", path, status)
		}
	}

	status, _ := ts.request(t, http.MethodGet, "/api/blog/admin/posts/", "not-a-jwt", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", status)
	}
}
