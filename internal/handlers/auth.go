// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long an issued admin token stays valid.
const tokenTTL = 12 * time.Hour

// Auth handles admin login and token issuance.
type Auth struct {
	tokens   *jwtauth.JWTAuth
	username string
	// passwordHash is the bcrypt hash of the admin password.
	passwordHash string
}

// NewAuth creates the auth handler group.
func NewAuth(tokens *jwtauth.JWTAuth, username, passwordHash string) *Auth {
	return &Auth{tokens: tokens, username: username, passwordHash: passwordHash}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login checks the admin credentials and returns a bearer token. Failed
// attempts get a uniform 401 so the response never reveals which field
// was wrong.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, r, "invalid request body")
		return
	}

	if req.Username != a.username ||
		bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(req.Password)) != nil {
		slog.Warn("failed login attempt", "username", req.Username, "remote", r.RemoteAddr)
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, errorBody{Error: "invalid credentials"})
		return
	}

	expiresAt := time.Now().Add(tokenTTL)
	_, token, err := a.tokens.Encode(map[string]interface{}{
		"sub": req.Username,
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("admin logged in", "username", req.Username)
	render.JSON(w, r, loginResponse{Token: token, ExpiresAt: expiresAt})
}
