/*
auth.go - Registration, login, and the bearer-token middleware

PURPOSE:
  Account endpoints plus the middleware that turns "Authorization: Bearer"
  headers into a user id in the request context. Every data route is
  scoped to that user id; there is no cross-user access path.

ERROR BEHAVIOR:
  Invalid or missing tokens get a JSON 401; unknown usernames and wrong
  passwords both report "invalid credentials" without distinguishing.
*/
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/worksuite/worktime-engine/auth"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserID returns the authenticated user id from a request context.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// RequireAuth validates the bearer token and injects the user id.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "Missing bearer token", nil)
			return
		}

		claims, err := h.Tokens.Validate(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token", err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Register creates a new account and issues a token.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Username required and password must be at least 8 characters", nil)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password", err)
		return
	}

	user := auth.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.Users.CreateUser(r.Context(), user); err != nil {
		if err == auth.ErrUsernameTaken {
			writeError(w, http.StatusConflict, "Username already taken", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	h.issueToken(w, &user)
}

// Login verifies credentials and issues a token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.Users.UserByUsername(r.Context(), req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up user", err)
		return
	}
	if user == nil || auth.CheckPassword(user.PasswordHash, req.Password) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	h.issueToken(w, user)
}

func (h *Handler) issueToken(w http.ResponseWriter, user *auth.User) {
	token, err := h.Tokens.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}
	writeJSON(w, http.StatusOK, TokenResponse{Token: token, User: toUserDTO(user)})
}
