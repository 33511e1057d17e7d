package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"roomies-go/internal/auth"
	userdomain "roomies-go/internal/domain/user"
)

const (
	AccessTokenCookie  = "sb-access-token"
	RefreshTokenCookie = "sb-refresh-token"
)

type contextKey int

const userKey contextKey = iota

type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
}

// UserLoader resolves the session's user row, so stale tokens for deleted
// accounts are rejected.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// SessionAuth authenticates requests from the bearer header or the
// sb-access-token cookie, resolving the session once at the request boundary.
type SessionAuth struct {
	tokens *auth.TokenManager
	users  UserLoader
}

func NewSessionAuth(tokens *auth.TokenManager, users UserLoader) *SessionAuth {
	return &SessionAuth{tokens: tokens, users: users}
}

func (a *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := requestToken(r)
		if !ok {
			unauthorized(w)
			return
		}

		claims, err := a.tokens.Validate(token, auth.TokenTypeAccess)
		if err != nil {
			unauthorized(w)
			return
		}

		u, err := a.users.GetByID(r.Context(), claims.UserID)
		if errors.Is(err, userdomain.ErrUserNotFound) {
			unauthorized(w)
			return
		}
		if err != nil {
			internalError(w)
			return
		}

		sessionUser := User{
			ID:    u.ID,
			Email: u.Email,
			Name:  u.Name,
		}
		if u.AvatarURL != nil {
			sessionUser.AvatarURL = *u.AvatarURL
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), sessionUser)))
	})
}

func requestToken(r *http.Request) (string, bool) {
	if token, ok := bearerToken(r.Header.Get("Authorization")); ok {
		return token, true
	}
	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "invalid_token",
		"message": "invalid or expired token",
	})
}

func internalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "internal_error",
		"message": "internal error",
	})
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}
