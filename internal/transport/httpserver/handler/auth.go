package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"roomies-go/internal/auth"
	userdomain "roomies-go/internal/domain/user"
	"roomies-go/internal/transport/httpserver/middleware"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type sessionResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type loginResponse struct {
	User    userResponse    `json:"user"`
	Session sessionResponse `json:"session"`
}

func toUserResponse(u *userdomain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Users.Register(r.Context(), userdomain.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(w, err, "auth.register", "email", req.Email)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(result))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	result, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, err, "auth.login")
		return
	}

	pair, err := h.tokens.MintPair(result.ID, result.Email)
	if err != nil {
		h.respondError(w, err, "auth.login", "user_id", result.ID)
		return
	}

	h.setSessionCookies(w, pair)
	writeJSON(w, http.StatusOK, loginResponse{
		User: toUserResponse(result),
		Session: sessionResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			ExpiresAt:    pair.ExpiresAt,
		},
	})
}

// Refresh mints a new token pair from the refresh token, read from the
// sb-refresh-token cookie or the request body.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie(middleware.RefreshTokenCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req refreshRequest
		if err := decodeJSON(r, &req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token")
		return
	}

	claims, err := h.tokens.Validate(token, auth.TokenTypeRefresh)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token")
		return
	}

	result, err := h.Users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token")
			return
		}
		h.respondError(w, err, "auth.refresh", "user_id", claims.UserID)
		return
	}

	pair, err := h.tokens.MintPair(result.ID, result.Email)
	if err != nil {
		h.respondError(w, err, "auth.refresh", "user_id", result.ID)
		return
	}

	h.setSessionCookies(w, pair)
	writeJSON(w, http.StatusOK, loginResponse{
		User: toUserResponse(result),
		Session: sessionResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			ExpiresAt:    pair.ExpiresAt,
		},
	})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Users.GetByID(r.Context(), user.ID)
	if err != nil {
		h.respondError(w, err, "auth.me", "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(result))
}

func (h *Handlers) setSessionCookies(w http.ResponseWriter, pair *auth.TokenPair) {
	maxAge := int(h.sessionTTL.Seconds())
	http.SetCookie(w, h.sessionCookie(middleware.AccessTokenCookie, pair.AccessToken, maxAge))
	http.SetCookie(w, h.sessionCookie(middleware.RefreshTokenCookie, pair.RefreshToken, maxAge))
}

func (h *Handlers) clearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, h.sessionCookie(middleware.AccessTokenCookie, "", -1))
	http.SetCookie(w, h.sessionCookie(middleware.RefreshTokenCookie, "", -1))
}

func (h *Handlers) sessionCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
