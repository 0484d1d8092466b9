package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/voiceforge/voiceforge/internal/domain/model"
	apperrors "github.com/voiceforge/voiceforge/internal/errors"
	"github.com/voiceforge/voiceforge/internal/service"
)

// AuthHandlers provides HTTP handlers for registration, login, and token
// validation.
type AuthHandlers struct {
	Svc *service.AuthService
}

// Register handles HTTP requests to create a new account.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.Svc.Register(r.Context(), &req)
	if err != nil {
		RenderError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, resp)
}

// Login handles HTTP requests to authenticate an existing account.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.Svc.Login(r.Context(), &req)
	if err != nil {
		RenderError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

// validateRequest is the body accepted by Validate. The token may arrive in
// the body or as a bearer header; the body wins when both are present.
type validateRequest struct {
	Token string `json:"token"`
}

// validateResponse reports the outcome of a token validation.
type validateResponse struct {
	Valid  bool            `json:"valid"`
	Claims *validateClaims `json:"claims,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type validateClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	ExpiresAt int64  `json:"expires_at"`
}

// Validate handles token validation requests from the gateway. A rejected
// token gets a 401 with {valid:false}; only the stable rejection reason is
// echoed, never verifier internals.
func (h *AuthHandlers) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if !DecodeJSON(w, r, &req) {
			return
		}
	}

	raw := req.Token
	if raw == "" {
		raw = BearerToken(r)
	}
	if raw == "" {
		WriteError(w, http.StatusBadRequest, "validation", "token is required")
		return
	}

	claims, err := h.Svc.Validate(r.Context(), raw)
	if err != nil {
		WriteJSON(w, http.StatusUnauthorized, validateResponse{Valid: false, Error: rejectionReason(err)})
		return
	}

	WriteJSON(w, http.StatusOK, validateResponse{
		Valid: true,
		Claims: &validateClaims{
			UserID:    claims.UserID,
			Email:     claims.Email,
			Username:  claims.Username,
			ExpiresAt: claims.ExpiresAt,
		},
	})
}

// rejectionReason reduces a token rejection to its stable message. The
// wrapped cause carries verifier internals and is never exposed.
func rejectionReason(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "invalid token"
}

// BearerToken extracts the token from an Authorization: Bearer header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
