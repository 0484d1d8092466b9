// Package token issues and verifies the signed bearer credentials that bind a
// request to a user identity. Tokens are stateless: any holder of the signing
// secret can verify them without a session store lookup.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/voiceforge/voiceforge/internal/domain/auth"
	apperrors "github.com/voiceforge/voiceforge/internal/errors"
)

// Claims are the statements embedded in an issued token. Nothing beyond the
// user identity and the registered expiry is ever encoded.
type Claims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Identity converts verified claims into a domain identity.
func (c Claims) Identity() auth.Identity {
	return auth.Identity{UserID: c.UserID, Email: c.Email, Username: c.Username}
}

// ServiceOptions groups dependencies for the token Service.
type ServiceOptions struct {
	Secret []byte        // Required: HMAC signing secret
	TTL    time.Duration // Optional: validity window, defaults to 24h
	Now    func() time.Time
}

const defaultTTL = 24 * time.Hour

// Service signs and verifies tokens with an injected secret. The secret is
// read-only after construction.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService constructs a token Service.
func NewService(opts ServiceOptions) (*Service, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("token signing secret is required")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{secret: opts.Secret, ttl: ttl, now: now}, nil
}

// Issue mints a signed token for the given identity. It has no side effects
// beyond CPU-bound signing.
func (s *Service) Issue(identity auth.Identity) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		UserID:   identity.UserID,
		Email:    identity.Email,
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "sign token")
	}
	return signed, expiresAt, nil
}

// Verify checks the signature and expiry of a token and returns its claims.
// Verification is all-or-nothing: on any failure no claims are returned.
func (s *Service) Verify(raw string) (Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "token expired")
		}
		return Claims{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return Claims{}, apperrors.Unauthorized("invalid token")
	}
	if claims.UserID == "" || claims.Email == "" || claims.ExpiresAt == nil {
		return Claims{}, apperrors.Unauthorized("invalid token")
	}
	return *claims, nil
}
