package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voiceforge/voiceforge/internal/domain/auth"
	apperrors "github.com/voiceforge/voiceforge/internal/errors"
)

func testIdentity() auth.Identity {
	return auth.Identity{
		UserID:   "11111111-1111-1111-1111-111111111111",
		Email:    "alice@example.com",
		Username: "alice",
	}
}

func TestNewService(t *testing.T) {
	t.Run("requires a secret", func(t *testing.T) {
		_, err := NewService(ServiceOptions{})
		require.Error(t, err)
	})

	t.Run("defaults the TTL", func(t *testing.T) {
		svc, err := NewService(ServiceOptions{Secret: []byte("s")})
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, svc.ttl)
	})
}

func TestIssueAndVerify(t *testing.T) {
	svc, err := NewService(ServiceOptions{Secret: []byte("test-secret"), TTL: time.Hour})
	require.NoError(t, err)

	signed, expiresAt, err := svc.Issue(testIdentity())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, testIdentity(), claims.Identity())
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestVerifyRejections(t *testing.T) {
	svc, err := NewService(ServiceOptions{Secret: []byte("test-secret"), TTL: time.Hour})
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewService(ServiceOptions{Secret: []byte("other-secret"), TTL: time.Hour})
		require.NoError(t, err)
		signed, _, err := other.Issue(testIdentity())
		require.NoError(t, err)

		_, err = svc.Verify(signed)
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("expired token", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		issuer, err := NewService(ServiceOptions{
			Secret: []byte("test-secret"),
			TTL:    time.Hour,
			Now:    func() time.Time { return past },
		})
		require.NoError(t, err)
		signed, _, err := issuer.Issue(testIdentity())
		require.NoError(t, err)

		_, err = svc.Verify(signed)
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("wrong signing method", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"user_id": "11111111-1111-1111-1111-111111111111",
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Verify(raw)
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("token missing identity claims", func(t *testing.T) {
		bare := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		raw, err := bare.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Verify(raw)
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})
}
