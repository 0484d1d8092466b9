package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/voiceforge/voiceforge/internal/errors"
)

func TestRegisterRequest_Validate(t *testing.T) {
	base := RegisterRequest{Email: "alice@example.com", Username: "alice", Password: "correct-horse"}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
		field  string
	}{
		{"missing email", func(r *RegisterRequest) { r.Email = "" }, "email"},
		{"malformed email", func(r *RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"username too short", func(r *RegisterRequest) { r.Username = "ab" }, "username"},
		{"username too long", func(r *RegisterRequest) { r.Username = strings.Repeat("a", 21) }, "username"},
		{"password too short", func(r *RegisterRequest) { r.Password = "short" }, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.field, apperrors.GetField(err))
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	require.NoError(t, (&LoginRequest{Email: "alice@example.com", Password: "x"}).Validate())

	err := (&LoginRequest{Email: "alice@example.com"}).Validate()
	require.Error(t, err)
	assert.Equal(t, "password", apperrors.GetField(err))

	err = (&LoginRequest{Password: "x"}).Validate()
	require.Error(t, err)
	assert.Equal(t, "email", apperrors.GetField(err))
}

func TestUser_JSONNeverExposesPasswordHash(t *testing.T) {
	raw, err := json.Marshal(User{ID: "u1", Email: "alice@example.com", PasswordHash: "$2a$10$secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "password")
}
