// Package model defines the core data types shared by the voiceforge services.
package model

import "time"

// User represents a registered account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Email        string    `json:"email"      db:"email"`
	Username     string    `json:"username"   db:"username"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterRequest carries the inputs for account registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest carries the inputs for a login attempt.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned after a successful registration or login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

const (
	minUsernameLen = 3
	maxUsernameLen = 20
	minPasswordLen = 8
)

// Validate validates the RegisterRequest fields.
func (r *RegisterRequest) Validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if l := len(r.Username); l < minUsernameLen || l > maxUsernameLen {
		return errValidation("username", "username must be between 3 and 20 characters")
	}
	if len(r.Password) < minPasswordLen {
		return errValidation("password", "password must be at least 8 characters")
	}
	return nil
}

// Validate validates the LoginRequest fields.
func (r *LoginRequest) Validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return errValidation("password", "password is required")
	}
	return nil
}
