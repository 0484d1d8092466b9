package config

import "time"

// AuthConfig contains token signing and password hashing configuration.
// The signing secret is injected here once at startup and held only by the
// auth service; the gateway and job service never see it.
type AuthConfig struct {
	// TokenSecret is the HMAC secret used to sign and verify bearer tokens.
	TokenSecret string `env:"TOKEN_SECRET" envDefault:"dev-secret-change-me"`

	// TokenTTL is the validity window of issued tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.TokenTTL <= 0 {
		a.TokenTTL = 24 * time.Hour
	}
	if a.BcryptCost < minBcryptCost {
		a.BcryptCost = minBcryptCost
	}
	if a.BcryptCost > maxBcryptCost {
		a.BcryptCost = maxBcryptCost
	}
}
