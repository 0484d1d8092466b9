package httpx

import (
	"context"

	domainauth "github.com/voiceforge/voiceforge/internal/domain/auth"
)

// identityKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type identityKey struct{}

// SetIdentityInContext returns a child context that carries the given identity.
// If identity is invalid, the original ctx is returned unchanged.
func SetIdentityInContext(ctx context.Context, identity domainauth.Identity) context.Context {
	if !identity.Valid() {
		return ctx
	}
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext returns the caller identity from context and a boolean
// indicating presence.
func GetIdentityFromContext(ctx context.Context) (domainauth.Identity, bool) {
	if identity, ok := ctx.Value(identityKey{}).(domainauth.Identity); ok && identity.Valid() {
		return identity, true
	}
	return domainauth.Identity{}, false
}
