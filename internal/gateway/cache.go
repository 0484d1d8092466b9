package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voiceforge/voiceforge/internal/core"
)

// claimsKeyPrefix namespaces cached claims in Redis. Tokens are never stored;
// only a digest of the token keys the entry.
const claimsKeyPrefix = "gw:claims:"

// CachingVerifierOptions groups settings for CachingVerifier.
type CachingVerifierOptions struct {
	Inner  core.TokenVerifier // Required: verifier consulted on cache miss
	Redis  *redis.Client      // Required: cache backend
	TTL    time.Duration      // Optional: max entry lifetime, defaults to 1m
	Logger *slog.Logger       // Optional: structured logger
}

// CachingVerifier caches successful validations in Redis so repeated requests
// with the same token skip the auth service round trip. Rejections are never
// cached, and entries expire no later than their token does.
type CachingVerifier struct {
	inner  core.TokenVerifier
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachingVerifier constructs a new CachingVerifier.
func NewCachingVerifier(opts CachingVerifierOptions) *CachingVerifier {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CachingVerifier{
		inner:  opts.Inner,
		redis:  opts.Redis,
		ttl:    ttl,
		logger: logger.With("component", "claims_cache"),
	}
}

// Validate returns cached claims when present, otherwise delegates to the
// inner verifier. Cache failures degrade to a plain validation; they never
// fail the request.
func (v *CachingVerifier) Validate(ctx context.Context, rawToken string) (*core.VerifiedClaims, error) {
	key := claimsKey(rawToken)

	cached, err := v.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var claims core.VerifiedClaims
		if unmarshalErr := json.Unmarshal(cached, &claims); unmarshalErr == nil &&
			claims.ExpiresAt > time.Now().Unix() {
			return &claims, nil
		}
	case !errors.Is(err, redis.Nil):
		v.logger.WarnContext(ctx, "claims cache read failed", "error", err)
	}

	claims, err := v.inner.Validate(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	v.store(ctx, key, claims)
	return claims, nil
}

// store writes claims to the cache, capping the TTL at the token expiry.
func (v *CachingVerifier) store(ctx context.Context, key string, claims *core.VerifiedClaims) {
	ttl := v.ttl
	if remaining := time.Until(time.Unix(claims.ExpiresAt, 0)); remaining < ttl {
		ttl = remaining
	}
	if ttl <= 0 {
		return
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return
	}
	if err := v.redis.Set(ctx, key, payload, ttl).Err(); err != nil {
		v.logger.WarnContext(ctx, "claims cache write failed", "error", err)
	}
}

// claimsKey derives the cache key from a token digest.
func claimsKey(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return claimsKeyPrefix + hex.EncodeToString(sum[:])
}

var _ core.TokenVerifier = (*CachingVerifier)(nil)
