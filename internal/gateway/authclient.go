// Package gateway implements the public entry point of the voiceforge system:
// it validates bearer tokens against the auth service and forwards requests to
// the backing services with the caller identity injected as headers.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/voiceforge/voiceforge/internal/core"
	apperrors "github.com/voiceforge/voiceforge/internal/errors"
)

// AuthClientOptions groups settings for AuthClient.
type AuthClientOptions struct {
	BaseURL string        // Required: auth service base URL
	Timeout time.Duration // Optional: per-validation deadline, defaults to 5s
	Client  *http.Client  // Optional: HTTP client, defaults to http.DefaultClient
}

// AuthClient validates tokens by calling the auth service. The gateway never
// sees the signing secret; all trust decisions stay with the auth service.
type AuthClient struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewAuthClient constructs a new AuthClient.
func NewAuthClient(opts AuthClientOptions) (*AuthClient, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("auth service base URL is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	return &AuthClient{baseURL: opts.BaseURL, timeout: timeout, client: client}, nil
}

type validateRequest struct {
	Token string `json:"token"`
}

type validateResponse struct {
	Valid  bool                 `json:"valid"`
	Claims *core.VerifiedClaims `json:"claims"`
	Error  string               `json:"error"`
}

// Validate asks the auth service to verify a raw token. A rejected token
// yields an unauthorized error; an unreachable or broken auth service yields
// upstream_unavailable so callers can tell the two apart.
func (c *AuthClient) Validate(ctx context.Context, rawToken string) (*core.VerifiedClaims, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(validateRequest{Token: rawToken})
	if err != nil {
		return nil, fmt.Errorf("marshal validate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/validate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build validate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstreamUnavailable, "auth service unreachable")
	}
	defer resp.Body.Close()

	// 401 is the auth service rejecting the token; anything else non-200
	// means the auth service itself is broken.
	if resp.StatusCode == http.StatusUnauthorized {
		var out validateResponse
		msg := "invalid token"
		if decodeErr := json.NewDecoder(resp.Body).Decode(&out); decodeErr == nil && out.Error != "" {
			msg = out.Error
		}
		return nil, apperrors.Unauthorized(msg)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Wrapf(
			fmt.Errorf("unexpected status %d", resp.StatusCode),
			apperrors.ErrCodeUpstreamUnavailable,
			"auth service error",
		)
	}

	var out validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstreamUnavailable, "decode validate response")
	}

	if !out.Valid || out.Claims == nil {
		msg := out.Error
		if msg == "" {
			msg = "invalid token"
		}
		return nil, apperrors.Unauthorized(msg)
	}

	return out.Claims, nil
}

var _ core.TokenVerifier = (*AuthClient)(nil)
