package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/voiceforge/voiceforge/internal/core"
	apperrors "github.com/voiceforge/voiceforge/internal/errors"
	httpx "github.com/voiceforge/voiceforge/internal/http"
)

// identityHeaders are stripped from every inbound request before forwarding.
// Only the gateway may set them, and only after validating a token.
var identityHeaders = []string{
	httpx.HeaderUserID,
	httpx.HeaderUserEmail,
	httpx.HeaderUsername,
}

// Options groups settings for Gateway.
type Options struct {
	AuthServiceURL string             // Required: auth service base URL
	JobServiceURL  string             // Required: job service base URL
	Verifier       core.TokenVerifier // Required: token verifier for protected routes
	ForwardTimeout time.Duration      // Optional: per-forward deadline, defaults to 30s
	Logger         *slog.Logger       // Optional: structured logger
}

// Gateway is the reverse proxy in front of the voiceforge services. It owns
// the forwarding table, validates bearer tokens on protected routes, and
// injects the verified identity as headers the services trust.
type Gateway struct {
	verifier       core.TokenVerifier
	forwardTimeout time.Duration
	logger         *slog.Logger
	handler        http.Handler
}

// New constructs a Gateway, resolving the forwarding table against the
// configured service URLs. Misconfigured URLs fail here, not at request time.
func New(opts Options) (*Gateway, error) {
	if opts.Verifier == nil {
		return nil, errors.New("token verifier is required")
	}

	targets, err := resolveTargets(opts)
	if err != nil {
		return nil, err
	}

	forwardTimeout := opts.ForwardTimeout
	if forwardTimeout <= 0 {
		forwardTimeout = 30 * time.Second
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := &Gateway{
		verifier:       opts.Verifier,
		forwardTimeout: forwardTimeout,
		logger:         logger.With("component", "gateway"),
	}

	mux := http.NewServeMux()
	for _, route := range defaultRoutes() {
		target, ok := targets[route.Target]
		if !ok {
			return nil, fmt.Errorf("route %s references unknown target %q", route.Pattern, route.Target)
		}

		var h http.Handler = http.StripPrefix(route.StripPrefix, g.proxyFor(target))
		if !route.Public {
			h = g.requireToken(h)
		}
		// Scrubbing runs before token validation so injected identity
		// headers survive and client-supplied ones never do.
		h = g.scrubIdentityHeaders(h)
		mux.Handle(route.Pattern, h)
	}
	mux.Handle("GET /health", httpx.HealthHandler("gateway"))
	mux.Handle("HEAD /health", httpx.HealthHandler("gateway"))

	g.handler = httpx.Recover(logger)(httpx.Logging(logger)(mux))
	return g, nil
}

// Handler returns the gateway's root HTTP handler.
func (g *Gateway) Handler() http.Handler {
	return g.handler
}

func resolveTargets(opts Options) (map[targetService]*url.URL, error) {
	authURL, err := parseTarget(opts.AuthServiceURL, "auth service")
	if err != nil {
		return nil, err
	}
	jobURL, err := parseTarget(opts.JobServiceURL, "job service")
	if err != nil {
		return nil, err
	}
	return map[targetService]*url.URL{
		targetAuth: authURL,
		targetJobs: jobURL,
	}, nil
}

func parseTarget(raw, name string) (*url.URL, error) {
	if raw == "" {
		return nil, fmt.Errorf("%s URL is required", name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s URL: %w", name, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s URL %q must be absolute", name, raw)
	}
	return u, nil
}

// proxyFor builds the reverse proxy for a single backend. Forward failures
// surface as 502 so clients can tell a dead backend from a backend error, and
// every forward carries the gateway's deadline.
func (g *Gateway) proxyFor(target *url.URL) http.Handler {
	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			if errors.Is(err, context.DeadlineExceeded) {
				g.logger.ErrorContext(r.Context(), "forward timed out",
					"target", target.Host, "path", r.URL.Path)
				httpx.RenderError(w, apperrors.Wrap(err, apperrors.ErrCodeTimeout, "upstream timed out"))
				return
			}
			g.logger.ErrorContext(r.Context(), "forward failed",
				"target", target.Host, "path", r.URL.Path, "error", err)
			httpx.RenderError(w, apperrors.UpstreamUnavailable("service unavailable"))
		},
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), g.forwardTimeout)
		defer cancel()
		proxy.ServeHTTP(w, r.WithContext(ctx))
	})
}

// scrubIdentityHeaders removes client-supplied identity headers so a caller
// can never impersonate another user by setting them directly.
func (g *Gateway) scrubIdentityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, h := range identityHeaders {
			r.Header.Del(h)
		}
		next.ServeHTTP(w, r)
	})
}

// requireToken validates the bearer token and injects the verified identity
// headers. The request never reaches the backend without a valid token.
func (g *Gateway) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := httpx.BearerToken(r)
		if raw == "" {
			httpx.RenderError(w, apperrors.Unauthorized("missing bearer token"))
			return
		}

		claims, err := g.verifier.Validate(r.Context(), raw)
		if err != nil {
			if apperrors.IsUnauthorized(err) {
				httpx.RenderError(w, err)
				return
			}
			g.logger.ErrorContext(r.Context(), "token validation failed", "error", err)
			httpx.RenderError(w, apperrors.UpstreamUnavailable("auth service unavailable"))
			return
		}

		r.Header.Set(httpx.HeaderUserID, claims.UserID)
		r.Header.Set(httpx.HeaderUserEmail, claims.Email)
		r.Header.Set(httpx.HeaderUsername, claims.Username)
		next.ServeHTTP(w, r)
	})
}
