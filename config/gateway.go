package config

import "time"

// GatewayConfig contains routing configuration for the API gateway. Targets
// are single base addresses per route group; there is no load balancing or
// service discovery.
type GatewayConfig struct {
	// AuthServiceURL is the base URL of the auth service.
	AuthServiceURL string `env:"AUTH_SERVICE_URL" envDefault:"http://localhost:8081"`

	// JobServiceURL is the base URL of the clone-job service.
	JobServiceURL string `env:"JOB_SERVICE_URL" envDefault:"http://localhost:8082"`

	// ValidateTimeout bounds the gateway's token validation call so a hung
	// auth service surfaces as a gateway failure instead of a stuck client.
	ValidateTimeout time.Duration `env:"GATEWAY_VALIDATE_TIMEOUT" envDefault:"5s"`

	// ForwardTimeout bounds each proxied request to a backend service.
	ForwardTimeout time.Duration `env:"GATEWAY_FORWARD_TIMEOUT" envDefault:"30s"`

	// Cache configures the optional Redis claims cache.
	Cache CacheConfig
}

// Sanitize applies guardrails to gateway configuration values.
func (g *GatewayConfig) Sanitize() {
	if g.ValidateTimeout <= 0 {
		g.ValidateTimeout = 5 * time.Second
	}
	if g.ForwardTimeout <= 0 {
		g.ForwardTimeout = 30 * time.Second
	}
}
