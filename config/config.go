package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Token signing and password hashing configuration
//   - database.go: Database and cache configuration
//   - http.go: HTTP server configuration
//   - gateway.go: Gateway routing configuration
//   - worker.go: Clone worker and reaper configuration
type AppConfig struct {
	// HTTP server configuration
	HTTP HTTPConfig

	// Authentication configuration
	Auth AuthConfig

	// Database configuration
	Postgres DBConfig `envPrefix:"DB_"`

	// Gateway configuration
	Gateway GatewayConfig

	// Clone worker configuration
	Worker WorkerConfig

	// Reaper configuration
	Reaper ReaperConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.Gateway.Sanitize()
	c.Worker.Sanitize()
	c.Reaper.Sanitize()
}
