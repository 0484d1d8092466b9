package config

// HTTPConfig contains HTTP server configuration for each service binary.
// Each service reads only its own address; they are grouped here so a
// docker-compose style environment can configure all three in one place.
type HTTPConfig struct {
	// GatewayAddr is the address the gateway binds to.
	GatewayAddr string `env:"GATEWAY_ADDR" envDefault:":8080"`

	// AuthAddr is the address the auth service binds to.
	AuthAddr string `env:"AUTH_ADDR" envDefault:":8081"`

	// JobsAddr is the address the clone-job service binds to.
	JobsAddr string `env:"JOBS_ADDR" envDefault:":8082"`
}
