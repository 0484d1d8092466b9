package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"voiceforge"`
	Password string `env:"PASSWORD" envDefault:"voiceforge"`
	Name     string `env:"NAME"     envDefault:"voiceforge"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the service automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// CacheConfig contains the optional Redis-backed claims cache used by the
// gateway. When Addr is empty the cache is disabled and every request hits
// the auth service directly.
type CacheConfig struct {
	Addr     string        `env:"GATEWAY_CACHE_REDIS_ADDR" envDefault:""`
	Password string        `env:"GATEWAY_CACHE_REDIS_PASSWORD" envDefault:""`
	DB       int           `env:"GATEWAY_CACHE_REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"GATEWAY_CACHE_TTL" envDefault:"1m"`
}
