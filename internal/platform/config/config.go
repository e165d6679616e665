package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr            string
	PostgresDSN     string
	RedisURL        string
	CatalogCacheTTL time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
// PostgresDSN empty means in-memory stores; RedisURL empty disables the
// catalog cache.
func FromEnv() Server {
	addr := os.Getenv("VIGIA_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	ttl := 5 * time.Minute
	if raw := os.Getenv("VIGIA_CATALOG_CACHE_TTL"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	return Server{
		Addr:            addr,
		PostgresDSN:     os.Getenv("VIGIA_POSTGRES_DSN"),
		RedisURL:        os.Getenv("VIGIA_REDIS_URL"),
		CatalogCacheTTL: ttl,
	}
}
