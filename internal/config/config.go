package config

import (
	"log"
	"os"
	"time"
)

const (
	defaultAddr      = ":8080"
	defaultDSN       = "dealercrm.db"
	defaultJWTSecret = "change-me-jwt-secret"
	defaultJWTTTL    = "24h"
)

type Config struct {
	Addr      string
	DSN       string
	JWTSecret string
	JWTTTL    time.Duration
	GinMode   string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from the environment, falling back to local
// development defaults.
func Load() Config {
	ttlRaw := getenv("JWT_TTL", defaultJWTTTL)
	ttl, err := time.ParseDuration(ttlRaw)
	if err != nil {
		log.Printf("config: invalid JWT_TTL %q, using %s", ttlRaw, defaultJWTTTL)
		ttl, _ = time.ParseDuration(defaultJWTTTL)
	}

	cfg := Config{
		Addr:      getenv("ADDR", defaultAddr),
		DSN:       getenv("DATABASE_URL", defaultDSN),
		JWTSecret: getenv("JWT_SECRET", defaultJWTSecret),
		JWTTTL:    ttl,
		GinMode:   getenv("GIN_MODE", ""),
	}

	if cfg.JWTSecret == defaultJWTSecret {
		log.Println("config: JWT_SECRET not set, using insecure default")
	}

	return cfg
}
