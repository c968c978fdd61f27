package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-wide configuration. The passphrase is read once at
// startup and threaded explicitly into the key chain; it must never be logged
// or serialized.
type Server struct {
	Addr          string
	Passphrase    string
	DatabaseURL   string
	RedisURL      string
	KafkaBrokers  []string
	JWTSigningKey string
	TokenTTL      time.Duration
	AuthRequired  bool
}

// RecordCacheTTL bounds how long identity records may live in the read-through
// cache. Records are immutable once written, so the TTL exists only to bound
// memory on the cache side.
var RecordCacheTTL = 5 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("ANONID_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	passphrase := os.Getenv("ANONID_PASSPHRASE")
	if passphrase == "" {
		// Development default mirroring the demo deployments; override in production.
		passphrase = "anonid-demo-passphrase-2025"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Server{
		Addr:          addr,
		Passphrase:    passphrase,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		KafkaBrokers:  brokers,
		JWTSigningKey: jwtSigningKey,
		TokenTTL:      time.Hour,
		AuthRequired:  os.Getenv("AUTH_REQUIRED") == "true",
	}
}
