package config

import (
	"os"
	"strings"
)

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Postgres PostgresConfig
}

type ServerConfig struct {
	Port           string
	APIPrefix      string
	AllowedOrigins []string
	GinMode        string
}

// AuthConfig keeps raw env values; durations are parsed by the services
// that consume them so a bad value surfaces as a startup error.
type AuthConfig struct {
	JWTSecret     string
	JWTTTL        string
	SweepInterval string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

const DefaultAPIPrefix = "/expense/backend/api/v1"

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getenv("PORT", "8080"),
			APIPrefix:      getenv("API_PREFIX", DefaultAPIPrefix),
			AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
			GinMode:        os.Getenv("GIN_MODE"),
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			JWTTTL:        getenv("JWT_TTL", "24h"),
			SweepInterval: getenv("BLACKLIST_SWEEP_INTERVAL", "1h"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
