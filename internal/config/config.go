package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	TablePrefix string
	CORSOrigins string
	// Generation backend (all drafting, scoring, and billing happens there)
	UpstreamURL string
	// Identity provider
	AuthBaseURL string
	AuthJWKSURL string // Constructed from AuthBaseURL + /auth/v1/.well-known/jwks.json
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	authBaseURL := getEnv("AUTH_BASE_URL", getEnv("UPSTREAM_URL", ""))

	// Construct the JWKS URL from the provider base URL unless overridden
	jwksURL := getEnv("AUTH_JWKS_URL", authBaseURL+"/auth/v1/.well-known/jwks.json")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		TablePrefix: getTablePrefix(env),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		UpstreamURL: getEnv("UPSTREAM_URL", ""),
		AuthBaseURL: authBaseURL,
		AuthJWKSURL: jwksURL,
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	// Auto-generate based on environment
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
