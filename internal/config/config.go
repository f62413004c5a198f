package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	GinMode          string
	Database         DatabaseConfig
	JWT              JWTConfig
	ExportSigningKey string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	// Secret has no default. Token issuance refuses to sign with an
	// empty secret, so a misconfigured process cannot mint tokens.
	Secret string
}

func Load() (*Config, error) {
	godotenv.Load()

	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		ExportSigningKey: getEnv("EXPORT_SIGNING_KEY", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
