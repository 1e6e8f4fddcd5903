package config

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	Port            string
	Env             string
	DatabaseDSN     string
	JWTSecret       string
	JWTExpiry       time.Duration
	GeminiAPIKey    string
	TextModel       string
	ImageModel      string
	ProviderTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/flashchat?parseTime=true"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:       72 * time.Hour,
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		TextModel:       getEnv("GEMINI_TEXT_MODEL", "gemini-2.0-flash"),
		ImageModel:      getEnv("GEMINI_IMAGE_MODEL", "gemini-2.0-flash-preview-image-generation"),
		ProviderTimeout: getDuration("PROVIDER_TIMEOUT", 60*time.Second),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using fallback", "key", key, "value", v)
		return fallback
	}
	return d
}
