package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration for the LENS synthesis service.
type Config struct {
	ListenAddr          string
	StaticDataPath      string
	HeuristicsPath      string
	DefaultProject      string
	SimilarityThreshold float64
}

// FromEnv creates a configuration instance sourced from environment variables.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:     getEnv("LENS_LISTEN_ADDR", ":8080"),
		StaticDataPath: getEnv("LENS_STATIC_DATA", "data/sample_artifacts.json"),
		HeuristicsPath: getEnv("LENS_HEURISTICS", ""),
		DefaultProject: getEnv("LENS_DEFAULT_PROJECT", ""),
	}

	if threshold := os.Getenv("LENS_SIMILARITY_THRESHOLD"); threshold != "" {
		if _, err := fmt.Sscanf(threshold, "%f", &cfg.SimilarityThreshold); err != nil {
			return Config{}, fmt.Errorf("parse LENS_SIMILARITY_THRESHOLD: %w", err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
