package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	OpenFoodFacts OpenFoodFactsConfig `mapstructure:"openfoodfacts"`
	Catalog       CatalogConfig       `mapstructure:"catalog"`
	RateLimit     RateLimitConfig     `mapstructure:"ratelimit"`
	Scoring       ScoringConfig       `mapstructure:"scoring"`
	Recommend     RecommendConfig     `mapstructure:"recommend"`
	Log           LogConfig           `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenFoodFactsConfig holds Open Food Facts API configuration
type OpenFoodFactsConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	UserAgent         string        `mapstructure:"user_agent"`
}

// CatalogConfig points at the YAML seed of comparable products
type CatalogConfig struct {
	SeedPath string `mapstructure:"seed_path"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// ScoringConfig holds scoring engine configuration
type ScoringConfig struct {
	DefaultSensitivity int `mapstructure:"default_sensitivity"`
}

// RecommendConfig holds alternative recommender configuration
type RecommendConfig struct {
	MaxResults    int     `mapstructure:"max_results"`
	MinConfidence float64 `mapstructure:"min_confidence"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

var validEnvironments = map[string]bool{
	"development": true,
	"test":        true,
	"staging":     true,
	"production":  true,
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/safescan/")

	// Environment variable settings: SAFESCAN_SERVER_PORT -> server.port
	v.SetEnvPrefix("SAFESCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads KEY=VALUE pairs from .env in the working directory.
// A missing file is not an error and existing variables are never overridden.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Open Food Facts defaults
	v.SetDefault("openfoodfacts.base_url", "https://world.openfoodfacts.org/api/v0")
	v.SetDefault("openfoodfacts.timeout", "10s")
	v.SetDefault("openfoodfacts.requests_per_minute", 100)
	v.SetDefault("openfoodfacts.user_agent", "SafeScan/1.0")

	// Catalog defaults
	v.SetDefault("catalog.seed_path", "")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.burst", 20)

	// Engine defaults
	v.SetDefault("scoring.default_sensitivity", 3)
	v.SetDefault("recommend.max_results", 5)
	v.SetDefault("recommend.min_confidence", 0.4)

	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if !validEnvironments[config.Server.Environment] {
		return fmt.Errorf("unknown environment: %s", config.Server.Environment)
	}

	if config.OpenFoodFacts.BaseURL == "" {
		return fmt.Errorf("Open Food Facts base URL is required (set SAFESCAN_OPENFOODFACTS_BASE_URL)")
	}

	if s := config.Scoring.DefaultSensitivity; s < 1 || s > 5 {
		return fmt.Errorf("default sensitivity must be between 1 and 5, got: %d", s)
	}

	if config.Recommend.MaxResults < 1 {
		return fmt.Errorf("recommend max results must be at least 1, got: %d", config.Recommend.MaxResults)
	}

	if c := config.Recommend.MinConfidence; c <= 0 || c > 1 {
		return fmt.Errorf("recommend min confidence must be greater than 0 and at most 1, got: %v", c)
	}

	if config.RateLimit.PerIP < 1 {
		return fmt.Errorf("per-IP rate limit must be at least 1, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
