package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://localhost:*" {
			t.Errorf("Server.AllowedOrigins = %v, want [http://localhost:*]", cfg.Server.AllowedOrigins)
		}
		if cfg.OpenFoodFacts.BaseURL != "https://world.openfoodfacts.org/api/v0" {
			t.Errorf("OpenFoodFacts.BaseURL = %s, want https://world.openfoodfacts.org/api/v0", cfg.OpenFoodFacts.BaseURL)
		}
		if cfg.OpenFoodFacts.Timeout != 10*time.Second {
			t.Errorf("OpenFoodFacts.Timeout = %v, want 10s", cfg.OpenFoodFacts.Timeout)
		}
		if cfg.OpenFoodFacts.RequestsPerMinute != 100 {
			t.Errorf("OpenFoodFacts.RequestsPerMinute = %d, want 100", cfg.OpenFoodFacts.RequestsPerMinute)
		}
		if cfg.RateLimit.PerIP != 120 {
			t.Errorf("RateLimit.PerIP = %d, want 120", cfg.RateLimit.PerIP)
		}
		if cfg.RateLimit.Burst != 20 {
			t.Errorf("RateLimit.Burst = %d, want 20", cfg.RateLimit.Burst)
		}
		if cfg.Scoring.DefaultSensitivity != 3 {
			t.Errorf("Scoring.DefaultSensitivity = %d, want 3", cfg.Scoring.DefaultSensitivity)
		}
		if cfg.Recommend.MaxResults != 5 {
			t.Errorf("Recommend.MaxResults = %d, want 5", cfg.Recommend.MaxResults)
		}
		if cfg.Recommend.MinConfidence != 0.4 {
			t.Errorf("Recommend.MinConfidence = %v, want 0.4", cfg.Recommend.MinConfidence)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Log.Level = %s, want info", cfg.Log.Level)
		}
		if cfg.Catalog.SeedPath != "" {
			t.Errorf("Catalog.SeedPath = %s, want empty", cfg.Catalog.SeedPath)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		t.Setenv("SAFESCAN_SERVER_PORT", "9090")
		t.Setenv("SAFESCAN_SERVER_ENVIRONMENT", "production")
		t.Setenv("SAFESCAN_OPENFOODFACTS_BASE_URL", "https://custom.api.com")
		t.Setenv("SAFESCAN_OPENFOODFACTS_TIMEOUT", "3s")
		t.Setenv("SAFESCAN_CATALOG_SEED_PATH", "/data/catalog.yaml")
		t.Setenv("SAFESCAN_RATELIMIT_PER_IP", "200")
		t.Setenv("SAFESCAN_SCORING_DEFAULT_SENSITIVITY", "1")
		t.Setenv("SAFESCAN_RECOMMEND_MAX_RESULTS", "3")
		t.Setenv("SAFESCAN_LOG_LEVEL", "debug")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.OpenFoodFacts.BaseURL != "https://custom.api.com" {
			t.Errorf("OpenFoodFacts.BaseURL = %s, want https://custom.api.com", cfg.OpenFoodFacts.BaseURL)
		}
		if cfg.OpenFoodFacts.Timeout != 3*time.Second {
			t.Errorf("OpenFoodFacts.Timeout = %v, want 3s", cfg.OpenFoodFacts.Timeout)
		}
		if cfg.Catalog.SeedPath != "/data/catalog.yaml" {
			t.Errorf("Catalog.SeedPath = %s, want /data/catalog.yaml", cfg.Catalog.SeedPath)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.Scoring.DefaultSensitivity != 1 {
			t.Errorf("Scoring.DefaultSensitivity = %d, want 1", cfg.Scoring.DefaultSensitivity)
		}
		if cfg.Recommend.MaxResults != 3 {
			t.Errorf("Recommend.MaxResults = %d, want 3", cfg.Recommend.MaxResults)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
		}
	})

	t.Run("fails validation for unknown environment", func(t *testing.T) {
		t.Setenv("SAFESCAN_SERVER_ENVIRONMENT", "moon")

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for unknown environment")
		}
		if err.Error() != "invalid configuration: unknown environment: moon" {
			t.Errorf("Load() error = %v", err)
		}
	})

	t.Run("fails validation for sensitivity out of range", func(t *testing.T) {
		t.Setenv("SAFESCAN_SCORING_DEFAULT_SENSITIVITY", "7")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for sensitivity 7")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)
		os.Chdir(t.TempDir())

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables and skips comments", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)
		os.Chdir(t.TempDir())

		envContent := `
# Comment line
SAFESCAN_TEST_VAR_1=value1

# Another comment
SAFESCAN_TEST_VAR_2=value2
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		defer os.Unsetenv("SAFESCAN_TEST_VAR_1")
		defer os.Unsetenv("SAFESCAN_TEST_VAR_2")

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("SAFESCAN_TEST_VAR_1") != "value1" {
			t.Errorf("SAFESCAN_TEST_VAR_1 = %s, want value1", os.Getenv("SAFESCAN_TEST_VAR_1"))
		}
		if os.Getenv("SAFESCAN_TEST_VAR_2") != "value2" {
			t.Errorf("SAFESCAN_TEST_VAR_2 = %s, want value2", os.Getenv("SAFESCAN_TEST_VAR_2"))
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)
		os.Chdir(t.TempDir())

		if err := os.WriteFile(".env", []byte("SAFESCAN_EXISTING=from-file\n"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		t.Setenv("SAFESCAN_EXISTING", "from-env")

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}
		if got := os.Getenv("SAFESCAN_EXISTING"); got != "from-env" {
			t.Errorf("SAFESCAN_EXISTING = %s, want from-env", got)
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:        ServerConfig{Port: "8080", Environment: "development"},
			OpenFoodFacts: OpenFoodFactsConfig{BaseURL: "https://world.openfoodfacts.org/api/v0"},
			RateLimit:     RateLimitConfig{PerIP: 120, Burst: 20},
			Scoring:       ScoringConfig{DefaultSensitivity: 3},
			Recommend:     RecommendConfig{MaxResults: 5, MinConfidence: 0.4},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"validates successfully with all required fields", func(*Config) {}, ""},
		{"fails when base URL is empty", func(c *Config) { c.OpenFoodFacts.BaseURL = "" }, "base URL is required"},
		{"fails for sensitivity zero", func(c *Config) { c.Scoring.DefaultSensitivity = 0 }, "default sensitivity"},
		{"fails for zero max results", func(c *Config) { c.Recommend.MaxResults = 0 }, "max results"},
		{"fails for zero confidence", func(c *Config) { c.Recommend.MinConfidence = 0 }, "min confidence"},
		{"fails for negative confidence", func(c *Config) { c.Recommend.MinConfidence = -0.1 }, "min confidence"},
		{"fails for confidence above one", func(c *Config) { c.Recommend.MinConfidence = 1.5 }, "min confidence"},
		{"fails for zero per-IP limit", func(c *Config) { c.RateLimit.PerIP = 0 }, "per-IP rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
