// internal/config/config.go
// Centralized configuration management
// Loads from environment variables with sensible defaults, optionally
// overlaid on a TOML file named by CONFIG_FILE

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string `toml:"port"`
	Environment string `toml:"environment"`
	BaseURL     string `toml:"base_url"`

	// Storage backend for sessions, stats and analysis history
	StorageDriver string `toml:"storage_driver"` // "memory", "sqlite", "postgres" or "redis"
	SQLitePath    string `toml:"sqlite_path"`
	DatabaseURL   string `toml:"database_url"`
	RedisURL      string `toml:"redis_url"`

	// Security
	JWTSecret    string        `toml:"jwt_secret"`
	AuthRequired bool          `toml:"auth_required"`
	TokenExpiry  time.Duration `toml:"token_expiry"`

	// Remote analysis backend
	RemoteAnalysisURL string        `toml:"remote_analysis_url"`
	RemoteTimeout     time.Duration `toml:"remote_timeout"`
	ReprobeInterval   time.Duration `toml:"reprobe_interval"`
	FailureThreshold  int           `toml:"failure_threshold"`

	// Generative model
	GeminiAPIKey string `toml:"gemini_api_key"`
	GeminiModel  string `toml:"gemini_model"`

	// Analytics
	StatsWindow  int   `toml:"stats_window"`
	HistoryLimit int   `toml:"history_limit"`
	RandomSeed   int64 `toml:"random_seed"` // 0 means seeded from the clock

	// Chat export
	UseS3     bool   `toml:"use_s3"`
	ExportDir string `toml:"export_dir"`
	AWSRegion string `toml:"aws_region"`
	S3Bucket  string `toml:"s3_bucket"`
}

// Load reads configuration from environment variables
func Load() *Config {
	cfg := defaults()

	// TOML first so the environment can override individual keys
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadFile(path, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "config: ignoring %s: %v\n", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.BaseURL == "" {
		if cfg.IsProduction() {
			cfg.BaseURL = "https://api.kiekky.com"
		} else {
			cfg.BaseURL = fmt.Sprintf("http://localhost:%s", cfg.Port)
		}
	}

	return cfg
}

func defaults() *Config {
	return &Config{
		Port:          "8080",
		Environment:   "development",
		StorageDriver: "sqlite",
		SQLitePath:    "./data/insights.db",
		JWTSecret:     "your-super-secret-key-change-this-in-production",
		TokenExpiry:   24 * time.Hour,
		RemoteTimeout: 10 * time.Second,
		GeminiModel:   "gemini-1.5-flash",
		StatsWindow:   50,
		HistoryLimit:  100,
		ExportDir:     "./exports",
		AWSRegion:     "us-east-1",
	}
}

func applyEnv(cfg *Config) {
	// Server
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.BaseURL = getEnv("BASE_URL", cfg.BaseURL)

	// Storage
	cfg.StorageDriver = getEnv("STORAGE_DRIVER", cfg.StorageDriver)
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)

	// Security
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.AuthRequired = getEnvBool("AUTH_REQUIRED", cfg.AuthRequired)
	cfg.TokenExpiry = getEnvDuration("TOKEN_EXPIRY", cfg.TokenExpiry)

	// Remote analysis
	cfg.RemoteAnalysisURL = getEnv("REMOTE_ANALYSIS_URL", cfg.RemoteAnalysisURL)
	cfg.RemoteTimeout = getEnvDuration("REMOTE_TIMEOUT", cfg.RemoteTimeout)
	cfg.ReprobeInterval = getEnvDuration("REPROBE_INTERVAL", cfg.ReprobeInterval)
	cfg.FailureThreshold = getEnvInt("FAILURE_THRESHOLD", cfg.FailureThreshold)

	// Generative model
	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.GeminiModel = getEnv("GEMINI_MODEL", cfg.GeminiModel)

	// Analytics
	cfg.StatsWindow = getEnvInt("STATS_WINDOW", cfg.StatsWindow)
	cfg.HistoryLimit = getEnvInt("HISTORY_LIMIT", cfg.HistoryLimit)
	cfg.RandomSeed = int64(getEnvInt("RANDOM_SEED", int(cfg.RandomSeed)))

	// Export
	cfg.UseS3 = getEnvBool("USE_S3", cfg.UseS3)
	cfg.ExportDir = getEnv("EXPORT_DIR", cfg.ExportDir)
	cfg.AWSRegion = getEnv("AWS_REGION", cfg.AWSRegion)
	cfg.S3Bucket = getEnv("S3_BUCKET_NAME", cfg.S3Bucket)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWTSecret == "your-super-secret-key-change-this-in-production" && c.IsProduction() {
		return fmt.Errorf("JWT secret must be changed for production")
	}

	switch c.StorageDriver {
	case "memory":
		if c.IsProduction() {
			return fmt.Errorf("memory storage cannot be used in production")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("database URL is required for postgres storage")
		}
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("redis URL is required for redis storage")
		}
	default:
		return fmt.Errorf("invalid storage driver: %s", c.StorageDriver)
	}

	if c.StatsWindow < 1 {
		return fmt.Errorf("stats window must be positive")
	}

	if c.HistoryLimit < 1 {
		return fmt.Errorf("history limit must be positive")
	}

	if c.RemoteTimeout <= 0 {
		return fmt.Errorf("remote timeout must be positive")
	}

	if c.FailureThreshold < 0 || c.ReprobeInterval < 0 {
		return fmt.Errorf("fallback policy values cannot be negative")
	}

	if c.UseS3 && c.S3Bucket == "" {
		return fmt.Errorf("S3 configuration incomplete")
	}

	if !c.UseS3 && c.ExportDir == "" {
		return fmt.Errorf("export directory not specified")
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Helper functions

// getEnv gets a string value from environment with a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment with a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration value from environment with a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean value from environment with a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
