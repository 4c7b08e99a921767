package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration
type Config struct {
	Port      string // Service port
	KratosURL string // Kratos internal URL (Frontend API - port 4433)

	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseSSLMode  string

	CacheTTL           time.Duration // Catalog/content cache TTL
	StoreIdleTTL       time.Duration // Idle eviction for per-credential auth stores
	SessionWait        time.Duration // How long a request waits on a store still initializing
	RevalidateInterval time.Duration // Session watch revalidation interval

	TokenSecret   string        // Secret for signing API JWT tokens
	TokenIssuer   string        // JWT issuer claim
	TokenAudience string        // JWT audience claim
	TokenTTL      time.Duration // JWT token TTL

	ReadRate      float64 // Requests per second for the read surface, per IP
	ReadBurst     int
	SimulateRate  float64 // Requests per second for the simulator, per IP
	SimulateBurst int

	AllowedOrigin string // Browser origin allowed to open the session stream
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	config := &Config{
		Port:      getEnv("PORT", "8080"),
		KratosURL: getEnv("KRATOS_URL", "http://kratos:4433"),

		DatabaseHost:     getEnv("DB_HOST", "db"),
		DatabasePort:     getEnv("DB_PORT", "5432"),
		DatabaseUser:     getEnv("DB_USER", "rent_hub"),
		DatabasePassword: getEnv("DB_PASSWORD", ""),
		DatabaseName:     getEnv("DB_NAME", "rent_hub"),
		DatabaseSSLMode:  getEnv("DB_SSL_MODE", "prefer"),

		CacheTTL:           5 * time.Minute,
		StoreIdleTTL:       10 * time.Minute,
		SessionWait:        3 * time.Second,
		RevalidateInterval: 30 * time.Second,

		TokenSecret:   getEnv("TOKEN_SECRET", ""),
		TokenIssuer:   getEnv("TOKEN_ISSUER", "rent-hub"),
		TokenAudience: getEnv("TOKEN_AUDIENCE", "rent-backend"),
		TokenTTL:      5 * time.Minute,

		ReadRate:      20,
		ReadBurst:     40,
		SimulateRate:  2,
		SimulateBurst: 5,

		AllowedOrigin: getEnv("ALLOWED_ORIGIN", ""),
	}

	durations := []struct {
		env string
		dst *time.Duration
	}{
		{"CACHE_TTL", &config.CacheTTL},
		{"STORE_IDLE_TTL", &config.StoreIdleTTL},
		{"SESSION_WAIT", &config.SessionWait},
		{"REVALIDATE_INTERVAL", &config.RevalidateInterval},
		{"TOKEN_TTL", &config.TokenTTL},
	}
	for _, d := range durations {
		if s := os.Getenv(d.env); s != "" {
			duration, err := time.ParseDuration(s)
			if err != nil {
				return nil, fmt.Errorf("invalid %s format: %w", d.env, err)
			}
			*d.dst = duration
		}
	}

	if s := os.Getenv("READ_RATE"); s != "" {
		rate, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid READ_RATE format: %w", err)
		}
		config.ReadRate = rate
	}
	if s := os.Getenv("SIMULATE_RATE"); s != "" {
		rate, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SIMULATE_RATE format: %w", err)
		}
		config.SimulateRate = rate
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.KratosURL == "" {
		return fmt.Errorf("KRATOS_URL cannot be empty")
	}

	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	if c.StoreIdleTTL <= 0 {
		return fmt.Errorf("STORE_IDLE_TTL must be positive")
	}

	if c.RevalidateInterval <= 0 {
		return fmt.Errorf("REVALIDATE_INTERVAL must be positive")
	}

	return nil
}

// DSN builds the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
