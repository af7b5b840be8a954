package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	StorageDriver string

	JWTSecret string
	JWTIssuer string
	RateLimit string // ulule/limiter format, e.g. "100-M"

	BalanceCacheSize int
	BalanceCacheTTL  time.Duration

	// Payment collaborator
	PaymentExpiry              time.Duration
	PaymentPollInterval        time.Duration
	PaymentGatewayURL          string `mapstructure:"PAYMENT_GATEWAY_URL"`
	PaymentGatewayTokenURL     string `mapstructure:"PAYMENT_GATEWAY_TOKEN_URL"`
	PaymentGatewayClientID     string `mapstructure:"PAYMENT_GATEWAY_CLIENT_ID"`
	PaymentGatewayClientSecret string `mapstructure:"PAYMENT_GATEWAY_CLIENT_SECRET"`
	PaymentServiceKeyHash      string `mapstructure:"PAYMENT_SERVICE_KEY_HASH"` // bcrypt hash of the x-api-key

	PosthogAPIKey   string `mapstructure:"POSTHOG_API_KEY"`
	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`
	MaxUploadBytes  int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORAGE_DRIVER", StoragePostgres)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "print-quota-service")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("BALANCE_CACHE_SIZE", 10000)
	viper.SetDefault("BALANCE_CACHE_TTL", "30s")
	viper.SetDefault("PAYMENT_EXPIRY", "15m")
	viper.SetDefault("PAYMENT_POLL_INTERVAL", "10s")
	viper.SetDefault("PAYMENT_GATEWAY_URL", "")
	viper.SetDefault("PAYMENT_GATEWAY_TOKEN_URL", "")
	viper.SetDefault("PAYMENT_GATEWAY_CLIENT_ID", "")
	viper.SetDefault("PAYMENT_GATEWAY_CLIENT_SECRET", "")
	viper.SetDefault("PAYMENT_SERVICE_KEY_HASH", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("MAX_UPLOAD_BYTES", 50<<20)

	// Actual environment variables override .env values and defaults.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.StorageDriver = viper.GetString("STORAGE_DRIVER")
	switch cfg.StorageDriver {
	case StoragePostgres, StorageMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q: must be %q or %q", cfg.StorageDriver, StoragePostgres, StorageMemory)
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" && cfg.StorageDriver == StoragePostgres {
		return nil, fmt.Errorf("PGSQL_URL must be set when STORAGE_DRIVER is %q", StoragePostgres)
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.BalanceCacheSize = viper.GetInt("BALANCE_CACHE_SIZE")
	cfg.BalanceCacheTTL = durationOrDefault("BALANCE_CACHE_TTL", 30*time.Second)
	cfg.PaymentExpiry = durationOrDefault("PAYMENT_EXPIRY", 15*time.Minute)
	cfg.PaymentPollInterval = durationOrDefault("PAYMENT_POLL_INTERVAL", 10*time.Second)

	cfg.PaymentGatewayURL = viper.GetString("PAYMENT_GATEWAY_URL")
	cfg.PaymentGatewayTokenURL = viper.GetString("PAYMENT_GATEWAY_TOKEN_URL")
	cfg.PaymentGatewayClientID = viper.GetString("PAYMENT_GATEWAY_CLIENT_ID")
	cfg.PaymentGatewayClientSecret = viper.GetString("PAYMENT_GATEWAY_CLIENT_SECRET")
	cfg.PaymentServiceKeyHash = viper.GetString("PAYMENT_SERVICE_KEY_HASH")
	if cfg.PaymentGatewayURL == "" {
		log.Println("Warning: PAYMENT_GATEWAY_URL not set. Top-ups will only be confirmed by the payment service callback.")
	}
	if cfg.PaymentServiceKeyHash == "" {
		log.Println("Warning: PAYMENT_SERVICE_KEY_HASH not set. The payment confirmation endpoint is disabled.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.MaxUploadBytes = viper.GetInt64("MAX_UPLOAD_BYTES")

	return cfg, nil
}

// GatewayConfigured reports whether enough is set to poll the payment gateway.
func (c *Config) GatewayConfigured() bool {
	return c.PaymentGatewayURL != "" && c.PaymentGatewayTokenURL != "" && c.PaymentGatewayClientID != ""
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}
