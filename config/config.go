package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// DB is the shared database handle, set by InitDB.
var DB *gorm.DB

// App is the process-wide configuration. Loaded once at startup and
// read-only afterwards; components that depend on a setting receive it
// at construction.
var App *Config

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	SessionSecret string

	// Payment gateway settings
	GatewayKey           string
	GatewaySecret        string
	GatewayWebhookSecret string
	GatewayEnabled       bool
	GatewayVerifyTimeout time.Duration

	// Initiated deposit intents older than this are swept to Expired.
	DepositIntentTTL time.Duration
}

// LoadConfig loads configuration from environment variables. A missing
// .env file is fine; real deployments set the environment directly.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "bundlehub"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		SessionSecret: getEnv("SESSION_SECRET", "bundlehub-session-secret"),

		GatewayKey:           os.Getenv("GATEWAY_KEY"),
		GatewaySecret:        os.Getenv("GATEWAY_SECRET"),
		GatewayWebhookSecret: os.Getenv("GATEWAY_WEBHOOK_SECRET"),
		GatewayEnabled:       getEnvBool("GATEWAY_ENABLED", true),
		GatewayVerifyTimeout: getEnvDuration("GATEWAY_VERIFY_TIMEOUT", 10*time.Second),
		DepositIntentTTL:     getEnvDuration("DEPOSIT_INTENT_TTL", 24*time.Hour),
	}

	App = cfg
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
