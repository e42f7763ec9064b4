package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	AppEnv string

	Mongo struct {
		URI          string
		Database     string
		Timeout      time.Duration
		Transactions bool
	}

	JWT struct {
		Secret string
		TTL    time.Duration
	}

	Stripe struct {
		SecretKey string
		Currency  string
		BaseURL   string
	}

	Redis struct {
		Addr     string
		Password string
	}

	Minio struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		UseSSL    bool
		Bucket    string
	}

	// ReviewAnonymousCreate lets callers without a token post reviews.
	ReviewAnonymousCreate bool
}

// Load reads the environment, after merging a .env file when one exists.
func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Port = getenv("PORT", "5000")
	cfg.AppEnv = getenv("APP_ENV", "local")

	cfg.Mongo.URI = getenv("MONGO_URI", "mongodb://localhost:27017")
	cfg.Mongo.Database = getenv("MONGO_DB", "electricTools")

	var err error
	if cfg.Mongo.Timeout, err = durationEnv("MONGO_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Mongo.Transactions, err = boolEnv("MONGO_TRANSACTIONS", false); err != nil {
		return nil, err
	}

	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.JWT.TTL, err = durationEnv("JWT_TTL", time.Hour); err != nil {
		return nil, err
	}

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.Currency = strings.ToLower(getenv("STRIPE_CURRENCY", "usd"))
	cfg.Stripe.BaseURL = os.Getenv("STRIPE_BASE_URL")

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")

	cfg.Minio.Endpoint = os.Getenv("MINIO_ENDPOINT")
	cfg.Minio.AccessKey = getenv("MINIO_ACCESS_KEY", "minioadmin")
	cfg.Minio.SecretKey = getenv("MINIO_SECRET_KEY", "minioadmin")
	cfg.Minio.Bucket = getenv("MINIO_BUCKET", "tool-images")
	if cfg.Minio.UseSSL, err = boolEnv("MINIO_USE_SSL", false); err != nil {
		return nil, err
	}

	if cfg.ReviewAnonymousCreate, err = boolEnv("REVIEW_ANONYMOUS_CREATE", true); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Production reports whether the service runs with production logging.
func (c *Config) Production() bool {
	switch c.AppEnv {
	case "production", "prod":
		return true
	}
	return false
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
