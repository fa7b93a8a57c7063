package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env             string
	HTTPPort        string
	CommerceAPIURL  string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	CartStorage    string
	CartFileDir    string
	RedisURL       string
	CartTTL        time.Duration
	SQLitePath     string
	CartStorageKey string

	DefaultCustomerID int64
	PaymentMethods    string

	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// Load reads the environment, after applying a .env file when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		HTTPPort:       getEnv("HTTP_PORT", "8081"),
		CommerceAPIURL: getEnv("COMMERCE_API_URL", "http://localhost:8080"),
		CartStorage:    getEnv("CART_STORAGE", "file"),
		CartFileDir:    getEnv("CART_FILE_DIR", "./data"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SQLitePath:     getEnv("SQLITE_PATH", "./data/storefront.db"),
		CartStorageKey: getEnv("CART_STORAGE_KEY", "myCart"),
		PaymentMethods: getEnv("PAYMENT_METHODS", "card"),
	}

	var err error
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CartTTL, err = getDuration("CART_TTL", 0); err != nil {
		return nil, err
	}
	if cfg.BreakerOpenTimeout, err = getDuration("BREAKER_OPEN_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.DefaultCustomerID, err = getInt("DEFAULT_CUSTOMER_ID", 1); err != nil {
		return nil, err
	}
	maxFailures, err := getInt("BREAKER_MAX_FAILURES", 5)
	if err != nil {
		return nil, err
	}
	if maxFailures < 1 || maxFailures > 1<<31 {
		return nil, fmt.Errorf("BREAKER_MAX_FAILURES must be positive, got %d", maxFailures)
	}
	cfg.BreakerMaxFailures = uint32(maxFailures)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CartStorage {
	case "file", "redis", "sqlite", "memory":
	default:
		return fmt.Errorf("CART_STORAGE must be one of file, redis, sqlite, memory, got %q", c.CartStorage)
	}
	switch c.PaymentMethods {
	case "card", "split":
	default:
		return fmt.Errorf("PAYMENT_METHODS must be card or split, got %q", c.PaymentMethods)
	}
	if u, err := url.Parse(c.CommerceAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("COMMERCE_API_URL is not an absolute URL: %q", c.CommerceAPIURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	if c.DefaultCustomerID <= 0 {
		return fmt.Errorf("DEFAULT_CUSTOMER_ID must be positive, got %d", c.DefaultCustomerID)
	}
	if c.CartStorageKey == "" {
		return errors.New("CART_STORAGE_KEY must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: duration must not be negative, got %s", key, value)
	}
	return d, nil
}

func getInt(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, value, err)
	}
	return n, nil
}
