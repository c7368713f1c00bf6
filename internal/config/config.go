// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds settings shared by the server and the CLI.
type Config struct {
	Port string

	// Precision is the number of decimal places in one minor currency unit.
	Precision int32
	Currency  string
	Language  string // "en" or "he"

	// JWTSecret enables bearer-token auth on the API when non-empty.
	JWTSecret string
	TokenTTL  time.Duration

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration

	MetricsEnabled bool
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

	precision, err := getEnvInt("SETTLEUP_PRECISION", 2)
	if err != nil {
		return nil, err
	}
	if err := CheckPrecision(precision); err != nil {
		return nil, fmt.Errorf("SETTLEUP_PRECISION: %w", err)
	}

	tokenTTL, err := getEnvDuration("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	readTimeout, err := getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	metricsEnabled, err := getEnvBool("METRICS_ENABLED", true)
	if err != nil {
		return nil, err
	}

	lang := getEnv("SETTLEUP_LANGUAGE", "en")
	if err := CheckLanguage(lang); err != nil {
		return nil, fmt.Errorf("SETTLEUP_LANGUAGE: %w", err)
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		Precision:        int32(precision),
		Currency:         getEnv("SETTLEUP_CURRENCY", "₪"),
		Language:         lang,
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TokenTTL:         tokenTTL,
		HTTPReadTimeout:  readTimeout,
		HTTPWriteTimeout: writeTimeout,
		MetricsEnabled:   metricsEnabled,
	}, nil
}

// MaxPrecision is the largest supported number of decimal places.
const MaxPrecision = 8

// CheckPrecision reports whether places is within 0..MaxPrecision.
func CheckPrecision(places int) error {
	if places < 0 || places > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d, got %d", MaxPrecision, places)
	}
	return nil
}

// CheckLanguage reports whether lang names a supported report language.
func CheckLanguage(lang string) error {
	if lang != "en" && lang != "he" {
		return fmt.Errorf("language must be en or he, got %q", lang)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return i, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}
