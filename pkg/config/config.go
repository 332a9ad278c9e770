package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Headers      map[string]string
	Timeout      time.Duration
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	headers, err := ParseHeaders(os.Getenv("IDP_HEADERS"))
	if err != nil {
		return nil, err
	}

	timeout := 30 * time.Second
	if raw := os.Getenv("IDP_TIMEOUT"); raw != "" {
		timeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("IDP_TIMEOUT is not a valid duration: %w", err)
		}
	}

	cfg := &Config{
		BaseURL:      os.Getenv("IDP_BASE_URL"),
		ClientID:     os.Getenv("IDP_CLIENT_ID"),
		ClientSecret: os.Getenv("IDP_CLIENT_SECRET"),
		Headers:      headers,
		Timeout:      timeout,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("IDP_BASE_URL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("IDP_TIMEOUT must be positive")
	}
	// ClientID and ClientSecret are optional: operations may supply their own
	return nil
}

// ParseHeaders parses a comma separated list of Key=Value pairs.
func ParseHeaders(raw string) (map[string]string, error) {
	headers := map[string]string{}
	if strings.TrimSpace(raw) == "" {
		return headers, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("IDP_HEADERS entry %q must be Key=Value", pair)
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers, nil
}
