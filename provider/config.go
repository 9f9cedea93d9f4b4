package provider

import (
	"fmt"
	"os"
	"time"
)

// Config holds configuration for creating a transport.
// Zero values use sensible defaults where noted.
type Config struct {
	// APIKey authenticates requests to the provider.
	// Required by the bedrock transport (sent as a bearer token).
	APIKey string

	// Region is the provider region, e.g. "us-east-1". Used to derive the
	// endpoint when Endpoint is unset.
	Region string

	// Endpoint overrides the provider endpoint URL.
	// Default: derived from Region. Mainly useful for testing.
	Endpoint string

	// Timeout is the maximum duration for one HTTP round trip.
	// 0 uses the default (2 minutes).
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout: 2 * time.Minute,
	}
}

// LoadFromEnv populates fields from environment variables. Set variables
// take precedence over existing values.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("AWS_BEARER_TOKEN_BEDROCK"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("AWS_DEFAULT_REGION"); v != "" {
		c.Region = v
	}
}

// Validate checks that required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" && c.Region == "" {
		return fmt.Errorf("%w: region or endpoint required", ErrInvalidRequest)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%w: API key not configured", ErrAccessDenied)
	}
	return nil
}
