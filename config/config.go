package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/rfallows/llmgate/tokens"
)

// Defaults for the shared rate limiter.
const (
	DefaultRequestsPerMinute = 40
	DefaultBurstCapacity     = 8
)

// Config holds governor configuration.
type Config struct {
	// RequestsPerMinute is the sustained admission rate for model calls.
	RequestsPerMinute float64 `toml:"requests_per_minute"`

	// BurstCapacity is the largest burst of calls admitted instantaneously.
	BurstCapacity int `toml:"burst_capacity"`

	// Profiles overrides response budget bounds per analysis type.
	// Types absent here keep their built-in bounds.
	Profiles map[string]ProfileConfig `toml:"profiles"`
}

// ProfileConfig overrides one analysis type's budget bounds.
type ProfileConfig struct {
	BaseTokens int `toml:"base_tokens"`
	MaxTokens  int `toml:"max_tokens"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RequestsPerMinute: DefaultRequestsPerMinute,
		BurstCapacity:     DefaultBurstCapacity,
		Profiles:          map[string]ProfileConfig{},
	}
}

// Load builds the effective configuration: defaults, then the TOML file at
// path (skipped when path is empty or the file does not exist), then the
// environment. A .env file in the working directory is loaded first.
func Load(path string) (Config, error) {
	// Missing .env is the normal case in CI.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	cfg.LoadFromEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromEnv applies environment variable overrides. Set variables take
// precedence over existing values.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("REQUESTS_PER_MINUTE"); v != "" {
		if rpm, err := strconv.ParseFloat(v, 64); err == nil {
			c.RequestsPerMinute = rpm
		}
	}
	if v := os.Getenv("BURST_CAPACITY"); v != "" {
		if burst, err := strconv.Atoi(v); err == nil {
			c.BurstCapacity = burst
		}
	}

	if c.Profiles == nil {
		c.Profiles = map[string]ProfileConfig{}
	}

	// {TYPE}_BASE_TOKENS / {TYPE}_MAX_TOKENS for built-in and file-defined
	// analysis types.
	names := make(map[string]struct{}, len(tokens.DefaultProfiles)+len(c.Profiles))
	for name := range tokens.DefaultProfiles {
		names[name] = struct{}{}
	}
	for name := range c.Profiles {
		names[name] = struct{}{}
	}

	for name := range names {
		prefix := strings.ToUpper(name)
		override := c.Profiles[name]

		if v := os.Getenv(prefix + "_BASE_TOKENS"); v != "" {
			if base, err := strconv.Atoi(v); err == nil {
				override.BaseTokens = base
			}
		}
		if v := os.Getenv(prefix + "_MAX_TOKENS"); v != "" {
			if maxTok, err := strconv.Atoi(v); err == nil {
				override.MaxTokens = maxTok
			}
		}

		if override != (ProfileConfig{}) {
			c.Profiles[name] = override
		}
	}
}

// Validate checks rate limiter settings and profile overrides.
func (c *Config) Validate() error {
	if c.RequestsPerMinute <= 0 {
		return fmt.Errorf("requests_per_minute must be positive, got %v", c.RequestsPerMinute)
	}
	if c.BurstCapacity <= 0 {
		return fmt.Errorf("burst_capacity must be positive, got %d", c.BurstCapacity)
	}
	for name, p := range c.Profiles {
		base, maxTok := c.resolveProfile(name, p)
		if base <= 0 || maxTok <= 0 {
			return fmt.Errorf("profile %q: token bounds must be positive", name)
		}
		if base > maxTok {
			return fmt.Errorf("profile %q: base_tokens %d exceeds max_tokens %d", name, base, maxTok)
		}
	}
	return nil
}

// TokenProfiles merges the built-in profiles with overrides, for
// tokens.NewCalculatorWithProfiles.
func (c *Config) TokenProfiles() map[string]tokens.Profile {
	merged := make(map[string]tokens.Profile, len(tokens.DefaultProfiles)+len(c.Profiles))
	for name, p := range tokens.DefaultProfiles {
		merged[name] = p
	}
	for name, p := range c.Profiles {
		base, maxTok := c.resolveProfile(name, p)
		merged[name] = tokens.Profile{Base: base, Max: maxTok}
	}
	return merged
}

// resolveProfile fills a partial override from the built-in profile, or the
// fallback profile for unknown types.
func (c *Config) resolveProfile(name string, p ProfileConfig) (base, maxTok int) {
	builtin, ok := tokens.DefaultProfiles[name]
	if !ok {
		builtin = tokens.FallbackProfile
	}
	base, maxTok = builtin.Base, builtin.Max
	if p.BaseTokens > 0 {
		base = p.BaseTokens
	}
	if p.MaxTokens > 0 {
		maxTok = p.MaxTokens
	}
	return base, maxTok
}
