package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/dyluth/retro/pkg/retro"
	"gopkg.in/yaml.v3"
)

// DefaultRedisURL is used when neither retro.yml nor REDIS_URL names a server
const DefaultRedisURL = "redis://localhost:6379"

// SessionConfig represents the top-level retro.yml configuration
type SessionConfig struct {
	Version  string       `yaml:"version"`
	Session  string       `yaml:"session"`             // Session UUID, topic is retro:<session>
	RedisURL string       `yaml:"redis_url,omitempty"` // Defaults to DefaultRedisURL
	User     retro.User   `yaml:"user"`                // Who this client acts as
	Ideas    []retro.Idea `yaml:"ideas,omitempty"`     // Initial board
}

// EnvOverrides holds values read from the environment. Unset variables leave
// the corresponding retro.yml value untouched.
type EnvOverrides struct {
	SessionID   string  `env:"RETRO_SESSION_ID"`
	RedisURL    string  `env:"REDIS_URL"`
	UserID      *int    `env:"RETRO_USER_ID"`
	UserToken   *string `env:"RETRO_USER_TOKEN"`
	Facilitator *bool   `env:"RETRO_FACILITATOR"`
}

// Validate performs strict validation on the configuration
func (c *SessionConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if err := retro.ValidateSessionID(c.Session); err != nil {
		return err
	}

	if err := c.User.Validate(); err != nil {
		return fmt.Errorf("user: %w", err)
	}

	// Idea IDs must be unique within a session
	seen := make(map[int]bool, len(c.Ideas))
	for i := range c.Ideas {
		idea := &c.Ideas[i]
		if err := idea.Validate(); err != nil {
			return fmt.Errorf("idea at index %d: %w", i, err)
		}
		if seen[idea.ID] {
			return fmt.Errorf("duplicate idea ID %d", idea.ID)
		}
		seen[idea.ID] = true
	}

	if c.RedisURL == "" {
		c.RedisURL = DefaultRedisURL
	}

	return nil
}

// ApplyEnv overlays environment variables on the file configuration.
func (c *SessionConfig) ApplyEnv() error {
	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if o.SessionID != "" {
		c.Session = o.SessionID
	}
	if o.RedisURL != "" {
		c.RedisURL = o.RedisURL
	}
	if o.UserID != nil {
		c.User.ID = *o.UserID
	}
	if o.UserToken != nil {
		c.User.Token = *o.UserToken
	}
	if o.Facilitator != nil {
		c.User.IsFacilitator = *o.Facilitator
	}

	return nil
}

// Load reads retro.yml from the specified path, applies environment
// overrides and validates the result
func Load(path string) (*SessionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config SessionConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
