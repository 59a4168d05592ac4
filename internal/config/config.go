// Package config loads and validates KiCat assistant configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the full KiCat configuration.
type Config struct {
	Provider   ProviderConfig   `mapstructure:"provider"`
	Memory     MemoryConfig     `mapstructure:"memory"`
	Permission PermissionConfig `mapstructure:"permission"`
	Audit      AuditConfig      `mapstructure:"audit"`
}

// ProviderConfig contains AI provider connection settings.
type ProviderConfig struct {
	Name        string        `mapstructure:"name"` // anthropic, openai, gemini, or custom
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// MemoryConfig bounds the conversation and decision stores.
type MemoryConfig struct {
	MaxTurns     int `mapstructure:"max_turns"`
	MaxDecisions int `mapstructure:"max_decisions"`
}

// PermissionConfig selects the consent mode for board mutations.
type PermissionConfig struct {
	Mode string `mapstructure:"mode"` // read_only, ask_permission, auto_approve_safe, auto_approve_all
}

// AuditConfig controls the persisted modification log.
type AuditConfig struct {
	Path string `mapstructure:"path"` // bolt database file; empty disables persistence
}

// Defaults mirrored from the original plugin configuration.
const (
	DefaultMaxTokens    = 4096
	DefaultTemperature  = 0.3
	DefaultTimeout      = 30 * time.Second
	DefaultMaxTurns     = 20
	DefaultMaxDecisions = 50
)

// validProviders is the set of recognized provider names.
var validProviders = map[string]bool{
	"anthropic": true,
	"openai":    true,
	"gemini":    true,
	"custom":    true,
}

// validModes is the set of recognized permission modes.
var validModes = map[string]bool{
	"read_only":         true,
	"ask_permission":    true,
	"auto_approve_safe": true,
	"auto_approve_all":  true,
}

// Load loads configuration from file and environment.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults sets default values for unset fields.
func applyDefaults(cfg *Config) {
	if cfg.Provider.Name == "" {
		cfg.Provider.Name = "anthropic"
	}

	if cfg.Provider.Model == "" {
		switch cfg.Provider.Name {
		case "anthropic":
			cfg.Provider.Model = "claude-3-5-sonnet-20241022"
		case "openai":
			cfg.Provider.Model = "gpt-4"
		case "gemini":
			cfg.Provider.Model = "gemini-2.0-flash"
		}
	}

	if cfg.Provider.BaseURL == "" {
		switch cfg.Provider.Name {
		case "anthropic":
			cfg.Provider.BaseURL = "https://api.anthropic.com"
		case "openai":
			cfg.Provider.BaseURL = "https://api.openai.com"
		}
	}

	if cfg.Provider.MaxTokens == 0 {
		cfg.Provider.MaxTokens = DefaultMaxTokens
	}
	if cfg.Provider.Temperature == 0 {
		cfg.Provider.Temperature = DefaultTemperature
	}
	if cfg.Provider.Timeout == 0 {
		cfg.Provider.Timeout = DefaultTimeout
	}

	if cfg.Memory.MaxTurns == 0 {
		cfg.Memory.MaxTurns = DefaultMaxTurns
	}
	if cfg.Memory.MaxDecisions == 0 {
		cfg.Memory.MaxDecisions = DefaultMaxDecisions
	}

	if cfg.Permission.Mode == "" {
		cfg.Permission.Mode = "ask_permission"
	}
}

// Validate checks configuration consistency before a session starts.
// The API key is deliberately not validated here: a session without a
// provider is still useful for circuit generation and board work, so
// key checks happen where a client is actually constructed.
func (c *Config) Validate() error {
	if !validProviders[c.Provider.Name] {
		return fmt.Errorf("unknown provider %q (supported: anthropic, openai, gemini, custom)", c.Provider.Name)
	}
	if !validModes[c.Permission.Mode] {
		return fmt.Errorf("unknown permission mode %q", c.Permission.Mode)
	}
	if c.Memory.MaxTurns < 1 {
		return fmt.Errorf("memory.max_turns must be positive, got %d", c.Memory.MaxTurns)
	}
	if c.Memory.MaxDecisions < 1 {
		return fmt.Errorf("memory.max_decisions must be positive, got %d", c.Memory.MaxDecisions)
	}
	return nil
}

// ValidateAPIKey checks the API key format for the given provider.
// Gemini and custom providers only get a length check.
func ValidateAPIKey(key, provider string) (bool, string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, "API key is empty"
	}

	switch provider {
	case "anthropic":
		if !strings.HasPrefix(key, "sk-ant-") {
			return false, "Anthropic API key should start with 'sk-ant-'"
		}
		if len(key) < 20 {
			return false, "Anthropic API key appears too short"
		}
	case "openai":
		if !strings.HasPrefix(key, "sk-") {
			return false, "OpenAI API key should start with 'sk-'"
		}
		if len(key) < 20 {
			return false, "OpenAI API key appears too short"
		}
	default:
		if len(key) < 10 {
			return false, "API key appears too short"
		}
	}

	return true, "API key format looks valid"
}
