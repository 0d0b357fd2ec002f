// config.go
// ----------
// This file defines the Config structure with the client-wide settings: host
// selection (public vs enterprise), the auth token, the per-request timeout,
// the 202 retry policy, and the post-mutation settle delay.
//
// A Config is copied at client construction and never read from again, so
// mutating a Config after NewGitHubBridge has no effect on live clients.
// LoadConfig builds one from an optional YAML file plus GITHUB_BRIDGE_*
// environment variables.
package githubbridge

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configEnvPrefix = "GITHUB_BRIDGE"
	configType      = "yaml"
)

// Config carries every tunable of the client. A zero Host, UserAgent,
// RequestTimeout or ProgressThreshold falls back to the default; zero is
// meaningful for the retry and delay fields, where it disables the behavior.
type Config struct {
	// Host is the GitHub instance to talk to. "github.com" selects the
	// public API at api.github.com; anything else is treated as a GitHub
	// Enterprise host served under https://<host>/api/v3/.
	Host string `mapstructure:"host"`

	// AuthToken is sent as "Authorization: token <value>" when non-empty.
	// Empty means unauthenticated access with its lower rate limits.
	AuthToken string `mapstructure:"auth_token"`

	UserAgent string `mapstructure:"user_agent"`

	// RequestTimeout bounds each physical HTTP attempt.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// RetryDelay is the sleep between attempts when a GET answers 202
	// (result not ready). Zero disables 202 retries entirely.
	RetryDelay time.Duration `mapstructure:"retry_delay"`

	// MaxRetries caps how many times a 202 is retried before the call
	// fails with a RetryExhaustedError.
	MaxRetries int `mapstructure:"max_retries"`

	// StateChangeDelay is slept after every successful mutation (POST,
	// PATCH, PUT, DELETE) before returning, for callers that read their
	// own writes immediately.
	StateChangeDelay time.Duration `mapstructure:"state_change_delay"`

	// ProgressThreshold is the known page count at which multi-page
	// fetches start reporting progress. Unknown totals always report.
	ProgressThreshold int `mapstructure:"progress_threshold"`

	// DisableNormalization skips date-field parsing on decoded payloads.
	DisableNormalization bool `mapstructure:"disable_normalization"`
}

// DefaultConfig returns the settings used when callers pass nil or leave
// fields zero: public host, 100s timeout, 202 retries every 30s up to 30
// attempts, no settle delay.
func DefaultConfig() *Config {
	return &Config{
		Host:              publicHost,
		UserAgent:         "github-bridge",
		RequestTimeout:    100 * time.Second,
		RetryDelay:        30 * time.Second,
		MaxRetries:        30,
		StateChangeDelay:  0,
		ProgressThreshold: 10,
	}
}

// withDefaults returns a copy of c with zero fields replaced by defaults and
// out-of-range values clamped. A nil receiver yields the full defaults.
func (c *Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if c == nil {
		return defaults
	}
	merged := *c
	merged.Host = strings.TrimPrefix(strings.TrimSuffix(strings.TrimSpace(merged.Host), "/"), "https://")
	if merged.Host == "" {
		merged.Host = defaults.Host
	}
	if merged.UserAgent == "" {
		merged.UserAgent = defaults.UserAgent
	}
	if merged.RequestTimeout <= 0 {
		merged.RequestTimeout = defaults.RequestTimeout
	}
	if merged.RetryDelay < 0 {
		merged.RetryDelay = 0
	}
	if merged.MaxRetries < 0 {
		merged.MaxRetries = 0
	}
	if merged.StateChangeDelay < 0 {
		merged.StateChangeDelay = 0
	}
	if merged.ProgressThreshold <= 0 {
		merged.ProgressThreshold = defaults.ProgressThreshold
	}
	return &merged
}

// LoadConfig reads settings from an optional YAML file and GITHUB_BRIDGE_*
// environment variables (GITHUB_BRIDGE_AUTH_TOKEN, GITHUB_BRIDGE_HOST, ...).
// An empty path means environment and defaults only; a named file that does
// not exist is an error.
func LoadConfig(configFilePath string) (*Config, error) {
	loader := viper.New()
	loader.SetConfigType(configType)
	loader.SetEnvPrefix(configEnvPrefix)
	loader.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	loader.AutomaticEnv()

	// Every key gets a default so environment-only values are visible to
	// Unmarshal; viper skips env lookups for keys it has never seen.
	defaults := DefaultConfig()
	loader.SetDefault("host", defaults.Host)
	loader.SetDefault("auth_token", "")
	loader.SetDefault("user_agent", defaults.UserAgent)
	loader.SetDefault("request_timeout", defaults.RequestTimeout)
	loader.SetDefault("retry_delay", defaults.RetryDelay)
	loader.SetDefault("max_retries", defaults.MaxRetries)
	loader.SetDefault("state_change_delay", defaults.StateChangeDelay)
	loader.SetDefault("progress_threshold", defaults.ProgressThreshold)
	loader.SetDefault("disable_normalization", false)

	if configFilePath != "" {
		loader.SetConfigFile(configFilePath)
		if err := loader.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	var config Config
	if err := loader.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return config.withDefaults(), nil
}
