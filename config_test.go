package githubbridge

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "github.com", config.Host)
	assert.Equal(t, "github-bridge", config.UserAgent)
	assert.Equal(t, 100*time.Second, config.RequestTimeout)
	assert.Equal(t, 30*time.Second, config.RetryDelay)
	assert.Equal(t, 30, config.MaxRetries)
	assert.Equal(t, time.Duration(0), config.StateChangeDelay)
	assert.Equal(t, 10, config.ProgressThreshold)
	assert.Empty(t, config.AuthToken)
}

func TestConfigWithDefaults(t *testing.T) {
	t.Run("nil config yields defaults", func(t *testing.T) {
		var config *Config
		assert.Equal(t, DefaultConfig(), config.withDefaults())
	})

	t.Run("host scheme and slash are stripped", func(t *testing.T) {
		merged := (&Config{Host: "https://github.example.com/"}).withDefaults()
		assert.Equal(t, "github.example.com", merged.Host)
	})

	t.Run("empty host falls back to public", func(t *testing.T) {
		merged := (&Config{Host: "   "}).withDefaults()
		assert.Equal(t, "github.com", merged.Host)
	})

	t.Run("negative durations are clamped", func(t *testing.T) {
		merged := (&Config{
			RetryDelay:       -time.Second,
			MaxRetries:       -5,
			StateChangeDelay: -time.Second,
		}).withDefaults()
		assert.Equal(t, time.Duration(0), merged.RetryDelay)
		assert.Equal(t, 0, merged.MaxRetries)
		assert.Equal(t, time.Duration(0), merged.StateChangeDelay)
	})

	t.Run("zero retry settings survive as disabled", func(t *testing.T) {
		merged := (&Config{}).withDefaults()
		assert.Equal(t, time.Duration(0), merged.RetryDelay)
		assert.Equal(t, 0, merged.MaxRetries)
	})

	t.Run("zero threshold and timeout fall back", func(t *testing.T) {
		merged := (&Config{}).withDefaults()
		assert.Equal(t, 10, merged.ProgressThreshold)
		assert.Equal(t, 100*time.Second, merged.RequestTimeout)
	})

	t.Run("original config is not touched", func(t *testing.T) {
		original := &Config{Host: "https://github.example.com"}
		_ = original.withDefaults()
		assert.Equal(t, "https://github.example.com", original.Host)
	})
}

func TestLoadConfigFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bridge.yaml")
	content := `host: github.example.com
auth_token: file-token
retry_delay: 5s
max_retries: 7
state_change_delay: 2s
disable_normalization: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "github.example.com", config.Host)
	assert.Equal(t, "file-token", config.AuthToken)
	assert.Equal(t, 5*time.Second, config.RetryDelay)
	assert.Equal(t, 7, config.MaxRetries)
	assert.Equal(t, 2*time.Second, config.StateChangeDelay)
	assert.True(t, config.DisableNormalization)
	assert.Equal(t, "github-bridge", config.UserAgent, "unset keys keep their defaults")
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("GITHUB_BRIDGE_AUTH_TOKEN", "env-token")
	t.Setenv("GITHUB_BRIDGE_MAX_RETRIES", "3")
	t.Setenv("GITHUB_BRIDGE_HOST", "https://github.internal.example.com")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "env-token", config.AuthToken)
	assert.Equal(t, 3, config.MaxRetries)
	assert.Equal(t, "github.internal.example.com", config.Host, "withDefaults normalization applies to env values too")
}

func TestLoadConfigEnvironmentBeatsFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bridge.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("auth_token: file-token\n"), 0o600))
	t.Setenv("GITHUB_BRIDGE_AUTH_TOKEN", "env-token")

	config, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "env-token", config.AuthToken)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read configuration")
}
