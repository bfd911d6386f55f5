package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Bluepen/wallet-topup/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
api:
  base_url: https://api.wallet.test
  max_retries: 1
checkout:
  public_key: rzp_test_file
  theme_color: "#112233"
log:
  level: debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0o600))

	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"WALLET_API_BASE_URL",
		"WALLET_CHECKOUT_PUBLIC_KEY",
		"WALLET_CACHE_ENABLED",
		"WALLET_CACHE_ADDR",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadFrom(t *testing.T) {
	t.Run("reads file and defaults", func(t *testing.T) {
		clearEnv(t)
		dir := writeConfig(t, sampleConfig)

		cfg, err := config.LoadFrom(dir)

		require.NoError(t, err)
		assert.Equal(t, "https://api.wallet.test", cfg.API.BaseURL)
		assert.Equal(t, 1, cfg.API.MaxRetries)
		assert.Equal(t, 15*time.Second, cfg.API.Timeout)
		assert.Equal(t, "rzp_test_file", cfg.Checkout.PublicKey)
		assert.Equal(t, "#112233", cfg.Checkout.ThemeColor)
		assert.Equal(t, "127.0.0.1:0", cfg.Checkout.ListenAddr)
		assert.Equal(t, "https://checkout.razorpay.com/v1/checkout.js", cfg.Gateway.ScriptURL)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.False(t, cfg.Cache.Enabled)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		clearEnv(t)
		dir := writeConfig(t, sampleConfig)
		t.Setenv("WALLET_CHECKOUT_PUBLIC_KEY", "rzp_test_env")

		cfg, err := config.LoadFrom(dir)

		require.NoError(t, err)
		assert.Equal(t, "rzp_test_env", cfg.Checkout.PublicKey)
	})

	t.Run("environment alone is enough", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WALLET_API_BASE_URL", "https://api.wallet.test")
		t.Setenv("WALLET_CHECKOUT_PUBLIC_KEY", "rzp_test_env")

		cfg, err := config.LoadFrom(t.TempDir())

		require.NoError(t, err)
		assert.Equal(t, "https://api.wallet.test", cfg.API.BaseURL)
	})

	t.Run("missing required keys fail fast", func(t *testing.T) {
		clearEnv(t)

		cfg, err := config.LoadFrom(t.TempDir())

		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.True(t, errors.Is(err, config.ErrConfiguration))

		var validationErr *config.ValidationError
		require.True(t, errors.As(err, &validationErr))

		fields := make([]string, 0, len(validationErr.Fields))
		for _, f := range validationErr.Fields {
			fields = append(fields, f.FailedField)
		}
		assert.Contains(t, fields, "api.base_url")
		assert.Contains(t, fields, "checkout.public_key")
		assert.Contains(t, err.Error(), "api.base_url (required)")
	})

	t.Run("enabled cache needs an address", func(t *testing.T) {
		clearEnv(t)
		dir := writeConfig(t, sampleConfig)
		t.Setenv("WALLET_CACHE_ENABLED", "true")

		_, err := config.LoadFrom(dir)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cache.addr")
	})

	t.Run("malformed file", func(t *testing.T) {
		clearEnv(t)
		dir := writeConfig(t, "api: [unclosed")

		_, err := config.LoadFrom(dir)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load config")
		assert.False(t, errors.Is(err, config.ErrConfiguration))
	})
}
