package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	conf, err := NewConfig([]string{"-env-file", filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", conf.HTTP.HostString)
	assert.Equal(t, AppModeDevelop, conf.App.Mode)
	assert.Equal(t, "error", conf.App.LogLevel)
	assert.Empty(t, conf.Database.DSN)
	assert.Equal(t, 5*time.Second, conf.Database.StatementTimeout)
	assert.Equal(t, 3*time.Second, conf.Database.LockTimeout)
	assert.Equal(t, "0.18", conf.Checkout.TaxRate)
	assert.Equal(t, "INR", conf.Checkout.Currency)
	assert.Equal(t, 30*time.Minute, conf.Checkout.ExpiryWindow)
	assert.Equal(t, 10*time.Second, conf.Gateway.Timeout)
	assert.Empty(t, conf.Events.Brokers)
}

func TestNewConfig_EnvOverridesFlags(t *testing.T) {
	t.Setenv("RUN_ADDRESS", ":9090")
	t.Setenv("CHECKOUT_EXPIRY_WINDOW", "15m")
	t.Setenv("EVENTS_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("HTTP_ALLOW_ORIGINS", "https://book.example.com")

	conf, err := NewConfig([]string{"-a", ":7070", "-m", "PROD", "-env-file", filepath.Join(t.TempDir(), "none")})
	require.NoError(t, err)

	assert.Equal(t, ":9090", conf.HTTP.HostString)
	assert.Equal(t, AppModeProduction, conf.App.Mode)
	assert.Equal(t, 15*time.Minute, conf.Checkout.ExpiryWindow)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, conf.Events.Brokers)
	assert.Equal(t, []string{"https://book.example.com"}, conf.HTTP.AllowOrigins)
}

func TestNewConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkout.env")
	require.NoError(t, os.WriteFile(path, []byte("GATEWAY_KEY_ID=rzp_test_key\nCHECKOUT_CURRENCY=USD\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("GATEWAY_KEY_ID")
		os.Unsetenv("CHECKOUT_CURRENCY")
	})

	conf, err := NewConfig([]string{"-env-file", path})
	require.NoError(t, err)

	assert.Equal(t, "rzp_test_key", conf.Gateway.KeyID)
	assert.Equal(t, "USD", conf.Checkout.Currency)
}

func TestNewConfig_BadValue(t *testing.T) {
	t.Setenv("CHECKOUT_SWEEP_INTERVAL", "soon")

	_, err := NewConfig([]string{"-env-file", filepath.Join(t.TempDir(), "none")})
	assert.Error(t, err)
}
