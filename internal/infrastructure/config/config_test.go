package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults satisfy validation", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:8080", cfg.Server.GetAddr())
		assert.Equal(t, "info", cfg.Logger.Level)
		assert.Equal(t, "mock", cfg.Payment.Provider)
	})

	t.Run("rejects unknown logger level", func(t *testing.T) {
		t.Setenv("KEYFORGE_LOGGER_LEVEL", "verbose")

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Contains(t, err.Error(), "Level must be one of")
	})

	t.Run("rejects unknown payment provider", func(t *testing.T) {
		t.Setenv("KEYFORGE_PAYMENT_PROVIDER", "stripe")

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Provider must be one of: razorpay mock")
	})

	t.Run("env override wins over default", func(t *testing.T) {
		t.Setenv("KEYFORGE_SERVER_PORT", "9090")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
	})
}
