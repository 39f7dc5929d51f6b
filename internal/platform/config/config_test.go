package config_test

import (
	"testing"
	"time"

	"github.com/SscSPs/teller_ledger_app/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, config.StoreBackendMemory, cfg.StoreBackend)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.True(t, cfg.OverdraftFloorChecking.IsZero())
	assert.True(t, cfg.OverdraftFloorSavings.IsZero())
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("STORE_TIMEOUT", "750ms")
	t.Setenv("OVERDRAFT_FLOOR_CHECKING", "-250.00")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 750*time.Millisecond, cfg.StoreTimeout)
	assert.True(t, decimal.RequireFromString("-250").Equal(cfg.OverdraftFloorChecking))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "positive floor", env: map[string]string{"OVERDRAFT_FLOOR_SAVINGS": "10"}},
		{name: "garbage floor", env: map[string]string{"OVERDRAFT_FLOOR_CHECKING": "lots"}},
		{name: "unknown backend", env: map[string]string{"STORE_BACKEND": "cassandra"}},
		{name: "default secret in production", env: map[string]string{"IS_PRODUCTION": "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORE_BACKEND", "memory")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.LoadConfig()
			assert.Error(t, err)
		})
	}
}
