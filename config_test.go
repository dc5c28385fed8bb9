package smarttask

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Equal(t, 60*time.Second, cfg.EvictionGrace)
	require.Equal(t, "smart-task-manager/session", cfg.SessionKey)
	require.Equal(t, 10, cfg.ActivityLogLimit)
	require.Empty(t, cfg.BaseURL, "baseUrl has no default")
}

func TestSetDefaults(t *testing.T) {
	cfg := Config{BaseURL: "https://api.example.com"}
	SetDefaults(&cfg)

	require.Equal(t, "https://api.example.com", cfg.BaseURL)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Equal(t, 60*time.Second, cfg.EvictionGrace)
	require.Equal(t, "smart-task-manager/session", cfg.SessionKey)
	require.Equal(t, 10, cfg.ActivityLogLimit)

	// Explicit values survive.
	custom := Config{
		BaseURL:        "https://api.example.com",
		RequestTimeout: 2 * time.Second,
	}
	SetDefaults(&custom)
	require.Equal(t, 2*time.Second, custom.RequestTimeout)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.BaseURL = "https://api.example.com/api/v1"
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		cfg := valid()
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing base url", func(t *testing.T) {
		cfg := valid()
		cfg.BaseURL = ""
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("relative base url", func(t *testing.T) {
		cfg := valid()
		cfg.BaseURL = "api.example.com/v1"
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("non-positive request timeout", func(t *testing.T) {
		cfg := valid()
		cfg.RequestTimeout = 0
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("non-positive eviction grace", func(t *testing.T) {
		cfg := valid()
		cfg.EvictionGrace = -time.Second
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("empty session key", func(t *testing.T) {
		cfg := valid()
		cfg.SessionKey = ""
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("non-positive activity log limit", func(t *testing.T) {
		cfg := valid()
		cfg.ActivityLogLimit = 0
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()

	require.NoError(t, cfg.Validate())
	require.Equal(t, 50*time.Millisecond, cfg.EvictionGrace)
	require.Less(t, cfg.RequestTimeout, DefaultConfig().RequestTimeout)
}
