package smarttask

import (
	"fmt"
	"net/url"
	"time"
)

// Config controls the client's remote endpoint, caching, and session
// behavior.
type Config struct {
	// BaseURL is the backend base URL, e.g. "https://api.example.com/api/v1".
	// Required.
	BaseURL string `yaml:"baseUrl"`

	// RequestTimeout bounds a single HTTP request. A hung request
	// otherwise leaves its cache entry Loading indefinitely, so keep this
	// finite.
	//
	// Default: 15 seconds
	RequestTimeout time.Duration `yaml:"requestTimeout"`

	// EvictionGrace is how long a cached read outlives its last
	// subscriber. Re-subscribing within the window reuses the cached value
	// instead of refetching.
	//
	// Default: 60 seconds
	EvictionGrace time.Duration `yaml:"evictionGrace"`

	// SessionKey is the storage key holding the persisted session record.
	//
	// Default: "smart-task-manager/session"
	SessionKey string `yaml:"sessionKey"`

	// ActivityLogLimit is the default page size for activity log reads.
	//
	// Default: 10
	ActivityLogLimit int `yaml:"activityLogLimit"`
}

// DefaultConfig returns a configuration with production defaults.
func DefaultConfig() Config {
	return Config{
		RequestTimeout:   15 * time.Second,
		EvictionGrace:    60 * time.Second,
		SessionKey:       "smart-task-manager/session",
		ActivityLogLimit: 10,
	}
}

// SetDefaults fills in missing configuration values with production
// defaults. BaseURL has no default; it stays as given.
func SetDefaults(cfg *Config) {
	def := DefaultConfig()

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.EvictionGrace <= 0 {
		cfg.EvictionGrace = def.EvictionGrace
	}
	if cfg.SessionKey == "" {
		cfg.SessionKey = def.SessionKey
	}
	if cfg.ActivityLogLimit <= 0 {
		cfg.ActivityLogLimit = def.ActivityLogLimit
	}
}

// Validate checks configuration constraints and returns an error for
// invalid values.
//
// Returns:
//   - error: ErrInvalidConfig wrapped with the failing constraint, or nil
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("%w: baseUrl is required", ErrInvalidConfig)
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: baseUrl %q is not an absolute URL", ErrInvalidConfig, cfg.BaseURL)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("%w: requestTimeout must be positive", ErrInvalidConfig)
	}
	if cfg.EvictionGrace <= 0 {
		return fmt.Errorf("%w: evictionGrace must be positive", ErrInvalidConfig)
	}
	if cfg.SessionKey == "" {
		return fmt.Errorf("%w: sessionKey is required", ErrInvalidConfig)
	}
	if cfg.ActivityLogLimit <= 0 {
		return fmt.Errorf("%w: activityLogLimit must be positive", ErrInvalidConfig)
	}

	return nil
}

// ValidateWithWarnings checks configuration and logs warnings for
// non-recommended values.
//
// This is called after Validate() in NewClient() to provide operator
// guidance; the values stay in effect.
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if logger == nil {
		return
	}

	if cfg.EvictionGrace < time.Second {
		logger.Warn("evictionGrace below 1s defeats the re-subscription cache",
			"evictionGrace", cfg.EvictionGrace)
	}
	if cfg.RequestTimeout > time.Minute {
		logger.Warn("requestTimeout above 1m leaves stuck reads Loading for a long time",
			"requestTimeout", cfg.RequestTimeout)
	}
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Eviction fires after 50ms instead of a minute so eviction-path tests
// run quickly. Not suitable for production use.
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.BaseURL = "http://127.0.0.1:0"
	cfg.RequestTimeout = 2 * time.Second
	cfg.EvictionGrace = 50 * time.Millisecond

	return cfg
}
