package smarttask

import (
	"net/http"

	"github.com/nhnasim333/smart-task-manager/types"
)

// Option configures a Client with optional dependencies.
type Option func(*clientOptions)

// clientOptions holds optional Client configuration.
type clientOptions struct {
	logger    types.Logger
	collector types.MetricsCollector
	httpc     *http.Client
	storage   types.Storage
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewClient
//
// Example:
//
//	logger := logging.NewSlogDefault()
//	client, err := smarttask.NewClient(&cfg, smarttask.WithLogger(logger))
func WithLogger(logger types.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - collector: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewClient
//
// Example:
//
//	collector := metrics.NewPrometheus(prometheus.DefaultRegisterer, "")
//	client, err := smarttask.NewClient(&cfg, smarttask.WithMetrics(collector))
func WithMetrics(collector types.MetricsCollector) Option {
	return func(o *clientOptions) {
		o.collector = collector
	}
}

// WithHTTPClient sets a custom HTTP client, replacing the default client
// built from Config.RequestTimeout.
//
// Parameters:
//   - httpc: HTTP client used for every request
//
// Returns:
//   - Option: Functional option for NewClient
func WithHTTPClient(httpc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpc = httpc
	}
}

// WithSessionStorage sets the key-value capability persisting the
// session. Defaults to an in-memory store, which does not survive process
// restarts; use session.NewFileStore for durability.
//
// Parameters:
//   - storage: Storage implementation
//
// Returns:
//   - Option: Functional option for NewClient
//
// Example:
//
//	store, err := session.NewFileStore(path)
//	client, err := smarttask.NewClient(&cfg, smarttask.WithSessionStorage(store))
func WithSessionStorage(storage types.Storage) Option {
	return func(o *clientOptions) {
		o.storage = storage
	}
}
