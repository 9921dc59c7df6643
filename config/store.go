package config

import "time"

// StoreConfig defines configuration for a Store instance.
//
// Observer is a name resolved through the observability registry so that
// stores can be configured from JSON, YAML or the environment.
//
// Example JSON:
//
//	{
//	  "name": "session",
//	  "observer": "slog",
//	  "slow_dispatch_threshold": "16ms",
//	  "shutdown_timeout": "5s",
//	  "executor": {"name": "ui", "workers": 2}
//	}
type StoreConfig struct {
	// Name identifies the store for observability
	Name string `json:"name" yaml:"name" env:"NAME"`

	// Observer specifies which observer implementation to use ("noop", "slog", etc.)
	Observer string `json:"observer" yaml:"observer" env:"OBSERVER"`

	// SlowDispatchThreshold is the duration above which timing middleware
	// reports a dispatch as blocking the store
	SlowDispatchThreshold Duration `json:"slow_dispatch_threshold" yaml:"slow_dispatch_threshold" env:"SLOW_DISPATCH_THRESHOLD"`

	// ShutdownTimeout bounds how long Shutdown waits for queued work to drain
	ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`

	Executor ExecutorConfig `json:"executor" yaml:"executor" envPrefix:"EXECUTOR_"`
	Tracing  TracingConfig  `json:"tracing" yaml:"tracing" envPrefix:"TRACING_"`
}

// DefaultStoreConfig returns sensible defaults for a store.
//
// Default values:
//   - Name: "default"
//   - Observer: "slog"
//   - SlowDispatchThreshold: 16ms (one frame at 60Hz)
//   - ShutdownTimeout: 5s
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		Name:                  "default",
		Observer:              "slog",
		SlowDispatchThreshold: Duration(16 * time.Millisecond),
		ShutdownTimeout:       Duration(5 * time.Second),
		Executor:              DefaultExecutorConfig(),
		Tracing:               DefaultTracingConfig(),
	}
}

func (c *StoreConfig) Merge(source *StoreConfig) {
	if source.Name != "" {
		c.Name = source.Name
	}

	if source.Observer != "" {
		c.Observer = source.Observer
	}

	if source.SlowDispatchThreshold > 0 {
		c.SlowDispatchThreshold = source.SlowDispatchThreshold
	}

	if source.ShutdownTimeout > 0 {
		c.ShutdownTimeout = source.ShutdownTimeout
	}

	c.Executor.Merge(&source.Executor)
	c.Tracing.Merge(&source.Tracing)
}
