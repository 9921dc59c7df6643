package config

import "time"

// ExecutorConfig defines a worker pool used as a subscriber execution context.
type ExecutorConfig struct {
	// Name identifies the pool in logs and in the worker context value
	Name string `json:"name" yaml:"name" env:"NAME"`

	// Workers is the number of goroutines that run notification callbacks
	Workers int `json:"workers" yaml:"workers" env:"WORKERS"`

	// ShutdownTimeout bounds how long Shutdown waits for in-flight callbacks
	ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// DefaultExecutorConfig returns a single-worker pool configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		Name:            "subscribers",
		Workers:         1,
		ShutdownTimeout: Duration(5 * time.Second),
	}
}

func (c *ExecutorConfig) Merge(source *ExecutorConfig) {
	if source.Name != "" {
		c.Name = source.Name
	}

	if source.Workers > 0 {
		c.Workers = source.Workers
	}

	if source.ShutdownTimeout > 0 {
		c.ShutdownTimeout = source.ShutdownTimeout
	}
}
