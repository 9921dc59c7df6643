// Package config provides configuration structures for stores, executors and
// tracing.
//
// Configuration follows a cold-start pattern: structs are used only during
// initialization and then transformed into runtime objects. Each struct has a
// Default constructor and a Merge method that overlays non-zero values.
//
// # Sources
//
// Configuration is assembled from three layers, later layers winning:
//
//	cfg := config.DefaultStoreConfig()   // built-in defaults
//	cfg, err := config.LoadConfig(path)  // JSON or YAML file, merged over defaults
//	err = config.ApplyEnv(cfg)           // REDUKS_* environment variables
//
// Load combines all three.
//
// # Durations
//
// Duration fields accept Go duration strings ("50ms", "5s") in every source.
//
//	name: counter
//	observer: slog
//	slow_dispatch_threshold: 16ms
//	executor:
//	  name: subscribers
//	  workers: 4
package config
