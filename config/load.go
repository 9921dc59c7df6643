package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "REDUKS_"

// LoadConfig reads a JSON or YAML config file, merges it with defaults, and
// returns the resulting StoreConfig. Files ending in .yaml or .yml are decoded
// as YAML; everything else as JSON.
func LoadConfig(filename string) (*StoreConfig, error) {
	cfg := DefaultStoreConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded StoreConfig
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

// ApplyEnv overlays REDUKS_* environment variables onto cfg. Unset variables
// leave the existing values in place.
func ApplyEnv(cfg *StoreConfig) error {
	var overlay StoreConfig
	if err := env.ParseWithOptions(&overlay, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	cfg.Merge(&overlay)
	return nil
}

// Load builds a StoreConfig from defaults, an optional file and the
// environment. An empty filename skips the file layer.
func Load(filename string) (*StoreConfig, error) {
	cfg := DefaultStoreConfig()
	if filename != "" {
		loaded, err := LoadConfig(filename)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
