package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tailored-agentic-units/reduks/config"
)

func TestDefaultStoreConfig(t *testing.T) {
	cfg := config.DefaultStoreConfig()

	if cfg.Name != "default" {
		t.Errorf("got Name %q, want %q", cfg.Name, "default")
	}
	if cfg.Observer != "slog" {
		t.Errorf("got Observer %q, want %q", cfg.Observer, "slog")
	}
	if cfg.SlowDispatchThreshold.Std() != 16*time.Millisecond {
		t.Errorf("got SlowDispatchThreshold %v, want 16ms", cfg.SlowDispatchThreshold)
	}
	if cfg.Executor.Workers != 1 {
		t.Errorf("got Executor.Workers %d, want 1", cfg.Executor.Workers)
	}
	if cfg.Tracing.Enabled {
		t.Error("tracing should be disabled by default")
	}
}

func TestStoreConfig_Merge(t *testing.T) {
	cfg := config.DefaultStoreConfig()

	source := &config.StoreConfig{
		Name:                  "merged",
		SlowDispatchThreshold: config.Duration(time.Second),
		Executor:              config.ExecutorConfig{Workers: 4},
		Tracing:               config.TracingConfig{Enabled: true, Endpoint: "http://collector:4318"},
	}

	cfg.Merge(source)

	if cfg.Name != "merged" {
		t.Errorf("got Name %q, want %q", cfg.Name, "merged")
	}
	if cfg.Observer != "slog" {
		t.Errorf("got Observer %q, want preserved %q", cfg.Observer, "slog")
	}
	if cfg.SlowDispatchThreshold.Std() != time.Second {
		t.Errorf("got SlowDispatchThreshold %v, want 1s", cfg.SlowDispatchThreshold)
	}
	if cfg.Executor.Workers != 4 {
		t.Errorf("got Executor.Workers %d, want 4", cfg.Executor.Workers)
	}
	if cfg.Executor.Name != "subscribers" {
		t.Errorf("got Executor.Name %q, want preserved %q", cfg.Executor.Name, "subscribers")
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.Endpoint != "http://collector:4318" {
		t.Errorf("got Tracing %+v, want enabled with endpoint", cfg.Tracing)
	}
}

func TestStoreConfig_Merge_ZeroValuesPreserveDefaults(t *testing.T) {
	cfg := config.DefaultStoreConfig()
	original := cfg

	cfg.Merge(&config.StoreConfig{})

	if cfg != original {
		t.Errorf("got %+v, want preserved defaults %+v", cfg, original)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{
			name:     "json",
			filename: "store.json",
			content: `{
				"name": "loaded",
				"observer": "noop",
				"slow_dispatch_threshold": "250ms",
				"executor": {"name": "ui", "workers": 3}
			}`,
		},
		{
			name:     "yaml",
			filename: "store.yaml",
			content: `name: loaded
observer: noop
slow_dispatch_threshold: 250ms
executor:
  name: ui
  workers: 3
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.LoadConfig(writeFile(t, tt.filename, tt.content))
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}

			if cfg.Name != "loaded" {
				t.Errorf("got Name %q, want %q", cfg.Name, "loaded")
			}
			if cfg.Observer != "noop" {
				t.Errorf("got Observer %q, want %q", cfg.Observer, "noop")
			}
			if cfg.SlowDispatchThreshold.Std() != 250*time.Millisecond {
				t.Errorf("got SlowDispatchThreshold %v, want 250ms", cfg.SlowDispatchThreshold)
			}
			if cfg.Executor.Name != "ui" || cfg.Executor.Workers != 3 {
				t.Errorf("got Executor %+v, want ui/3", cfg.Executor)
			}
			if cfg.ShutdownTimeout.Std() != 5*time.Second {
				t.Errorf("got ShutdownTimeout %v, want default 5s", cfg.ShutdownTimeout)
			}
		})
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := config.LoadConfig("/nonexistent/path/store.json")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{name: "invalid json", filename: "bad.json", content: "{invalid}"},
		{name: "invalid yaml", filename: "bad.yml", content: "name: [unterminated"},
		{name: "invalid duration", filename: "bad.json", content: `{"shutdown_timeout": "soon"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.LoadConfig(writeFile(t, tt.filename, tt.content)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("REDUKS_NAME", "from-env")
	t.Setenv("REDUKS_SLOW_DISPATCH_THRESHOLD", "5ms")
	t.Setenv("REDUKS_EXECUTOR_WORKERS", "8")
	t.Setenv("REDUKS_TRACING_ENABLED", "true")

	cfg := config.DefaultStoreConfig()
	if err := config.ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Name != "from-env" {
		t.Errorf("got Name %q, want %q", cfg.Name, "from-env")
	}
	if cfg.SlowDispatchThreshold.Std() != 5*time.Millisecond {
		t.Errorf("got SlowDispatchThreshold %v, want 5ms", cfg.SlowDispatchThreshold)
	}
	if cfg.Executor.Workers != 8 {
		t.Errorf("got Executor.Workers %d, want 8", cfg.Executor.Workers)
	}
	if !cfg.Tracing.Enabled {
		t.Error("expected tracing enabled from env")
	}
	if cfg.Observer != "slog" {
		t.Errorf("got Observer %q, want preserved %q", cfg.Observer, "slog")
	}
}

func TestApplyEnv_InvalidValue(t *testing.T) {
	t.Setenv("REDUKS_EXECUTOR_WORKERS", "many")

	cfg := config.DefaultStoreConfig()
	if err := config.ApplyEnv(&cfg); err == nil {
		t.Fatal("expected error for invalid env value, got nil")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "store.yaml", "name: file\nobserver: noop\n")
	t.Setenv("REDUKS_NAME", "env")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Name != "env" {
		t.Errorf("got Name %q, want %q", cfg.Name, "env")
	}
	if cfg.Observer != "noop" {
		t.Errorf("got Observer %q, want %q", cfg.Observer, "noop")
	}
}

func TestLoad_WithoutFile(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "default" {
		t.Errorf("got Name %q, want %q", cfg.Name, "default")
	}
}
