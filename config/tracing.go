package config

// TracingConfig controls OpenTelemetry trace export. Tracing stays disabled
// unless Enabled is set and an Endpoint is provided.
type TracingConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled" env:"ENABLED"`
	Endpoint    string `json:"endpoint" yaml:"endpoint" env:"ENDPOINT"`
	ServiceName string `json:"service_name" yaml:"service_name" env:"SERVICE_NAME"`
}

func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "reduks",
	}
}

func (c *TracingConfig) Merge(source *TracingConfig) {
	if source.Enabled {
		c.Enabled = source.Enabled
	}

	if source.Endpoint != "" {
		c.Endpoint = source.Endpoint
	}

	if source.ServiceName != "" {
		c.ServiceName = source.ServiceName
	}
}
