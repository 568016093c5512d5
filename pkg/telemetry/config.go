package telemetry

// Config selects the trace exporter. An empty endpoint disables tracing.
type Config struct {
	// Endpoint is the OTLP/gRPC collector address. Tracing is off when empty.
	Endpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	SampleRatio float64 `env:"OTEL_TRACES_SAMPLE_RATIO" envDefault:"1"`
}

func (c Config) Enabled() bool { return c.Endpoint != "" }
