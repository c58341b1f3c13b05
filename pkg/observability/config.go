// Package observability provides OpenTelemetry-based tracing, metrics and
// structured logging for the intensity CLI.
package observability

import "log/slog"

// AppMode identifies which command the binary is executing.
type AppMode string

const (
	// ModeRun executes a user-supplied script.
	ModeRun AppMode = "run"
	// ModeDemo executes the built-in reference scenario.
	ModeDemo AppMode = "demo"
	// ModeValidate only checks a script against the schema.
	ModeValidate AppMode = "validate"
)

const (
	defaultServiceName        = "intensity"
	defaultShutdownTimeoutSec = 5
)

// Config holds all observability configuration.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the version of the running binary.
	ServiceVersion string

	// Environment is the deployment environment (e.g. "production", "dev").
	Environment string

	// Mode identifies how the binary was launched.
	Mode AppMode

	// OTLPEndpoint is the OTLP gRPC collector address (e.g. "localhost:4317").
	// Empty disables OTLP export.
	OTLPEndpoint string

	// OTLPInsecure disables TLS for the OTLP gRPC connection.
	OTLPInsecure bool

	// Prometheus attaches a Prometheus exporter to the meter provider and
	// exposes its scrape handler in [Providers.MetricsHandler].
	Prometheus bool

	// SampleRatio is the trace sampling ratio in (0, 1]. Zero samples everything.
	SampleRatio float64

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON enables JSON-formatted log output.
	LogJSON bool

	// ShutdownTimeoutSec is the maximum seconds to wait for flush on shutdown.
	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config for zero-config startup: no exporters,
// text logs at info level.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		Mode:               ModeRun,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}
