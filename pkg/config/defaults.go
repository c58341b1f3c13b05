package config

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Output defaults.
const (
	DefaultOutputFormat = "table"
	DefaultOutputColor  = true
)

// Observability defaults. An empty endpoint or address disables the exporter.
const (
	DefaultOTLPEndpoint = ""
	DefaultOTLPInsecure = false
	DefaultEnvironment  = ""
	DefaultMetricsAddr  = ""
)

// Output formats.
const (
	FormatTable = "table"
	FormatText  = "text"
	FormatJSON  = "json"
)
