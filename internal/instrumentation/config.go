package instrumentation

import (
	"os"
	"strconv"
)

// Exporter types for metrics.
const (
	// ExporterStdout writes metrics to stdout on shutdown.
	ExporterStdout = "stdout"
	// ExporterNone disables metrics export.
	ExporterNone = "none"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: schoolsum)
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Enabled determines if instrumentation is active.
	// Set INSTRUMENTATION_ENABLED=false to force it off.
	Enabled bool

	// MetricsExporter specifies the metrics exporter type.
	// Options: "stdout", "none" (default: "none" - a single run has no
	// scrape endpoint, so metrics are opt-in)
	MetricsExporter string
}

// DefaultConfig returns a Config with sensible defaults based on environment variables.
func DefaultConfig() Config {
	exporter := getEnvOrDefault("METRICS_EXPORTER", ExporterNone)
	enabled := getEnvBoolOrDefault("INSTRUMENTATION_ENABLED", true)

	return Config{
		ServiceName:     getEnvOrDefault("OTEL_SERVICE_NAME", "schoolsum"),
		ServiceVersion:  "unknown",
		Enabled:         enabled && exporter != ExporterNone,
		MetricsExporter: exporter,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
