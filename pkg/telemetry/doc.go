// Package telemetry configures OpenTelemetry tracing for the portal. Spans are
// exported over OTLP/gRPC when OTEL_EXPORTER_OTLP_ENDPOINT is set; inbound
// requests are traced by otelhttp in cmd/portal and the identity client's
// outbound calls by its instrumented transport.
package telemetry
