// Package telemetry provides the shared metrics recorder and optional
// OpenTelemetry tracing for the document processing pipeline.
//
// The recorder is append-only: stages report invocation outcomes and timing,
// and nothing in the processing path ever reads a metric back to make a
// decision. Read access exists purely for observability (the Prometheus
// endpoint and the stats snapshot).
package telemetry
