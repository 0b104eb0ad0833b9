// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

// Package logging provides structured logging with OpenTelemetry trace
// context, plus the query-engine context (correlation ID, the JSONPath
// expression under evaluation) that ties a CLI invocation's log lines
// together.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// correlationIDKey and queryKey thread a per-invocation correlation ID and
// the JSONPath expression text through a context, so traceHandler can
// stamp both onto every log record emitted during that invocation without
// every call site having to repeat them as explicit slog attributes.
type correlationIDKey struct{}
type queryKey struct{}

// WithCorrelationID attaches a correlation ID (e.g. the CLI's per-run ULID)
// to ctx; traceHandler stamps it as "correlation_id" on every log record
// derived from ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID returns the correlation ID attached to ctx, if any.
func CorrelationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationIDKey{}).(string)
	return id, ok
}

// WithQuery attaches the JSONPath expression text under evaluation to ctx;
// traceHandler stamps it as "jsonpath_query" on every log record derived
// from ctx.
func WithQuery(ctx context.Context, query string) context.Context {
	return context.WithValue(ctx, queryKey{}, query)
}

// Query returns the JSONPath expression text attached to ctx, if any.
func Query(ctx context.Context) (string, bool) {
	q, ok := ctx.Value(queryKey{}).(string)
	return q, ok
}

// traceHandler wraps a slog.Handler to add trace context and the
// query-engine's own correlation ID / query-text context.
type traceHandler struct {
	handler slog.Handler
	service string
	version string
}

// Handle adds trace context and query-engine context to the log record.
func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(
		slog.String("service", h.service),
		slog.String("version", h.version),
	)

	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.HasTraceID() {
		r.AddAttrs(slog.String("trace_id", spanCtx.TraceID().String()))
	}
	if spanCtx.HasSpanID() {
		r.AddAttrs(slog.String("span_id", spanCtx.SpanID().String()))
	}

	if id, ok := CorrelationID(ctx); ok {
		r.AddAttrs(slog.String("correlation_id", id))
	}
	if q, ok := Query(ctx); ok {
		r.AddAttrs(slog.String("jsonpath_query", q))
	}

	//nolint:wrapcheck // Handler interface requires unwrapped error passthrough
	return h.handler.Handle(ctx, r)
}

// Enabled returns true if the level is enabled.
func (h *traceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs returns a new handler with the given attributes.
func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{
		handler: h.handler.WithAttrs(attrs),
		service: h.service,
		version: h.version,
	}
}

// WithGroup returns a new handler with the given group.
func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{
		handler: h.handler.WithGroup(name),
		service: h.service,
		version: h.version,
	}
}

// Setup creates a configured slog.Logger.
// format: "json" or "text" (defaults to "json" if empty)
// If w is nil, writes to os.Stderr.
func Setup(service, version, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var baseHandler slog.Handler
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	if format == "text" {
		baseHandler = slog.NewTextHandler(w, opts)
	} else {
		baseHandler = slog.NewJSONHandler(w, opts)
	}

	handler := &traceHandler{
		handler: baseHandler,
		service: service,
		version: version,
	}

	return slog.New(handler)
}

// SetDefault sets up and configures the default logger.
func SetDefault(service, version, format string) {
	logger := Setup(service, version, format, nil)
	slog.SetDefault(logger)
}
