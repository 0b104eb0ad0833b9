// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package errutil

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/kvjson/jsonpath/internal/logging"
)

// LogError logs an error with structured context if it's an oops error.
// For oops errors, it extracts and logs the message, code, context, and
// stacktrace. For standard errors, it logs the error string. ctx carries
// the query-engine's own correlation ID and, when the failure happened
// mid-evaluation, the JSONPath expression text (set via internal/logging's
// WithCorrelationID/WithQuery) — both are attached ahead of the
// error-specific attributes so a failed run's log line can be joined back
// to the CLI invocation and expression that produced it.
func LogError(ctx context.Context, logger *slog.Logger, msg string, err error) {
	scope := scopeAttrs(ctx)

	if oopsErr, ok := oops.AsOops(err); ok {
		attrs := append(scope, "error", oopsErr.Error())
		if code := oopsErr.Code(); code != nil {
			attrs = append(attrs, "code", code)
		}
		if errCtx := oopsErr.Context(); len(errCtx) > 0 {
			attrs = append(attrs, "context", errCtx)
		}
		logger.ErrorContext(ctx, msg, attrs...)
	} else {
		attrs := append(scope, "error", err)
		logger.ErrorContext(ctx, msg, attrs...)
	}
}

// scopeAttrs pulls the query-engine context (correlation ID, in-flight
// query text) off ctx as a slog attribute pair slice, empty when neither
// was attached.
func scopeAttrs(ctx context.Context) []any {
	var attrs []any
	if id, ok := logging.CorrelationID(ctx); ok {
		attrs = append(attrs, "correlation_id", id)
	}
	if q, ok := logging.Query(ctx); ok {
		attrs = append(attrs, "jsonpath_query", q)
	}
	return attrs
}
