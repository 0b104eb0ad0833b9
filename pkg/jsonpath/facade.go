// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package jsonpath

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/kvjson/jsonpath/pkg/jsonvalue"
)

var tracer = otel.Tracer("jsonpath")

// Evaluate runs a compiled query against root and returns its matches
// without path information (C7). The context is used only to attach an
// optional tracing span; evaluation itself never observes cancellation
// (§5 of the traversal model draws no concurrency boundary here).
func Evaluate(ctx context.Context, q *Query, root jsonvalue.Value) []Match {
	_, span := tracer.Start(ctx, "jsonpath.evaluate")
	defer span.End()

	start := time.Now()
	matches := runQuery(q.ops, root, false)
	recordEvaluateMetrics(time.Since(start), len(matches))
	return matches
}

// EvaluateWithPaths runs a compiled query against root and returns its
// matches with each match's root-to-leaf path populated.
func EvaluateWithPaths(ctx context.Context, q *Query, root jsonvalue.Value) []Match {
	_, span := tracer.Start(ctx, "jsonpath.evaluate")
	defer span.End()

	start := time.Now()
	matches := runQuery(q.ops, root, true)
	recordEvaluateMetrics(time.Since(start), len(matches))
	return matches
}

// EvaluateOnce runs a compiled query exactly once. The engine keeps no
// state across calls — a Query is read-shared and every evaluation starts
// from the same flat op slice — so this is deliberately identical to
// Evaluate; it exists so callers that only ever run a query a single time
// can say so at the call site.
func EvaluateOnce(ctx context.Context, q *Query, root jsonvalue.Value) []Match {
	return Evaluate(ctx, q, root)
}
