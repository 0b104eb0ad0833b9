// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package errutil

import (
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertErrorCode asserts that err is an oops error with the given code.
func AssertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected oops error, got %T", err)
	assert.Equal(t, code, oopsErr.Code())
}

// AssertErrorContext asserts that err is an oops error with the given context key/value.
func AssertErrorContext(t *testing.T, err error, key string, value any) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected oops error, got %T", err)
	ctx := oopsErr.Context()
	assert.Contains(t, ctx, key)
	assert.Equal(t, value, ctx[key])
}

// AssertErrorHasCorrelationID asserts that err is an oops error carrying the
// given correlation_id in its context, the id the CLI's ULID-per-invocation
// scheme (cmd/jpq) stamps onto every eval failure.
func AssertErrorHasCorrelationID(t *testing.T, err error, correlationID string) {
	t.Helper()
	AssertErrorContext(t, err, "correlation_id", correlationID)
}

// AssertErrorReferencesQuery asserts that err is an oops error whose
// context records the JSONPath expression text that was being evaluated
// when it failed.
func AssertErrorReferencesQuery(t *testing.T, err error, query string) {
	t.Helper()
	AssertErrorContext(t, err, "jsonpath_query", query)
}
