// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package jsonpath_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvjson/jsonpath/pkg/jsonpath"
	"github.com/kvjson/jsonpath/pkg/jsonvalue"
)

func TestRegisterMetrics_IdempotentAgainstCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, jsonpath.RegisterMetrics(reg))
	// registering a second time against the same registry must not error:
	// every collector is already in reg, and RegisterMetrics skips the
	// resulting AlreadyRegisteredError.
	require.NoError(t, jsonpath.RegisterMetrics(reg))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["jsonpath_compile_duration_seconds"])
	assert.True(t, names["jsonpath_evaluate_duration_seconds"])
	assert.True(t, names["jsonpath_evaluate_matches_total"])
}

func TestEvaluate_RecordsMatchMetric(t *testing.T) {
	q, err := jsonpath.Compile(`$.items[*]`)
	require.NoError(t, err)
	root, err := jsonvalue.Parse([]byte(`{"items":[1,2,3]}`))
	require.NoError(t, err)

	// Exercised for its side effect on the package-level metrics; the
	// count itself is asserted via the match slice, not the counter
	// (concurrent test runs share the process-global counter).
	matches := jsonpath.Evaluate(context.Background(), q, root)
	assert.Len(t, matches, 3)
}
