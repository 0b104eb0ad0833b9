// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package jsonpath

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for query compilation and evaluation.
var (
	compileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jsonpath_compile_duration_seconds",
		Help:    "Histogram of Compile() latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	compileTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jsonpath_compile_total",
		Help: "Total number of Compile() calls by outcome",
	}, []string{"outcome"})

	evaluateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jsonpath_evaluate_duration_seconds",
		Help:    "Histogram of Evaluate()/EvaluateWithPaths() latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	evaluateMatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jsonpath_evaluate_matches_total",
		Help: "Total number of matches produced across all evaluations",
	})
)

func recordCompileMetrics(d time.Duration, err error) {
	compileDuration.Observe(d.Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	compileTotal.WithLabelValues(outcome).Inc()
}

func recordEvaluateMetrics(d time.Duration, matchCount int) {
	evaluateDuration.Observe(d.Seconds())
	evaluateMatchesTotal.Add(float64(matchCount))
}

// RegisterMetrics re-registers this package's collectors against reg, so a
// host process can expose them alongside its own metrics rather than only
// on the default Prometheus registry promauto used at init time.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		compileDuration, compileTotal, evaluateDuration, evaluateMatchesTotal,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}
