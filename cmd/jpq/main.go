// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

// Package main is the entry point for the jpq command-line JSONPath tool.
package main

import (
	"log/slog"
	"os"

	"github.com/kvjson/jsonpath/internal/logging"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	logging.SetDefault("jpq", version, "text")

	if err := NewRootCmd().Execute(); err != nil {
		slog.Error("jpq failed", "error", err)
		os.Exit(1)
	}
}
