// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kvjson/jsonpath/pkg/jsonpath"
)

// checkReport is the compile-only diagnostic payload.
type checkReport struct {
	Valid    bool   `json:"valid"`
	IsStatic bool   `json:"is_static,omitempty"`
	Size     int    `json:"size,omitempty"`
	Error    string `json:"error,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <jsonpath>",
		Short: "Compile a JSONPath expression and report diagnostics without evaluating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0])
		},
	}
}

func runCheck(cmd *cobra.Command, path string) error {
	report := checkReport{}

	q, err := jsonpath.Compile(path)
	if err != nil {
		report.Error = err.Error()
		if ce, ok := err.(*jsonpath.CompileError); ok {
			report.Offset = ce.Offset
		}
	} else {
		report.Valid = true
		report.IsStatic = q.IsStatic()
		report.Size = q.Size()
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling check report: %w", err)
	}
	cmd.Println(string(data))

	if !report.Valid {
		return fmt.Errorf("invalid jsonpath expression %q", path)
	}
	return nil
}
