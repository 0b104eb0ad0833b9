// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kvjson/jsonpath/pkg/jsonpath"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for jpq's evaluation result envelope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := jsonpath.GenerateResultSchema()
			if err != nil {
				return fmt.Errorf("generating result schema: %w", err)
			}
			cmd.Print(string(data))
			return nil
		},
	}
}
