// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kvjson/jsonpath/internal/logging"
	"github.com/kvjson/jsonpath/pkg/errutil"
	"github.com/kvjson/jsonpath/pkg/jsonpath"
	"github.com/kvjson/jsonpath/pkg/jsonvalue"
)

// evalConfig holds configuration for the eval command.
type evalConfig struct {
	docPath    string
	withPaths  bool
	schemaPath string
}

func newEvalCmd() *cobra.Command {
	cfg := &evalConfig{}

	cmd := &cobra.Command{
		Use:   "eval <jsonpath>",
		Short: "Evaluate a JSONPath expression against a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, cfg, args[0])
		},
	}

	cmd.Flags().StringVar(&cfg.docPath, "doc", "-", "document file path, or - for stdin")
	cmd.Flags().BoolVar(&cfg.withPaths, "paths", false, "include each match's path in the result")
	cmd.Flags().StringVar(&cfg.schemaPath, "schema", "", "validate the input document against this JSON Schema before querying it")

	return cmd
}

func runEval(cmd *cobra.Command, cfg *evalConfig, path string) error {
	id := ulid.Make().String()
	ctx := logging.WithQuery(logging.WithCorrelationID(cmd.Context(), id), path)
	cmd.SetContext(ctx)

	if err := evalRun(cmd, cfg, path); err != nil {
		wrapped := oops.In("eval").With("correlation_id", id).With("jsonpath_query", path).Wrap(err)
		errutil.LogError(ctx, slog.Default(), "eval failed", wrapped)
		return wrapped
	}
	return nil
}

func evalRun(cmd *cobra.Command, cfg *evalConfig, path string) error {
	data, err := readDocument(cmd, cfg.docPath)
	if err != nil {
		return err
	}

	if cfg.schemaPath != "" {
		schemaJSON, err := os.ReadFile(cfg.schemaPath)
		if err != nil {
			return oops.In("eval").With("schema", cfg.schemaPath).Hint("failed to read schema").Wrap(err)
		}
		if err := jsonpath.ValidateDocument(schemaJSON, data); err != nil {
			return err
		}
	}

	q, err := jsonpath.Compile(path)
	if err != nil {
		return err
	}

	root, err := jsonvalue.Parse(data)
	if err != nil {
		return oops.In("eval").Hint("invalid document").Wrap(err)
	}

	var matches []jsonpath.Match
	if cfg.withPaths {
		matches = jsonpath.EvaluateWithPaths(cmd.Context(), q, root)
	} else {
		matches = jsonpath.Evaluate(cmd.Context(), q, root)
	}

	envelope, err := buildEnvelope(matches, cfg.withPaths)
	if err != nil {
		return oops.In("eval").Wrap(err)
	}

	format := config.String("output")
	rendered, err := renderEnvelope(envelope, format)
	if err != nil {
		return oops.In("eval").Wrap(err)
	}

	cmd.Println(rendered)
	return nil
}

func buildEnvelope(matches []jsonpath.Match, withPaths bool) (*jsonpath.ResultEnvelope, error) {
	env := &jsonpath.ResultEnvelope{Matches: make([]json.RawMessage, len(matches))}
	for i, m := range matches {
		raw, err := jsonvalueMarshal(m.Value)
		if err != nil {
			return nil, fmt.Errorf("marshaling match %d: %w", i, err)
		}
		env.Matches[i] = raw
		if withPaths {
			env.Paths = append(env.Paths, m.Path)
		}
	}
	return env, nil
}

func renderEnvelope(env *jsonpath.ResultEnvelope, format string) (string, error) {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(env)
		if err != nil {
			return "", fmt.Errorf("marshaling result as yaml: %w", err)
		}
		return string(data), nil
	default:
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling result as json: %w", err)
		}
		return string(data), nil
	}
}

func readDocument(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" || path == "" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
