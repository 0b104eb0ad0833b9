// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package main

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/kvjson/jsonpath/internal/xdg"
)

// Global flags available to all subcommands.
var configFile string

// config is the process-wide layered configuration: defaults, then an
// optional config file, then command-line flags (each layer overriding
// the last, koanf's usual merge order).
var config = koanf.New(".")

// NewRootCmd creates the root command for the jpq CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jpq",
		Short: "jpq - a JSONPath query tool",
		Long: `jpq compiles and evaluates JSONPath expressions against JSON
documents, with optional path tracking, schema validation, and an
observability server for long-running use.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: $XDG_CONFIG_HOME/jpq/config.yaml)")
	cmd.PersistentFlags().String("output", "json", "output format: json or yaml")
	cmd.PersistentFlags().String("metrics-addr", "", "address to expose metrics/health on (empty disables)")

	cmd.AddCommand(newEvalCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newSchemaCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// loadConfig layers defaults < config file < command-line flags into the
// package-level config store, mirroring koanf's documented provider chain.
func loadConfig(cmd *cobra.Command) error {
	if err := config.Load(file.Provider(defaultConfigPath()), yaml.Parser()); err != nil {
		// A missing config file is not an error: every setting has a
		// command-line default.
		if !os.IsNotExist(err) {
			return oops.In("config").Hint("failed to load config file").Wrap(err)
		}
	}

	if configFile != "" {
		if err := config.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return oops.In("config").With("path", configFile).Hint("failed to load --config file").Wrap(err)
		}
	}

	if err := config.Load(posflag.Provider(cmd.Flags(), ".", config), nil); err != nil {
		return oops.In("config").Hint("failed to merge command-line flags").Wrap(err)
	}
	return nil
}

func defaultConfigPath() string {
	return xdg.ConfigDir() + "/config.yaml"
}
