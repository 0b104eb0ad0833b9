// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kvjson/jsonpath/internal/observability"
	"github.com/kvjson/jsonpath/pkg/jsonpath"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a metrics/health HTTP endpoint for long-lived jpq use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":9090", "listen address for /metrics and /healthz")
	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	srv := observability.NewServer(addr, func() bool { return true })
	if err := jsonpath.RegisterMetrics(srv.Registry()); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
			slog.Info("shutting down jpq serve")
		case <-ctx.Done():
		}
		_ = srv.Stop(context.Background())
		cancel()
	}()

	slog.Info("jpq serve listening", "addr", addr)
	if err := srv.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}
