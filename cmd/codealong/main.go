// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/codealong/server/internal/config"
	"github.com/codealong/server/internal/dirops"
	"github.com/codealong/server/internal/httpapi"
	"github.com/codealong/server/internal/metrics"
	"github.com/codealong/server/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "codealong",
		Short: "codealong is the server core of a real-time collaborative code-editing service",
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the codealong server",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}
			return run(cmd.Context(), settings)
		},
	}

	// Flag names match internal/config.Settings's koanf tags exactly, the
	// way heike names its flags after its koanf keys, so posflag.Provider
	// can bind them without a name-mapping callback.
	flags := cmd.Flags()
	flags.String("host", "0.0.0.0", "address to listen on")
	flags.Int("port", 8080, "port to listen on")
	flags.Int("max_sessions", 4, "maximum number of concurrent sessions")
	flags.Int("users_per_session", 8, "maximum number of users per session")
	flags.Int("max_proj_size_kb", 1024, "maximum total project content size, in kilobytes")
	flags.String("tls_cert", "", "path to a TLS certificate file")
	flags.String("tls_key", "", "path to a TLS private key file")
	flags.StringVar(&configPath, "config", "", "path to an optional YAML config file")

	return cmd
}

func run(ctx context.Context, settings *config.Settings) error {
	metrics.Register(prometheus.DefaultRegisterer)

	store := session.NewStore(settings.MaxSessions, settings.MaxUsersPerSession)
	limits := dirops.Limits{MaxProjectSizeBytes: settings.MaxProjSizeKB * 1024}

	server := httpapi.NewServer(httpapi.ServerConfig{
		Host:    settings.Host,
		Port:    settings.Port,
		TLSCert: settings.TLSCert,
		TLSKey:  settings.TLSKey,
	}, store, limits)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("shutting down")
		return server.Shutdown(ctx)
	}
}
