package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/vaultwise/internal/mcpserver"
	"github.com/hyperjump/vaultwise/internal/server"
	"github.com/hyperjump/vaultwise/internal/watcher"
)

// startWatcher watches the configured vault and invalidates the category cache on
// markdown or folder changes. It returns nil when watching is disabled or no vault is set.
func startWatcher(ctx context.Context, a *app) (*watcher.Watcher, error) {
	if !a.cfg.Watch.EnabledOrDefault() || a.cfg.Vault.Path == "" {
		return nil, nil
	}
	cache := a.assistant.Cache()
	w := watcher.NewWatcher(a.cfg.Vault.Path,
		func(path string) {
			a.logger.Debug("vault changed, invalidating categories", zap.String("path", path))
			cache.Invalidate()
		},
		watcher.WithLogger(a.logger),
		watcher.WithDebounce(a.cfg.Watch.Debounce),
		watcher.WithExcludeDirs(a.cfg.Vault.ExcludeDirs),
	)
	if err := w.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start watcher: %w", err)
	}
	return w, nil
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(flags, false)
			if err != nil {
				return err
			}
			defer a.close()
			if host != "" {
				a.cfg.Server.Host = host
			}
			if port != 0 {
				a.cfg.Server.Port = port
			}
			return runServe(a)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "listen host (default from config)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from config)")
	return cmd
}

func runServe(a *app) error {
	ctx, cancel := signalContext()
	defer cancel()
	go a.counter.Preload()

	w, err := startWatcher(ctx, a)
	if err != nil {
		return err
	}
	if w != nil {
		defer w.Stop()
	}

	srv := server.NewServer(a.assistant, &a.cfg.Server, a.logger,
		server.WithDefaultVault(a.cfg.Vault.Path),
		server.WithCategoryCache(a.assistant.Cache()),
		server.WithWatching(w != nil),
	)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Stop(shutdownCtx)
}

func newMCPCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run as an MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// stdout carries the protocol; logs go to stderr only when debugging.
			a, err := newApp(flags, true)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := signalContext()
			defer cancel()
			go a.counter.Preload()
			w, err := startWatcher(ctx, a)
			if err != nil {
				return err
			}
			if w != nil {
				defer w.Stop()
			}

			mcpserver.Version = version
			s := mcpserver.New(mcpserver.NewTools(a.assistant, a.cfg.Vault.Path, a.logger))
			return mcpserver.Serve(s)
		},
	}
}
