// Package main is the vaultwise CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/vaultwise/internal/assistant"
	"github.com/hyperjump/vaultwise/internal/cli"
	"github.com/hyperjump/vaultwise/internal/config"
	"github.com/hyperjump/vaultwise/internal/llm"
	"github.com/hyperjump/vaultwise/internal/tokens"
	"github.com/hyperjump/vaultwise/internal/vault"
	"github.com/hyperjump/vaultwise/pkg/utils"
)

var version = "dev"

var defaultConfigPath = func() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "vaultwise", "config.yaml")
	}
	return "config.yaml"
}()

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// A missing file yields the defaults. Returns the config and the path that was used.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	debug      bool
	output     string
}

// app holds the components built from the loaded config.
type app struct {
	cfg        *config.Config
	configPath string
	debug      bool
	logger     *zap.Logger
	format     cli.OutputFormat
	reader     *vault.Reader
	counter    *tokens.BPECounter
	assistant  *assistant.Assistant
}

// newApp loads config and wires the assistant. When quiet is true and debug is off, the
// logger is a no-op so one-shot output stays clean.
func newApp(flags *globalFlags, quiet bool) (*app, error) {
	format, err := cli.ParseFormat(flags.output)
	if err != nil {
		return nil, err
	}
	cfg, resolved, err := loadConfig(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	debug := cfg.Debug || flags.debug

	logger := zap.NewNop()
	if debug || !quiet {
		logger, err = utils.NewLogger(debug)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}
	logger.Debug("config loaded", zap.String("config_path", resolved), zap.Bool("debug", debug))

	client, err := llm.NewClient(&cfg.LLM, logger)
	if err != nil {
		return nil, err
	}
	reader := vault.NewReader(vault.WithLogger(logger), vault.WithExcludeDirs(cfg.Vault.ExcludeDirs))
	counter := tokens.NewBPECounter(tokens.WithLogger(logger))
	asst := assistant.New(client, cfg.LLM.Model,
		assistant.WithConfig(cfg.Assistant),
		assistant.WithReader(reader),
		assistant.WithCounter(counter),
		assistant.WithLogger(logger),
	)
	return &app{
		cfg:        cfg,
		configPath: resolved,
		debug:      debug,
		logger:     logger,
		format:     format,
		reader:     reader,
		counter:    counter,
		assistant:  asst,
	}, nil
}

// vaultPath returns the explicit vault, or the configured one.
func (a *app) vaultPath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return a.cfg.Vault.Path
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "vaultwise",
		Short: "AI knowledge assistant for markdown vaults",
		Long: `vaultwise categorizes notes, summarizes folders, tracks keyword patterns,
answers questions and builds reports over a markdown vault using a text-completion model.

Run without a command for the interactive menu.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", defaultConfigPath, "config file path")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&flags.output, "output", "o", string(cli.OutputText), "output format: text or json")

	root.AddCommand(
		newCategorizeCmd(flags),
		newSummarizeCmd(flags),
		newAnalyzeCmd(flags),
		newAskCmd(flags),
		newReportCmd(flags),
		newCategoriesCmd(flags),
		newServeCmd(flags),
		newMCPCmd(flags),
		newVersionCmd(),
	)
	return root
}

func runInteractive(cmd *cobra.Command, flags *globalFlags) error {
	a, err := newApp(flags, true)
	if err != nil {
		return err
	}
	defer a.close()
	ctx, cancel := signalContext()
	defer cancel()
	menu := cli.NewMenu(a.assistant, cli.HuhPrompter{}, cmd.OutOrStdout(), a.format, a.cfg.Vault.Path)
	return menu.Run(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vaultwise version %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
