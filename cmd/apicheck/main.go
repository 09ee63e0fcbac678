// Package main implements apicheck, a command-line tool that runs the
// end-to-end scenarios and the synthetic load profile against the FakeStore
// API or a running gateway.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tiendalab/tienda-bff/internal/config"
	"github.com/tiendalab/tienda-bff/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Flag defaults come from the check
// section of the configuration, loaded when a subcommand runs.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "apicheck",
		Short:        "Run end-to-end scenarios and load against the store API",
		SilenceUsage: true,
	}

	root.AddCommand(newRunCmd(), newLoadCmd())
	return root
}

// loadCheckConfig loads configuration and installs the JSON logger on stderr
// so command output on stdout stays readable.
func loadCheckConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.SetupWithWriter(cfg.Server, cmd.ErrOrStderr())
	return cfg, nil
}
