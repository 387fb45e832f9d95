// Package main provides libraryctl, the operator command line for the library backend.
//
// It works directly against the configured database and shares the configuration of libraryserver.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-backend-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "libraryctl",
		Short:         "Operate the library backend database",
		SilenceUsage: true,
	}

	root.AddCommand(
		newMigrateCommand(),
		newCreateAdminCommand(),
		newReconcileCopiesCommand(),
		newOverdueCommand(),
		newStatsCommand(),
		newNextIDCommand(),
	)

	return root
}

// withStore loads the configuration, opens the store and hands it to fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, cfg config.Config, store sqlengine.LibraryStore) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))

	store, closeStore, err := config.OpenStore(cmd.Context(), cfg, sqlengine.WithLogger(logger))
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			logger.Error("closing database failed", "error", closeErr)
		}
	}()

	return fn(cmd.Context(), cfg, store)
}
