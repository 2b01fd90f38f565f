package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tarsobcaldas/storage-control/internal/app"
	"github.com/tarsobcaldas/storage-control/internal/config"
	"github.com/tarsobcaldas/storage-control/internal/logger"
)

func main() {
	if err := newStorageCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newStorageCommand() *cobra.Command {
	var (
		envFile      string
		loadSnapshot string
	)

	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Interactive warehouse storage control",
		Long: `storage runs an interactive prompt for managing a warehouse: listing
products, restocking and taking stock under a placement strategy, and
saving or restoring the whole session as a named snapshot.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var paths []string
			if envFile != "" {
				paths = append(paths, envFile)
			}
			if err := config.Load(paths...); err != nil {
				return err
			}

			cfg := config.C()
			if err := logger.Init(cfg.Logger.Level(), cfg.Logger.AsJSON()); err != nil {
				return err
			}
			defer logger.Sync()

			return app.Run(ctx, app.Config{LoadSnapshot: loadSnapshot})
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "path to a .env file (used when APP_ENV=local)")
	cmd.Flags().StringVar(&loadSnapshot, "load", "", "snapshot name to restore at startup")

	return cmd
}
