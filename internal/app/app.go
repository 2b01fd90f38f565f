package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/tarsobcaldas/storage-control/internal/logger"
	"github.com/tarsobcaldas/storage-control/internal/model"
	"github.com/tarsobcaldas/storage-control/internal/transport/repl"
)

type Config struct {
	// LoadSnapshot restores a saved session before the prompt starts.
	// Missing snapshots are tolerated so a fresh session can reuse the
	// flag it will later save under.
	LoadSnapshot string
}

// Run wires the application together and drives the interactive loop until
// exit or cancellation.
func Run(ctx context.Context, cfg Config) error {
	const op = "app.Run"

	d := newDI()
	defer func() {
		if err := d.Close(context.Background()); err != nil {
			logger.Error(ctx, "close failed", logger.ErrorF(err))
		}
	}()

	svc := d.StorageService(ctx)

	if cfg.LoadSnapshot != "" {
		err := svc.Load(ctx, cfg.LoadSnapshot)
		switch {
		case errors.Is(err, model.ErrSnapshotNotFound):
			logger.Warn(ctx, "snapshot not found, starting fresh",
				logger.String("name", cfg.LoadSnapshot))
		case err != nil:
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := repl.New(svc, os.Stdin, os.Stdout).Run(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
