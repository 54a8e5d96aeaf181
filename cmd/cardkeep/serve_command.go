package main

import (
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"cardkeep/internal/api"
	"cardkeep/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the cardkeep HTTP API server",
		Long: `Serve binds the HTTP API and blocks until interrupted. A lock file
in the log directory keeps a second instance from opening the same database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			lockPath := filepath.Join(cfg.Paths.LogDir, "cardkeep.lock")
			lock := flock.New(lockPath)
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !ok {
				return errors.New("another cardkeep instance is already running")
			}
			defer func() {
				_ = lock.Unlock()
			}()

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ingestor, err := ctx.newIngestor(store, logger)
			if err != nil {
				return err
			}
			refresher, err := ctx.newRefresher(store, logger)
			if err != nil {
				return err
			}

			server := api.NewServer(cfg, ingestor, refresher, store, logger)
			if server == nil {
				return errors.New("api_bind is empty; nothing to serve")
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := server.Start(runCtx); err != nil {
				return err
			}
			logger.Info("cardkeep serving",
				logging.String("address", server.Addr()),
				logging.String("database", store.Path()))

			<-runCtx.Done()
			server.Stop()
			logger.Info("cardkeep stopped")
			return nil
		},
	}
}
