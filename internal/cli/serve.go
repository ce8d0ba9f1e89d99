package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/CharlieGitDB/database-studio/config"
	"github.com/CharlieGitDB/database-studio/database"
	"github.com/CharlieGitDB/database-studio/logger"
	"github.com/CharlieGitDB/database-studio/server"
	"github.com/CharlieGitDB/database-studio/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the workbench HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
			pool := database.NewPool(cfg.Connections, log)

			queries, err := store.NewFileStore(cfg.Storage.Dir)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg, pool, queries, log)
			err = srv.Start(ctx)

			closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if closeErr := pool.Close(closeCtx); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close connections")
			}
			return err
		},
	}
}
