package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/disease-predictor/internal/mcp"
	"github.com/disease-predictor/internal/mcp/caching"
	"github.com/disease-predictor/internal/service"
)

func serveCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the predictor as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, *configFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cfg := a.config.GetConfig()

			var classifier service.ModelClassifier = a.registry
			var cache *caching.PredictionCache
			if cfg.Cache.Enabled {
				cache, err = caching.NewPredictionCache(a.registry, cfg.Cache.MaxItems)
				if err != nil {
					return err
				}
				classifier = cache
			}

			dispatcher := service.NewDispatcher(classifier, a.logger)
			server := mcp.NewServer(cfg, dispatcher, a.registry, a.logger)

			err = server.Start(ctx)
			if cache != nil {
				stats := cache.Stats()
				a.logger.WithField("hits", stats.Hits).
					WithField("misses", stats.Misses).
					WithField("entries", stats.Entries).
					Info("Prediction cache statistics")
			}
			if err != nil && ctx.Err() == nil {
				return err
			}
			a.logger.Info("Disease predictor stopped")
			return nil
		},
	}
}
