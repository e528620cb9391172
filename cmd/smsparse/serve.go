package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keesa/smsparse/internal/artifact"
	"github.com/keesa/smsparse/internal/config"
	"github.com/keesa/smsparse/internal/engine"
	"github.com/keesa/smsparse/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve predictions over HTTP",
		Long: `Load the model artifacts and serve POST /predict.

The artifact directory is read once at startup. With --watch, changes to
the directory swap in a freshly loaded artifact set without a restart;
in-flight requests are unaffected.

Examples:
  smsparse serve
  smsparse serve --addr :8080 --watch`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default :5001)")
	cmd.Flags().Bool("watch", false, "reload artifacts when the directory changes")

	_ = viper.BindPFlag("server.watch", cmd.Flags().Lookup("watch"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	addr := config.ServerAddr()
	if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
		addr = flagAddr
	}

	dir := config.ArtifactsDir()
	provider := artifact.NewProvider(artifact.Load(dir, logger))

	if viper.GetBool("server.watch") {
		go func() {
			if err := artifact.Watch(ctx, dir, provider, logger); err != nil && ctx.Err() == nil {
				logger.Error("artifact watcher stopped", "error", err)
			}
		}()
	}

	eng := engine.New(provider, config.Threshold(), logger)
	srv := server.New(eng, provider, logger)

	if err := srv.Run(ctx, addr); err != nil &&
		!errors.Is(err, context.Canceled) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
