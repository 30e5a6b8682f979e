package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ranfysvalle02/bridgebase/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the comparison HTTP server",
		Long: `Start the HTTP server exposing /speedtest, /translate, /health, and
/inspect. The server connects to both backing stores at startup and shuts
down gracefully on SIGINT or SIGTERM.

Example:
  bridgebase serve
  bridgebase serve --listen :8080 --config ./bridgebase.yaml --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts, listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	return cmd
}

func runServe(parentCtx context.Context, opts *RootOptions, listen string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Listen = listen
	}

	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	slog.Info("connecting to backends",
		"mongo", cfg.MongoURI, "relational", cfg.RelationalDriver)
	be, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer be.close(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	srv := &server.Server{
		Runner:    be.runner(cfg),
		Inspector: be.mongo,
	}
	if err := srv.Serve(ctx, cfg.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return WrapExitError(ExitCommandError, "http server failed", err)
	}
	return nil
}
