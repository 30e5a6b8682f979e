package cli

import (
	"context"
	"log/slog"

	"github.com/ranfysvalle02/bridgebase/internal/backend"
	"github.com/ranfysvalle02/bridgebase/internal/config"
	"github.com/ranfysvalle02/bridgebase/internal/harness"
)

// backends bundles the two open stores with a teardown function.
type backends struct {
	mongo      *backend.Mongo
	relational *backend.Relational
}

func (b *backends) runner(cfg config.Config) *harness.Runner {
	return &harness.Runner{
		Document:   b.mongo,
		Relational: b.relational,
		Timeout:    cfg.BackendTimeout,
	}
}

func (b *backends) close(ctx context.Context) {
	if err := b.mongo.Close(ctx); err != nil {
		slog.Error("closing mongo", "error", err)
	}
	if err := b.relational.Close(ctx); err != nil {
		slog.Error("closing relational store", "error", err)
	}
}

// openBackends connects to both stores from config, closing the first if
// the second fails.
func openBackends(ctx context.Context, cfg config.Config) (*backends, error) {
	mongo, err := backend.OpenMongo(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to connect to mongo", err)
	}

	relational, err := backend.OpenRelational(ctx, cfg.RelationalDriver, cfg.RelationalDSN)
	if err != nil {
		_ = mongo.Close(ctx)
		return nil, WrapExitError(ExitCommandError, "failed to connect to relational store", err)
	}

	return &backends{mongo: mongo, relational: relational}, nil
}

// loadConfig resolves the effective configuration for a command.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return cfg, nil
}
