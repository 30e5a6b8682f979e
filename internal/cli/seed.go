package cli

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/ranfysvalle02/bridgebase/internal/seed"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		records int
		rngSeed int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load identical sample data into both stores",
		Long: `Generate random user records ({name, age}) and load the same set into
the MongoDB collection and the relational table, replacing existing data.

Example:
  bridgebase seed --records 500000
  bridgebase seed --records 1000 --seed 42`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), rootOpts, cmd, records, rngSeed)
		},
	}

	cmd.Flags().IntVar(&records, "records", 0, "number of records (default from config)")
	cmd.Flags().Int64Var(&rngSeed, "seed", 0, "RNG seed for reproducible data (0 = time-based)")
	return cmd
}

func runSeed(ctx context.Context, opts *RootOptions, cmd *cobra.Command, records int, rngSeed int64) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if records <= 0 {
		records = cfg.SeedRecords
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	if ctx == nil {
		ctx = context.Background()
	}
	be, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer be.close(context.Background())

	slog.Info("generating sample data", "records", records)
	users := seed.Generate(rand.New(rand.NewSource(rngSeed)), records)

	loader := &seed.Loader{Mongo: be.mongo, Relational: be.relational}
	if err := loader.Load(ctx, users); err != nil {
		return WrapExitError(ExitCommandError, "seeding failed", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "loaded %d records into both stores\n", records)
	return nil
}
