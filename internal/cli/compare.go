package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ranfysvalle02/bridgebase/internal/harness"
)

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	var includeRows bool

	cmd := &cobra.Command{
		Use:   "compare <sql>",
		Short: "Run one query against both backends and compare",
		Long: `Translate the statement, run the translation against MongoDB and the
untouched SQL against the relational store in parallel, and print counts
and timings side by side.

Exits 1 when translation fails or the backends disagree on row count.

Example:
  bridgebase compare "SELECT * FROM users WHERE age >= 65"
  bridgebase compare --format json --rows "SELECT name FROM users LIMIT 3"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.Context(), rootOpts, cmd, args[0], includeRows)
		},
	}

	cmd.Flags().BoolVar(&includeRows, "rows", false, "include row data in the report")
	return cmd
}

func runCompare(ctx context.Context, opts *RootOptions, cmd *cobra.Command, sql string, includeRows bool) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	be, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer be.close(context.Background())

	runner := be.runner(cfg)
	runner.IncludeRows = includeRows

	report, err := runner.Compare(ctx, sql)
	if err != nil {
		return translationExitError(sql, err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		if err := out.JSON(report); err != nil {
			return err
		}
	} else {
		if err := out.Success(describeReport(report)); err != nil {
			return err
		}
	}

	if !report.RowParity {
		return NewExitError(ExitFailure, "backends disagree")
	}
	return nil
}

func describeReport(report *harness.Report) string {
	names := make([]string, 0, len(report.Backends))
	for name := range report.Backends {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	fmt.Fprintf(&sb, "query: %s\n", report.Query)
	for _, name := range names {
		outcome := report.Backends[name]
		fmt.Fprintf(&sb, "%-10s status=%-7s count=%-8d elapsed=%s\n",
			name, outcome.Status, outcome.Count, outcome.Elapsed)
		if outcome.Error != "" {
			fmt.Fprintf(&sb, "%-10s error: %s\n", "", outcome.Error)
		}
	}
	fmt.Fprintf(&sb, "total: %s  parity: %t", report.TotalElapsed, report.RowParity)
	return sb.String()
}
