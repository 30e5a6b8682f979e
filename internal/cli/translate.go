package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ranfysvalle02/bridgebase/internal/sqlparse"
	"github.com/ranfysvalle02/bridgebase/internal/translate"
)

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <sql>",
		Short: "Translate a SQL SELECT into a MongoDB find query",
		Long: `Translate a restricted SQL SELECT statement into its MongoDB form
without executing anything.

Example:
  bridgebase translate "SELECT name, age FROM users WHERE age > 21 LIMIT 5"
  bridgebase translate --format json "SELECT * FROM users"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runTranslate(opts *RootOptions, cmd *cobra.Command, sql string) error {
	tr, err := translate.Translate(sql)
	if err != nil {
		return translationExitError(sql, err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.JSON(tr)
	}
	return out.Success(describeTranslation(tr))
}

// translationExitError renders a translation failure with a caret marking
// the offset, the way a SQL shell would.
func translationExitError(sql string, err error) error {
	var se *sqlparse.SyntaxError
	if errors.As(err, &se) && se.Offset <= len(sql) {
		marker := strings.Repeat(" ", se.Offset) + "^"
		return NewExitError(ExitFailure, fmt.Sprintf("%s\n  %s\n  %s", err, sql, marker))
	}
	return WrapExitError(ExitFailure, "translation failed", err)
}

func describeTranslation(tr *translate.Translation) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "collection: %s\n", tr.Collection)
	if tr.Star {
		sb.WriteString("columns:    *\n")
	} else {
		fmt.Fprintf(&sb, "columns:    %s\n", strings.Join(tr.Columns, ", "))
	}
	fmt.Fprintf(&sb, "filter:     %v\n", tr.Filter)
	if tr.Limit != nil {
		fmt.Fprintf(&sb, "limit:      %d\n", *tr.Limit)
	}
	if tr.Offset != nil {
		fmt.Fprintf(&sb, "offset:     %d\n", *tr.Offset)
	}
	return strings.TrimRight(sb.String(), "\n")
}
