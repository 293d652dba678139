package cli

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mkord/ostinato/internal/store"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var database string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored performances",
		Long: `List stored performances in creation order.

Example:
  ostinato list --db perf.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, rootOpts, database)
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runList(cmd *cobra.Command, opts *RootOptions, database string) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	st, err := store.Open(database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	performances, err := st.ListPerformances(commandContext(cmd))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list performances", err)
	}

	if opts.Format == "json" {
		return out.Success(performances)
	}

	if len(performances) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No performances stored.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSEED\tEVENTS\tCREATED")
	for _, p := range performances {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", p.ID, p.Title, p.Seed, p.EventCount, p.CreatedAt)
	}
	return w.Flush()
}
