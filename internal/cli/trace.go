package cli

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mkord/ostinato/internal/perform"
	"github.com/mkord/ostinato/internal/score"
	"github.com/mkord/ostinato/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database    string
	Performance string
	Channel     int
	From        float64
	To          float64
}

// TraceResult is the trace command's JSON payload.
type TraceResult struct {
	Source string        `json:"source"` // piece path or performance ID
	Events []score.Event `json:"events"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace [piece.cue]",
		Short: "Print a timeline event by event",
		Long: `Print a timeline event by event, in time order.

With a piece file, the piece is rendered and its timeline printed. With
--db and --performance, the stored events are printed instead, optionally
narrowed by channel or time window.

Example:
  ostinato trace song.cue
  ostinato trace --db perf.db --performance 0190d2a4-... --channel 1
  ostinato trace --db perf.db --performance 0190d2a4-... --from 8 --to 16`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && opts.Performance != "" {
				return NewExitError(ExitCommandError, "pass a piece file or --performance, not both")
			}
			if len(args) == 1 {
				return runTracePiece(cmd, opts, args[0])
			}
			if opts.Performance == "" || opts.Database == "" {
				return NewExitError(ExitCommandError, "need a piece file, or --db with --performance")
			}
			return runTraceStored(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database")
	cmd.Flags().StringVar(&opts.Performance, "performance", "", "stored performance ID")
	cmd.Flags().IntVar(&opts.Channel, "channel", -1, "only events on this channel")
	cmd.Flags().Float64Var(&opts.From, "from", 0, "only events starting at or after this time")
	cmd.Flags().Float64Var(&opts.To, "to", 0, "only events starting before this time")

	return cmd
}

func runTracePiece(cmd *cobra.Command, opts *TraceOptions, piecePath string) error {
	configureLogging(opts.Verbose)

	piece, err := LoadPiece(piecePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load piece", err)
	}

	timeline, err := perform.Render(commandContext(cmd), piece)
	if err != nil {
		return WrapExitError(ExitFailure, "render failed", err)
	}

	return printTrace(cmd, opts, piecePath, timeline.Ordered())
}

func runTraceStored(cmd *cobra.Command, opts *TraceOptions) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := commandContext(cmd)
	if _, err := st.ReadPerformance(ctx, opts.Performance); err != nil {
		return WrapExitError(ExitCommandError, "performance not found", err)
	}

	filter := store.EventFilter{}
	if cmd.Flags().Changed("channel") {
		filter.Channel = &opts.Channel
	}
	if cmd.Flags().Changed("from") {
		filter.From = &opts.From
	}
	if cmd.Flags().Changed("to") {
		filter.To = &opts.To
	}

	events, err := st.ReadEvents(ctx, opts.Performance, filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read events", err)
	}

	return printTrace(cmd, opts, opts.Performance, events)
}

func printTrace(cmd *cobra.Command, opts *TraceOptions, source string, events []score.Event) error {
	if opts.Format == "json" {
		out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
		return out.Success(TraceResult{Source: source, Events: events})
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "START\tDUR\tPITCH\tAMP\tCHANNEL")
	for _, ev := range events {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%d\n", ev.Start, ev.Dur, ev.Pitch, ev.Amp, ev.Channel)
	}
	return w.Flush()
}

// commandContext returns the command's context, falling back to
// Background for direct invocations in tests.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
