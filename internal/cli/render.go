package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkord/ostinato/internal/perform"
	"github.com/mkord/ostinato/internal/score"
	"github.com/mkord/ostinato/internal/store"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Database string
	Seed     int64
	SeedSet  bool

	// IDGenerator allows overriding performance ID generation (for
	// testing). If nil, defaults to UUIDv7Generator.
	IDGenerator store.IDGenerator
}

// RenderResult is the render command's output payload.
type RenderResult struct {
	PerformanceID string  `json:"performance_id,omitempty"`
	Title         string  `json:"title"`
	Seed          int64   `json:"seed"`
	EventCount    int     `json:"event_count"`
	Span          float64 `json:"span"`
	TimelineHash  string  `json:"timeline_hash"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <piece.cue>",
		Short: "Render a piece into an event timeline",
		Long: `Render a piece into an event timeline.

Compiles the piece, runs its voices on a virtual clock, and prints a
summary with the timeline hash. With --db, the performance and its
events are stored for later replay verification.

Example:
  ostinato render song.cue
  ostinato render song.cue --db perf.db --seed 7`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SeedSet = cmd.Flags().Changed("seed")
			return runRender(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (optional)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "override the piece's random seed")

	return cmd
}

func runRender(cmd *cobra.Command, opts *RenderOptions, piecePath string) error {
	configureLogging(opts.Verbose)
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	piece, err := LoadPiece(piecePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load piece", err)
	}
	if opts.SeedSet {
		piece.Seed = opts.Seed
	}

	ctx := commandContext(cmd)
	timeline, err := perform.Render(ctx, piece)
	if err != nil {
		return WrapExitError(ExitFailure, "render failed", err)
	}

	hash, err := score.TimelineHash(timeline)
	if err != nil {
		return WrapExitError(ExitFailure, "hash failed", err)
	}

	result := RenderResult{
		Title:        piece.Title,
		Seed:         piece.Seed,
		EventCount:   timeline.Len(),
		Span:         timelineSpan(timeline),
		TimelineHash: hash,
	}

	if opts.Database != "" {
		id, err := storePerformance(ctx, opts, piece.Title, piece.Seed, hash, timeline)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to store performance", err)
		}
		result.PerformanceID = id
	}

	if opts.Format == "json" {
		return out.Success(result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %q: %d events over %v beats\n", result.Title, result.EventCount, result.Span)
	fmt.Fprintf(cmd.OutOrStdout(), "Timeline hash: %s\n", result.TimelineHash)
	if result.PerformanceID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Stored as performance %s\n", result.PerformanceID)
	}
	return nil
}

func storePerformance(ctx context.Context, opts *RenderOptions, title string, seed int64, hash string, timeline *score.Timeline) (string, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	idGen := opts.IDGenerator
	if idGen == nil {
		idGen = store.UUIDv7Generator{}
	}

	perf := store.Performance{
		ID:            idGen.Generate(),
		Title:         title,
		Seed:          seed,
		TimelineHash:  hash,
		EngineVersion: score.EngineVersion,
	}
	if err := st.WritePerformance(ctx, perf, timeline.Events()); err != nil {
		return "", err
	}
	return perf.ID, nil
}

// timelineSpan returns the time of the last event start, zero for an
// empty timeline.
func timelineSpan(timeline *score.Timeline) float64 {
	events := timeline.Ordered()
	if len(events) == 0 {
		return 0
	}
	return events[len(events)-1].Start
}

// configureLogging routes slog to stderr, at debug level when verbose.
func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
