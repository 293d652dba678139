package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mkord/ostinato/internal/perform"
	"github.com/mkord/ostinato/internal/score"
	"github.com/mkord/ostinato/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Piece    string
}

// ReplayResult is the replay command's JSON payload.
type ReplayResult struct {
	PerformanceID string `json:"performance_id"`
	StoredHash    string `json:"stored_hash"`
	ComputedHash  string `json:"computed_hash"`
	RenderedHash  string `json:"rendered_hash,omitempty"`
	EventCount    int    `json:"event_count"`
	Match         bool   `json:"match"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <performance-id>",
		Short: "Verify a stored performance against its timeline hash",
		Long: `Verify a stored performance against its timeline hash.

Re-reads the performance's events and recomputes the hash, detecting
rows altered after the original write. With --piece, the piece is also
re-rendered under the stored seed and its hash compared, proving the
render is still reproducible. Exits 1 on any mismatch.

Example:
  ostinato replay 0190d2a4-... --db perf.db
  ostinato replay 0190d2a4-... --db perf.db --piece song.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Piece, "piece", "", "re-render this piece and compare hashes")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReplay(cmd *cobra.Command, opts *ReplayOptions, performanceID string) error {
	configureLogging(opts.Verbose)
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

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
	verified, err := st.Verify(ctx, performanceID)
	if err != nil {
		return WrapExitError(ExitCommandError, "verification failed", err)
	}

	result := ReplayResult{
		PerformanceID: verified.PerformanceID,
		StoredHash:    verified.StoredHash,
		ComputedHash:  verified.ComputedHash,
		EventCount:    verified.EventCount,
		Match:         verified.Match,
	}

	if opts.Piece != "" {
		rendered, err := replayRender(cmd, opts, st, performanceID)
		if err != nil {
			return err
		}
		result.RenderedHash = rendered
		result.Match = result.Match && rendered == result.StoredHash
	}

	if opts.Format == "json" {
		if err := out.Success(result); err != nil {
			return err
		}
	} else if result.Match {
		fmt.Fprintf(cmd.OutOrStdout(), "Performance %s verified: %d events, hash %s\n",
			result.PerformanceID, result.EventCount, result.ComputedHash)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Performance %s MISMATCH:\n  stored   %s\n  computed %s\n",
			result.PerformanceID, result.StoredHash, result.ComputedHash)
		if result.RenderedHash != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  rendered %s\n", result.RenderedHash)
		}
	}

	if !result.Match {
		return NewExitError(ExitFailure, "timeline hash mismatch")
	}
	return nil
}

// replayRender re-renders the piece under the performance's stored seed
// and returns the fresh timeline hash.
func replayRender(cmd *cobra.Command, opts *ReplayOptions, st *store.Store, performanceID string) (string, error) {
	piece, err := LoadPiece(opts.Piece)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "failed to load piece", err)
	}

	ctx := commandContext(cmd)
	perf, err := st.ReadPerformance(ctx, performanceID)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "failed to read performance", err)
	}
	piece.Seed = perf.Seed

	timeline, err := perform.Render(ctx, piece)
	if err != nil {
		return "", WrapExitError(ExitFailure, "re-render failed", err)
	}

	hash, err := score.TimelineHash(timeline)
	if err != nil {
		return "", WrapExitError(ExitFailure, "hash failed", err)
	}
	return hash, nil
}
