package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidateResult is the validate command's output payload.
type ValidateResult struct {
	Path   string   `json:"path"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <piece.cue>",
		Short: "Check a piece file without rendering it",
		Long: `Check a piece file without rendering it.

Compiles the piece and reports every structural problem with its source
position; a broken voice does not hide problems in later voices. Exits 1
when the piece is invalid.

Example:
  ostinato validate song.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, args[0])
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, opts *RootOptions, piecePath string) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	errs := ValidatePieceFile(piecePath)
	result := ValidateResult{Path: piecePath, Valid: len(errs) == 0}
	for _, err := range errs {
		result.Errors = append(result.Errors, err.Error())
	}

	if opts.Format == "json" {
		if err := out.Success(result); err != nil {
			return err
		}
	} else if result.Valid {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", piecePath)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s has %d problem(s):\n", piecePath, len(result.Errors))
		for _, msg := range result.Errors {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", msg)
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("piece is invalid: %d problem(s)", len(result.Errors)))
	}
	return nil
}
