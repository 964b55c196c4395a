package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/resiou/internal/runtoken"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the resiou command. Invoked without a subcommand it
// scores a submission.
func NewRootCommand() *cobra.Command {
	return newRootCommand(runtoken.UUIDv7Generator{})
}

func newRootCommand(tokens runtoken.Generator) *cobra.Command {
	opts := &RootOptions{}
	scoreOpts := &ScoreOptions{RootOptions: opts, tokens: tokens}

	cmd := &cobra.Command{
		Use:   "resiou",
		Short: "Score residue predictions with intersection over union",
		Long: `Score a residue-level submission against a ground-truth target.

The submission lists predicted residues per sample as a space-separated
string. Every (sample, residue) pair of the target is scored: pairs named in
the submission count as positive predictions, all others as negative, and the
binary Jaccard score of predictions against true labels is printed.

Exit codes:
  0 - Score printed
  1 - Check failure (suite cases did not match)
  2 - Command error (missing file, missing column, missing target, etc.)

Examples:
  resiou --submission submission.csv --target target.csv
  resiou --submission submission.csv --target target.csv --format json
  resiou --submission submission.csv --target target.csv --history runs.db`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError(opts, cmd, err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return usageError(opts, cmd,
					fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(scoreOpts, cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output on stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.Flags().StringVar(&scoreOpts.Submission, "submission", "", "submission CSV with id and prediction columns (required)")
	cmd.Flags().StringVar(&scoreOpts.Target, "target", "", "target CSV with id, residue_id and true columns")
	cmd.Flags().BoolVar(&scoreOpts.Dedupe, "dedupe", false, "drop repeated (id, residue_id) predictions before scoring")
	cmd.Flags().StringVar(&scoreOpts.History, "history", "", "append the run to this SQLite history database")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(opts, c, err)
	})

	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// usageError reports a flag or argument error as a command error.
func usageError(opts *RootOptions, cmd *cobra.Command, err error) error {
	return reportError(newFormatter(opts, cmd), ErrCodeInvalidArgs, err)
}

// newFormatter builds the formatter for cmd's output streams.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	format := opts.Format
	if !isValidFormat(format) {
		format = "text"
	}
	return &OutputFormatter{
		Format:    format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
