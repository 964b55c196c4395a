package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/resiou/internal/score"
	"github.com/roach88/resiou/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded scoring runs, newest first",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError(rootOpts, cmd, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "history database path (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.DB == "" {
		return reportError(formatter, ErrCodeInvalidArgs, fmt.Errorf("--db is required"))
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return reportError(formatter, ErrCodeStore, err)
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		return reportError(formatter, ErrCodeStore, err)
	}

	if opts.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		_, err := fmt.Fprintln(formatter.Writer, "no runs recorded")
		return err
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tSCORE\tDEDUPE\tSUBMISSION\tTARGET\tRUN")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%t\t%s\t%s\t%s\n",
			r.Seq, score.Format(r.Score), r.Dedupe, r.SubmissionPath, r.TargetPath, shortID(r.ID))
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
