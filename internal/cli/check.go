package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/resiou/internal/harness"
	"github.com/roach88/resiou/internal/runtoken"
	"github.com/roach88/resiou/internal/score"
	"github.com/roach88/resiou/internal/store"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Update  bool
	History string
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <suite.yaml>",
		Short: "Run a regression suite of expected scores",
		Long: `Score every case of a suite file and compare against its expected score.

Case paths are resolved relative to the suite file. With --update, the
expected score of every failing case is rewritten in place.

Exit codes:
  0 - All cases passed (or were updated)
  1 - One or more cases failed
  2 - Suite file missing or invalid`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return usageError(rootOpts, cmd, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "rewrite expected scores of failing cases")
	cmd.Flags().StringVar(&opts.History, "history", "", "record case runs in this SQLite history database")

	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	suite, err := harness.LoadSuite(path)
	if err != nil {
		code := classifyError(err)
		if code == ErrCodeGeneric {
			code = ErrCodeSuite
		}
		return reportError(formatter, code, err)
	}
	formatter.VerboseLog("Loaded suite %q with %d cases", suite.Name, len(suite.Cases))

	hopts := []harness.Option{harness.WithLogger(formatter.Logger())}
	if opts.History != "" {
		st, err := store.Open(opts.History)
		if err != nil {
			return reportError(formatter, ErrCodeStore, fmt.Errorf("open history: %w", err))
		}
		defer st.Close()
		hopts = append(hopts, harness.WithStore(st), harness.WithTokenGenerator(runtoken.UUIDv7Generator{}))
	}

	result, err := harness.Run(suite, hopts...)
	if err != nil {
		return reportError(formatter, ErrCodeGeneric, err)
	}

	if opts.Update && !result.Pass {
		n, err := harness.UpdateExpectations(path, result)
		if err != nil {
			return reportError(formatter, ErrCodeSuite, err)
		}
		formatter.VerboseLog("Updated %d expectations in %s", n, path)
		if opts.Format == "json" {
			return formatter.Success(result)
		}
		printCheck(formatter.Writer, result)
		_, err = fmt.Fprintf(formatter.Writer, "updated %d expectations\n", n)
		return err
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		printCheck(formatter.Writer, result)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d cases failed", result.Failed, len(result.Cases)))
	}
	return nil
}

func printCheck(w io.Writer, r *harness.Result) {
	for _, c := range r.Cases {
		if c.Pass {
			fmt.Fprintf(w, "✓ %s %s\n", c.Name, score.Format(c.Score))
			continue
		}
		fmt.Fprintf(w, "✗ %s: %s\n", c.Name, c.Error)
	}
	fmt.Fprintf(w, "%s: %d passed, %d failed\n", r.Suite, r.Passed, r.Failed)
}
