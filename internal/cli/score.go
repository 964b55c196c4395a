package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/resiou/internal/canon"
	"github.com/roach88/resiou/internal/evaluate"
	"github.com/roach88/resiou/internal/runtoken"
	"github.com/roach88/resiou/internal/score"
	"github.com/roach88/resiou/internal/store"
)

// ScoreOptions holds flags for scoring.
type ScoreOptions struct {
	*RootOptions
	Submission string
	Target     string
	Dedupe     bool
	History    string // optional history database path

	tokens runtoken.Generator
}

// ScoreOutput is the JSON payload of a scoring run.
type ScoreOutput struct {
	*evaluate.Evaluation
	RunID string `json:"run_id,omitempty"`
	Seq   int64  `json:"seq,omitempty"`
}

func runScore(opts *ScoreOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Submission == "" {
		return reportError(formatter, ErrCodeInvalidArgs, fmt.Errorf("--submission is required"))
	}
	// Reject before reading anything: there is no score without a target.
	if opts.Target == "" {
		return reportError(formatter, ErrCodeTargetRequired, fmt.Errorf("%w (pass --target)", score.ErrTargetRequired))
	}

	formatter.VerboseLog("Scoring %s against %s", opts.Submission, opts.Target)

	ev, err := evaluate.Run(evaluate.Options{
		SubmissionPath: opts.Submission,
		TargetPath:     opts.Target,
		Dedupe:         opts.Dedupe,
		Logger:         formatter.Logger(),
	})
	if err != nil {
		return reportError(formatter, classifyError(err), err)
	}

	out := ScoreOutput{Evaluation: ev}
	if opts.History != "" {
		runID, seq, err := recordRun(cmd.Context(), opts, ev)
		if err != nil {
			return reportError(formatter, ErrCodeStore, err)
		}
		out.RunID, out.Seq = runID, seq
		formatter.VerboseLog("Recorded run %s (seq %d) in %s", runID, seq, opts.History)
	}

	if opts.Format == "json" {
		return formatter.Success(out)
	}
	return formatter.Success(score.Format(ev.Score))
}

// recordRun appends the evaluation to the history database.
func recordRun(ctx context.Context, opts *ScoreOptions, ev *evaluate.Evaluation) (string, int64, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(opts.History)
	if err != nil {
		return "", 0, fmt.Errorf("open history: %w", err)
	}
	defer st.Close()

	token := opts.tokens.Generate()
	runID, err := canon.RunID(token, ev.SubmissionHash, ev.TargetHash, opts.Dedupe)
	if err != nil {
		return "", 0, err
	}

	seq, err := st.WriteRun(ctx, store.Run{
		ID:             runID,
		RunToken:       token,
		SubmissionPath: opts.Submission,
		TargetPath:     opts.Target,
		SubmissionHash: ev.SubmissionHash,
		TargetHash:     ev.TargetHash,
		Dedupe:         opts.Dedupe,
		Score:          ev.Score,
		Undefined:      ev.Undefined,
		TP:             ev.TP,
		FP:             ev.FP,
		FN:             ev.FN,
		TN:             ev.TN,
		TargetRows:     ev.TargetRows,
		JoinedRows:     ev.JoinedRows,
		Unmatched:      ev.UnmatchedPredictions,
	})
	if err != nil {
		return "", 0, err
	}
	return runID, seq, nil
}
