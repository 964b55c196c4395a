// Package evaluate runs the full scoring pipeline over files on disk:
// read both tables, expand the submission, join and score.
package evaluate

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/resiou/internal/canon"
	"github.com/roach88/resiou/internal/parse"
	"github.com/roach88/resiou/internal/score"
	"github.com/roach88/resiou/internal/table"
)

// Options selects the inputs and switches of one evaluation.
type Options struct {
	SubmissionPath string
	TargetPath     string

	// Dedupe drops repeated (id, residue_id) predictions before the join.
	Dedupe bool

	// Logger receives debug diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Evaluation is a scored submission with the fingerprints of its inputs.
type Evaluation struct {
	*score.Result

	SubmissionHash string `json:"submission_hash"`
	TargetHash     string `json:"target_hash"`

	SubmissionRows int  `json:"submission_rows"`
	PredictionRows int  `json:"prediction_rows"`
	DuplicateRows  int  `json:"duplicate_rows"`
	Dedupe         bool `json:"dedupe"`
}

// Run evaluates a submission file against a target file.
// An empty TargetPath fails with score.ErrTargetRequired before any file is read.
func Run(opts Options) (*Evaluation, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if opts.TargetPath == "" {
		return nil, score.ErrTargetRequired
	}

	submission, err := table.ReadSubmissionFile(opts.SubmissionPath)
	if err != nil {
		return nil, err
	}
	target, err := table.ReadTargetFile(opts.TargetPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded tables",
		"submission", opts.SubmissionPath, "submission_rows", len(submission),
		"target", opts.TargetPath, "target_rows", len(target))

	return Tables(submission, target, opts.Dedupe, logger)
}

// Tables evaluates already loaded tables.
func Tables(submission []table.SubmissionRecord, target []table.TargetRecord, dedupe bool, logger *slog.Logger) (*Evaluation, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	subHash, err := canon.SubmissionHash(submission)
	if err != nil {
		return nil, err
	}
	var tgtHash string
	if target != nil {
		if tgtHash, err = canon.TargetHash(target); err != nil {
			return nil, err
		}
	}

	preds := parse.Submission(submission)
	dups := parse.Duplicates(preds)
	if dups > 0 {
		logger.Debug("duplicate predictions", "rows", dups, "dedupe", dedupe)
	}
	if dedupe {
		preds = parse.Dedupe(preds)
	}

	res, err := score.Score(target, preds)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}
	if res.FannedOut() {
		logger.Debug("duplicate predictions multiplied target rows",
			"target_rows", res.TargetRows, "joined_rows", res.JoinedRows)
	}
	if res.UnmatchedPredictions > 0 {
		logger.Debug("predictions outside target dropped", "rows", res.UnmatchedPredictions)
	}
	if res.Undefined {
		logger.Debug("no positives in either vector, score set to 0")
	}

	return &Evaluation{
		Result:         res,
		SubmissionHash: subHash,
		TargetHash:     tgtHash,
		SubmissionRows: len(submission),
		PredictionRows: len(preds),
		DuplicateRows:  dups,
		Dedupe:         dedupe,
	}, nil
}
