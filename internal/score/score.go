// Package score aligns predictions to the target universe and computes the
// binary Jaccard (intersection over union) score.
package score

import (
	"errors"

	"github.com/roach88/resiou/internal/table"
)

var (
	// ErrTargetRequired is returned when scoring is attempted without a target table.
	ErrTargetRequired = errors.New("target table is required for scoring")

	// ErrLengthMismatch is returned when label vectors differ in length.
	ErrLengthMismatch = errors.New("label vectors differ in length")
)

// Result is the outcome of scoring one submission against one target.
type Result struct {
	Score float64 `json:"score"`

	// Undefined is set when both vectors have no positives; Score is then 0.
	Undefined bool `json:"undefined,omitempty"`

	TP int `json:"tp"`
	FP int `json:"fp"`
	FN int `json:"fn"`
	TN int `json:"tn"`

	TargetRows int `json:"target_rows"`
	JoinedRows int `json:"joined_rows"`

	// UnmatchedPredictions counts prediction rows with no target pair.
	UnmatchedPredictions int `json:"unmatched_predictions"`
}

// FannedOut reports whether duplicate prediction keys multiplied target rows.
func (r *Result) FannedOut() bool {
	return r.JoinedRows > r.TargetRows
}

// Score joins preds onto target and computes the Jaccard score of the true
// labels against the aligned predictions. A nil target is rejected; an empty
// non-nil target scores as undefined.
func Score(target []table.TargetRecord, preds []table.PredictionRow) (*Result, error) {
	if target == nil {
		return nil, ErrTargetRequired
	}

	joined, unmatched := Join(target, preds)
	yTrue, yPred := Labels(joined)

	c, err := Count(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	s, undefined := c.Jaccard()

	return &Result{
		Score:                s,
		Undefined:            undefined,
		TP:                   c.TP,
		FP:                   c.FP,
		FN:                   c.FN,
		TN:                   c.TN,
		TargetRows:           len(target),
		JoinedRows:           len(joined),
		UnmatchedPredictions: unmatched,
	}, nil
}

// Labels splits joined rows into the true and predicted label vectors.
func Labels(joined []table.JoinedRow) (yTrue, yPred []int) {
	yTrue = make([]int, len(joined))
	yPred = make([]int, len(joined))
	for i, r := range joined {
		yTrue[i] = r.True
		yPred[i] = r.Prediction
	}
	return yTrue, yPred
}
