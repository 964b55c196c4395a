package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/roach88/resiou/internal/canon"
	"github.com/roach88/resiou/internal/evaluate"
	"github.com/roach88/resiou/internal/runtoken"
	"github.com/roach88/resiou/internal/score"
	"github.com/roach88/resiou/internal/store"
	"github.com/roach88/resiou/internal/testutil"
)

// Harness executes suite cases and records them in a store.
type Harness struct {
	store    *store.Store
	clock    *testutil.DeterministicClock
	tokenGen runtoken.Generator
	logger   *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithStore records cases in st instead of a fresh in-memory database.
// The caller keeps ownership of st.
func WithStore(st *store.Store) Option {
	return func(h *Harness) { h.store = st }
}

// WithLogger sets the logger for case diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// WithTokenGenerator replaces the fixed run token generator.
func WithTokenGenerator(g runtoken.Generator) Option {
	return func(h *Harness) { h.tokenGen = g }
}

// Run executes every case of suite in order.
//
// A case that cannot be evaluated (missing file, schema error) fails with its
// error recorded; it does not stop the suite. The returned error is reserved
// for harness setup failures.
func Run(suite *Suite, opts ...Option) (*Result, error) {
	h := &Harness{
		clock:    testutil.NewDeterministicClock(),
		tokenGen: testutil.NewFixedTokenGenerator(""),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.store == nil {
		st, err := store.Open(":memory:")
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory store: %w", err)
		}
		defer st.Close()
		h.store = st
	}

	ctx := context.Background()
	result := NewResult(suite.Name)
	for _, c := range suite.Cases {
		cr := h.runCase(ctx, c)
		result.Add(cr)
	}

	return result, nil
}

func (h *Harness) runCase(ctx context.Context, c Case) CaseResult {
	cr := CaseResult{
		Seq:    h.clock.Next(),
		Name:   c.Name,
		Expect: c.Expect,
	}

	ev, err := evaluate.Run(evaluate.Options{
		SubmissionPath: c.Submission,
		TargetPath:     c.Target,
		Dedupe:         c.Dedupe,
		Logger:         h.logger.With("case", c.Name),
	})
	if err != nil {
		cr.Error = err.Error()
		h.logger.Debug("case failed to evaluate", "case", c.Name, "error", err)
		return cr
	}

	cr.Score = ev.Score
	cr.Undefined = ev.Undefined
	cr.Pass = math.Abs(ev.Score-c.Expect) <= c.Tol()
	if !cr.Pass {
		cr.Error = fmt.Sprintf("score %s, expected %s (tolerance %g)",
			score.Format(ev.Score), score.Format(c.Expect), c.Tol())
	}

	token := h.tokenGen.Generate() + "/" + c.Name
	runID, err := canon.RunID(token, ev.SubmissionHash, ev.TargetHash, c.Dedupe)
	if err != nil {
		cr.Pass = false
		cr.Error = fmt.Sprintf("run id: %v", err)
		return cr
	}
	cr.RunID = runID

	_, err = h.store.WriteRun(ctx, store.Run{
		ID:             runID,
		RunToken:       token,
		SubmissionPath: c.Submission,
		TargetPath:     c.Target,
		SubmissionHash: ev.SubmissionHash,
		TargetHash:     ev.TargetHash,
		Dedupe:         c.Dedupe,
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
		cr.Pass = false
		cr.Error = fmt.Sprintf("record run: %v", err)
	}

	return cr
}
