package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned by ReadRun when no run has the given ID.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded scoring run.
type Run struct {
	Seq            int64   `json:"seq"`
	ID             string  `json:"id"`
	RunToken       string  `json:"run_token"`
	SubmissionPath string  `json:"submission_path"`
	TargetPath     string  `json:"target_path"`
	SubmissionHash string  `json:"submission_hash"`
	TargetHash     string  `json:"target_hash"`
	Dedupe         bool    `json:"dedupe"`
	Score          float64 `json:"score"`
	Undefined      bool    `json:"undefined"`
	TP             int     `json:"tp"`
	FP             int     `json:"fp"`
	FN             int     `json:"fn"`
	TN             int     `json:"tn"`
	TargetRows     int     `json:"target_rows"`
	JoinedRows     int     `json:"joined_rows"`
	Unmatched      int     `json:"unmatched_predictions"`
}

// WriteRun appends a run and returns its assigned sequence number.
// Writing a run whose ID already exists is a no-op that returns the
// existing sequence number.
func (s *Store) WriteRun(ctx context.Context, r Run) (int64, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, run_token, submission_path, target_path, submission_hash, target_hash,
		 dedupe, score, undefined, tp, fp, fn, tn, target_rows, joined_rows, unmatched)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		r.ID, r.RunToken, r.SubmissionPath, r.TargetPath, r.SubmissionHash, r.TargetHash,
		r.Dedupe, r.Score, r.Undefined, r.TP, r.FP, r.FN, r.TN, r.TargetRows, r.JoinedRows, r.Unmatched,
	)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	var seq int64
	if err := s.db.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, r.ID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: read seq: %w", err)
	}
	return seq, nil
}

const runColumns = `seq, id, run_token, submission_path, target_path, submission_hash, target_hash,
	dedupe, score, undefined, tp, fp, fn, tn, target_rows, joined_rows, unmatched`

// ReadRun returns the run with the given ID.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}
	return r, nil
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all runs.
// Returns an empty slice, not nil, when there are none.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// ListRunsForInputs returns runs scored on the given input fingerprints, newest first.
func (s *Store) ListRunsForInputs(ctx context.Context, submissionHash, targetHash string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE submission_hash = ? AND target_hash = ?
		ORDER BY seq DESC
	`, submissionHash, targetHash)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	err := sc.Scan(
		&r.Seq, &r.ID, &r.RunToken, &r.SubmissionPath, &r.TargetPath,
		&r.SubmissionHash, &r.TargetHash, &r.Dedupe, &r.Score, &r.Undefined,
		&r.TP, &r.FP, &r.FN, &r.TN, &r.TargetRows, &r.JoinedRows, &r.Unmatched,
	)
	return r, err
}
