package parse

import (
	"strings"

	"github.com/roach88/resiou/internal/table"
)

// Submission expands records into prediction rows, one per residue token.
// Input row order and in-row token order are preserved. Duplicates are kept.
func Submission(records []table.SubmissionRecord) []table.PredictionRow {
	rows := make([]table.PredictionRow, 0, len(records))
	for _, rec := range records {
		for _, token := range Tokens(rec.Prediction) {
			rows = append(rows, table.PredictionRow{
				ID:         rec.ID,
				ResidueID:  token,
				Prediction: 1,
			})
		}
	}
	return rows
}

// Tokens splits a prediction field into stripped residue ids.
// It always returns at least one token.
func Tokens(prediction string) []string {
	parts := strings.Split(strings.TrimSpace(prediction), " ")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Dedupe drops repeated (id, residue_id) pairs, keeping the first occurrence.
func Dedupe(rows []table.PredictionRow) []table.PredictionRow {
	seen := make(map[table.Key]struct{}, len(rows))
	out := make([]table.PredictionRow, 0, len(rows))
	for _, r := range rows {
		k := r.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Duplicates counts rows whose (id, residue_id) pair already appeared earlier.
func Duplicates(rows []table.PredictionRow) int {
	return len(rows) - len(Dedupe(rows))
}
