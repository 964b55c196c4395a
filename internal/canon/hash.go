package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/resiou/internal/table"
)

// Domain prefixes for fingerprints. The version suffix allows the encoding to
// change without colliding with older history entries.
const (
	DomainSubmission = "resiou/submission/v1"
	DomainTarget     = "resiou/target/v1"
	DomainRun        = "resiou/run/v1"
)

// HashWithDomain computes SHA256(domain + 0x00 + data) as hex.
func HashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SubmissionHash fingerprints a submission table. Null and empty predictions
// hash differently.
func SubmissionHash(records []table.SubmissionRecord) (string, error) {
	rows := make([]any, len(records))
	for i, r := range records {
		rows[i] = map[string]any{
			"id":         r.ID,
			"prediction": r.Prediction,
			"missing":    r.Missing,
		}
	}
	data, err := MarshalCanonical(rows)
	if err != nil {
		return "", fmt.Errorf("SubmissionHash: %w", err)
	}
	return HashWithDomain(DomainSubmission, data), nil
}

// TargetHash fingerprints a target table. Rows with a null key hash
// differently from rows with an empty one.
func TargetHash(records []table.TargetRecord) (string, error) {
	rows := make([]any, len(records))
	for i, r := range records {
		row := map[string]any{
			"id":         r.ID,
			"residue_id": r.ResidueID,
			"true":       r.True,
		}
		if r.Missing {
			row["missing"] = true
		}
		rows[i] = row
	}
	data, err := MarshalCanonical(rows)
	if err != nil {
		return "", fmt.Errorf("TargetHash: %w", err)
	}
	return HashWithDomain(DomainTarget, data), nil
}

// RunID computes the content-addressed identity of a scoring run.
func RunID(runToken, submissionHash, targetHash string, dedupe bool) (string, error) {
	data, err := MarshalCanonical(map[string]any{
		"run_token":       runToken,
		"submission_hash": submissionHash,
		"target_hash":     targetHash,
		"dedupe":          dedupe,
	})
	if err != nil {
		return "", fmt.Errorf("RunID: %w", err)
	}
	return HashWithDomain(DomainRun, data), nil
}
