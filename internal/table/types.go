package table

// Column names fixed by the file contract.
const (
	ColID         = "id"
	ColPrediction = "prediction"
	ColResidueID  = "residue_id"
	ColTrue       = "true"
)

// SubmissionRecord is one row of a submission file.
type SubmissionRecord struct {
	ID string `json:"id"`

	// Prediction is a space-separated list of residue identifiers.
	// Empty when Missing is set.
	Prediction string `json:"prediction"`

	// Missing marks a null prediction cell.
	Missing bool `json:"missing,omitempty"`
}

// PredictionRow is a single positive prediction for one residue of a sample.
type PredictionRow struct {
	ID         string `json:"id"`
	ResidueID  string `json:"residue_id"`
	Prediction int    `json:"prediction"`
}

// Key returns the join key of the row.
func (r PredictionRow) Key() Key {
	return Key{ID: r.ID, ResidueID: r.ResidueID}
}

// TargetRecord is one ground-truth (sample, residue) pair.
type TargetRecord struct {
	ID        string `json:"id"`
	ResidueID string `json:"residue_id"`
	True      int    `json:"true"`

	// Missing marks a null id or residue_id cell. The null cell is stored
	// as "" and the record never matches a prediction.
	Missing bool `json:"missing,omitempty"`
}

// Key returns the join key of the record.
func (r TargetRecord) Key() Key {
	return Key{ID: r.ID, ResidueID: r.ResidueID}
}

// JoinedRow is a target record with its aligned prediction.
// Prediction is 0 when no prediction row matched.
type JoinedRow struct {
	TargetRecord
	Prediction int  `json:"prediction"`
	Matched    bool `json:"matched"`
}

// Key is the compound (id, residue_id) join key.
type Key struct {
	ID        string
	ResidueID string
}
