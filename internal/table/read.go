package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptyFile is returned when a file has no header row.
	ErrEmptyFile = errors.New("file has no header row")

	// ErrNonBinaryLabel is returned when a target label is not 0 or 1.
	ErrNonBinaryLabel = errors.New("label is not binary")
)

// NAValues are the cell values read as null, matching the defaults of common
// dataframe readers.
var NAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a",
	"nan", "null",
}

var naSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(NAValues))
	for _, v := range NAValues {
		m[v] = struct{}{}
	}
	return m
}()

// IsNA reports whether a raw cell value is a null marker.
func IsNA(v string) bool {
	_, ok := naSet[v]
	return ok
}

// ReadSubmissionFile loads a submission table from path.
func ReadSubmissionFile(path string) ([]SubmissionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open submission: %w", err)
	}
	defer f.Close()

	records, err := ReadSubmission(f)
	if err != nil {
		return nil, fmt.Errorf("read submission %s: %w", path, err)
	}
	return records, nil
}

// ReadSubmission loads a submission table with at least the id and
// prediction columns.
func ReadSubmission(r io.Reader) ([]SubmissionRecord, error) {
	t, err := readCSV(r, ColID, ColPrediction)
	if err != nil {
		return nil, err
	}

	records := make([]SubmissionRecord, 0, len(t.rows))
	for _, row := range t.rows {
		pred := t.cell(row, ColPrediction)
		rec := SubmissionRecord{ID: t.cell(row, ColID), Prediction: pred}
		if IsNA(pred) {
			rec.Prediction = ""
			rec.Missing = true
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadTargetFile loads a target table from path.
func ReadTargetFile(path string) ([]TargetRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open target: %w", err)
	}
	defer f.Close()

	records, err := ReadTarget(f)
	if err != nil {
		return nil, fmt.Errorf("read target %s: %w", path, err)
	}
	return records, nil
}

// ReadTarget loads a target table with at least the id, residue_id and true
// columns. Labels must parse as the number 0 or 1. Null key cells mark the
// record Missing.
func ReadTarget(r io.Reader) ([]TargetRecord, error) {
	t, err := readCSV(r, ColID, ColResidueID, ColTrue)
	if err != nil {
		return nil, err
	}

	records := make([]TargetRecord, 0, len(t.rows))
	for i, row := range t.rows {
		label, err := parseLabel(t.cell(row, ColTrue))
		if err != nil {
			// header is line 1
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		rec := TargetRecord{
			ID:        t.cell(row, ColID),
			ResidueID: t.cell(row, ColResidueID),
			True:      label,
		}
		if IsNA(rec.ID) {
			rec.ID, rec.Missing = "", true
		}
		if IsNA(rec.ResidueID) {
			rec.ResidueID, rec.Missing = "", true
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseLabel(v string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNonBinaryLabel, v)
	}
	switch f {
	case 0:
		return 0, nil
	case 1:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrNonBinaryLabel, v)
	}
}

// csvTable is a raw header-indexed table.
type csvTable struct {
	index map[string]int
	rows  [][]string
}

// cell returns the named column of row, or "" for short rows.
func (t *csvTable) cell(row []string, col string) string {
	i := t.index[col]
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func readCSV(r io.Reader, required ...string) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		// first occurrence wins
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	return &csvTable{index: index, rows: rows}, nil
}
