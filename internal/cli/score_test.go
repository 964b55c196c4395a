package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const targetCSV = `id,residue_id,true
a,1,1
a,2,1
a,3,0
b,1,0
`

func TestScore_Text(t *testing.T) {
	tests := []struct {
		name       string
		submission string
		want       string
	}{
		{"perfect", "id,prediction\na,1 2\nb,\n", "1.0\n"},
		{"half", "id,prediction\na,1\nb,\n", "0.5\n"},
		{"disjoint", "id,prediction\na,3\nb,1\n", "0.0\n"},
		{"outside_target_dropped", "id,prediction\na,1 2 99\nc,4\n", "1.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			sub := writeFile(t, dir, "sub.csv", tt.submission)
			tgt := writeFile(t, dir, "target.csv", targetCSV)

			out, errOut, err := execute(t, "--submission", sub, "--target", tgt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.Empty(t, errOut)
		})
	}
}

func TestScore_JSON(t *testing.T) {
	dir := t.TempDir()
	sub := writeFile(t, dir, "sub.csv", "id,prediction\na,1 1 3\n")
	tgt := writeFile(t, dir, "target.csv", targetCSV)

	out, _, err := execute(t, "--format", "json", "--submission", sub, "--target", tgt)
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	// (a,1) appears twice: the target row fans out to two joined rows.
	assert.EqualValues(t, 4, resp.Data["target_rows"])
	assert.EqualValues(t, 5, resp.Data["joined_rows"])
	assert.EqualValues(t, 1, resp.Data["duplicate_rows"])
	assert.EqualValues(t, 2, resp.Data["tp"])
	assert.EqualValues(t, 1, resp.Data["fp"])
	assert.EqualValues(t, 1, resp.Data["fn"])
	assert.InDelta(t, 0.5, resp.Data["score"], 1e-12)
	assert.NotEmpty(t, resp.Data["submission_hash"])
	assert.NotContains(t, resp.Data, "run_id")
}

func TestScore_Dedupe(t *testing.T) {
	dir := t.TempDir()
	sub := writeFile(t, dir, "sub.csv", "id,prediction\na,1 1 3\n")
	tgt := writeFile(t, dir, "target.csv", targetCSV)

	out, _, err := execute(t, "--format", "json", "--dedupe", "--submission", sub, "--target", tgt)
	require.NoError(t, err)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.EqualValues(t, 4, resp.Data["joined_rows"])
	assert.Equal(t, true, resp.Data["dedupe"])
	assert.InDelta(t, 1.0/3.0, resp.Data["score"], 1e-12)
}

func TestScore_MissingTarget(t *testing.T) {
	// The submission does not exist: the target check must come first.
	out, errOut, err := execute(t, "--submission", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Error [E010]")
	assert.Contains(t, errOut, "target")
}

func TestScore_MissingSubmissionFlag(t *testing.T) {
	_, errOut, err := execute(t, "--target", "t.csv")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E011]")
}

func TestScore_Errors(t *testing.T) {
	tests := []struct {
		name       string
		submission string
		target     string
		code       string
	}{
		{"missing_prediction_column", "id,pred\na,1\n", targetCSV, "E020"},
		{"missing_true_column", "id,prediction\na,1\n", "id,residue_id\na,1\n", "E020"},
		{"non_binary_label", "id,prediction\na,1\n", "id,residue_id,true\na,1,2\n", "E020"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			sub := writeFile(t, dir, "sub.csv", tt.submission)
			tgt := writeFile(t, dir, "target.csv", tt.target)

			out, _, err := execute(t, "--format", "json", "--submission", sub, "--target", tgt)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestScore_FileNotFound(t *testing.T) {
	dir := t.TempDir()
	tgt := writeFile(t, dir, "target.csv", targetCSV)

	_, errOut, err := execute(t, "--submission", filepath.Join(dir, "missing.csv"), "--target", tgt)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E005]")
}

func TestScore_VerboseDiagnostics(t *testing.T) {
	dir := t.TempDir()
	sub := writeFile(t, dir, "sub.csv", "id,prediction\na,1 1 99\n")
	tgt := writeFile(t, dir, "target.csv", targetCSV)

	out, errOut, err := execute(t, "-v", "--submission", sub, "--target", tgt)
	require.NoError(t, err)
	assert.Equal(t, "0.6666666666666666\n", out)
	assert.Contains(t, errOut, "duplicate predictions")
	assert.Contains(t, errOut, "predictions outside target dropped")
}

func TestScore_NullTargetKeysNeverMatchEmptyPredictions(t *testing.T) {
	dir := t.TempDir()
	sub := writeFile(t, dir, "sub.csv", "id,prediction\ns1,\"\"\ns2,NA\n")
	tgt := writeFile(t, dir, "target.csv", "id,residue_id,true\ns1,A12,1\ns1,,1\ns2,NA,1\n")

	out, _, err := execute(t, "--format", "json", "--submission", sub, "--target", tgt)
	require.NoError(t, err)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.EqualValues(t, 0, resp.Data["tp"])
	assert.EqualValues(t, 3, resp.Data["fn"])
	assert.EqualValues(t, 2, resp.Data["unmatched_predictions"])
	assert.EqualValues(t, 0, resp.Data["score"])

	out, _, err = execute(t, "--submission", sub, "--target", tgt)
	require.NoError(t, err)
	assert.Equal(t, "0.0\n", out)
}

func TestScore_InvalidUTF8Rejected(t *testing.T) {
	dir := t.TempDir()
	sub := writeFile(t, dir, "sub.csv", "id,prediction\na,1 \xff\n")
	tgt := writeFile(t, dir, "target.csv", targetCSV)

	out, errOut, err := execute(t, "--submission", sub, "--target", tgt)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Empty(t, out)
	assert.Contains(t, errOut, "invalid UTF-8")
}
