package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSubmission(t *testing.T) {
	in := "id,prediction\n" +
		"s1,A12 B7 C3\n" +
		"s2,\n" +
		"s3,NaN\n" +
		"s4, D1 \n"

	records, err := ReadSubmission(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, SubmissionRecord{ID: "s1", Prediction: "A12 B7 C3"}, records[0])
	assert.Equal(t, SubmissionRecord{ID: "s2", Prediction: "", Missing: true}, records[1])
	assert.Equal(t, SubmissionRecord{ID: "s3", Prediction: "", Missing: true}, records[2])
	assert.Equal(t, SubmissionRecord{ID: "s4", Prediction: " D1 "}, records[3])
}

func TestReadSubmission_ExtraColumnsAndOrder(t *testing.T) {
	in := "prediction,notes,id\nX1 X2,hello,s1\n"

	records, err := ReadSubmission(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "s1", records[0].ID)
	assert.Equal(t, "X1 X2", records[0].Prediction)
}

func TestReadSubmission_ShortRowIsNull(t *testing.T) {
	in := "id,prediction\ns1\n"

	records, err := ReadSubmission(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Missing)
}

func TestReadSubmission_StripsBOM(t *testing.T) {
	in := "\ufeffid,prediction\ns1,A\n"

	records, err := ReadSubmission(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "s1", records[0].ID)
}

func TestReadSubmission_MissingColumn(t *testing.T) {
	_, err := ReadSubmission(strings.NewReader("id,residues\ns1,A\n"))
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), `"prediction"`)
}

func TestReadSubmission_Empty(t *testing.T) {
	_, err := ReadSubmission(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptyFile)
}

func TestReadTarget(t *testing.T) {
	in := "id,residue_id,true\n" +
		"s1,A12,1\n" +
		"s1,B7,0\n" +
		"s2,C3,1.0\n"

	records, err := ReadTarget(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []TargetRecord{
		{ID: "s1", ResidueID: "A12", True: 1},
		{ID: "s1", ResidueID: "B7", True: 0},
		{ID: "s2", ResidueID: "C3", True: 1},
	}, records)
}

func TestReadTarget_NullKeys(t *testing.T) {
	in := "id,residue_id,true\n" +
		"s1,A12,1\n" +
		"s1,,1\n" +
		"s2,NA,1\n" +
		"NaN,B7,0\n"

	records, err := ReadTarget(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []TargetRecord{
		{ID: "s1", ResidueID: "A12", True: 1},
		{ID: "s1", ResidueID: "", True: 1, Missing: true},
		{ID: "s2", ResidueID: "", True: 1, Missing: true},
		{ID: "", ResidueID: "B7", True: 0, Missing: true},
	}, records)
}

func TestReadTarget_NonBinaryLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
	}{
		{"two", "2"},
		{"text", "yes"},
		{"missing", ""},
		{"fraction", "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := "id,residue_id,true\ns1,A,1\ns1,B," + tt.label + "\n"
			_, err := ReadTarget(strings.NewReader(in))
			require.ErrorIs(t, err, ErrNonBinaryLabel)
			assert.Contains(t, err.Error(), "line 3")
		})
	}
}

func TestReadTarget_MissingTrueColumn(t *testing.T) {
	_, err := ReadTarget(strings.NewReader("id,residue_id\ns1,A\n"))
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), `"true"`)
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub.csv")
	tgt := filepath.Join(dir, "target.csv")
	require.NoError(t, os.WriteFile(sub, []byte("id,prediction\ns1,A\n"), 0644))
	require.NoError(t, os.WriteFile(tgt, []byte("id,residue_id,true\ns1,A,1\n"), 0644))

	subs, err := ReadSubmissionFile(sub)
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	targets, err := ReadTargetFile(tgt)
	require.NoError(t, err)
	assert.Len(t, targets, 1)
}

func TestReadFiles_NotFound(t *testing.T) {
	_, err := ReadSubmissionFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = ReadTargetFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsNA(t *testing.T) {
	for _, v := range []string{"", "NA", "NaN", "null", "None", "<NA>", "#N/A"} {
		assert.True(t, IsNA(v), v)
	}
	for _, v := range []string{"A12", " ", "0", "na "} {
		assert.False(t, IsNA(v), v)
	}
}
