package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStore opens a fresh database in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(id string) Run {
	return Run{
		ID:             id,
		RunToken:       "tok-" + id,
		SubmissionPath: "sub.csv",
		TargetPath:     "target.csv",
		SubmissionHash: "subhash",
		TargetHash:     "tgthash",
		Score:          0.5,
		TP:             1,
		FP:             1,
		FN:             0,
		TN:             3,
		TargetRows:     5,
		JoinedRows:     5,
		Unmatched:      2,
	}
}

func TestOpen_CreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)

	v, err := s.schemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, v)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err, "iteration %d", i)
		require.NoError(t, s.Close())
	}

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var name string
	err = s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='runs'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "runs", name)
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "history.db"))
	assert.Error(t, err)
}

func TestWriteRun_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r := testRun("run-a")
	r.Dedupe = true
	r.Undefined = true

	seq, err := s.WriteRun(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	got, err := s.ReadRun(ctx, "run-a")
	require.NoError(t, err)
	r.Seq = seq
	assert.Equal(t, r, got)
}

func TestWriteRun_DuplicateIDIsNoop(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq1, err := s.WriteRun(ctx, testRun("run-a"))
	require.NoError(t, err)

	dup := testRun("run-a")
	dup.Score = 0.9
	seq2, err := s.WriteRun(ctx, dup)
	require.NoError(t, err)
	assert.Equal(t, seq1, seq2)

	got, err := s.ReadRun(ctx, "run-a")
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.Score)
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "nope")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"r1", "r2", "r3"} {
		_, err := s.WriteRun(ctx, testRun(id))
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"r3", "r2", "r1"}, []string{runs[0].ID, runs[1].ID, runs[2].ID})

	limited, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "r3", limited[0].ID)
}

func TestListRuns_Empty(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestListRunsForInputs(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	a := testRun("a")
	b := testRun("b")
	b.TargetHash = "other"
	c := testRun("c")

	for _, r := range []Run{a, b, c} {
		_, err := s.WriteRun(ctx, r)
		require.NoError(t, err)
	}

	runs, err := s.ListRunsForInputs(ctx, "subhash", "tgthash")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "a", runs[1].ID)
}
