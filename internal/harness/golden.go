package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/resiou/internal/canon"
	"github.com/roach88/resiou/internal/score"
)

// Snapshot renders r as canonical JSON. Scores are rendered as decimal
// strings since canonical JSON carries no floats. Run IDs depend on the run
// token generator; withRunIDs keeps them.
func Snapshot(r *Result, withRunIDs bool) ([]byte, error) {
	cases := make([]any, len(r.Cases))
	for i, c := range r.Cases {
		m := map[string]any{
			"seq":    c.Seq,
			"name":   c.Name,
			"pass":   c.Pass,
			"expect": score.Format(c.Expect),
			"score":  score.Format(c.Score),
		}
		if c.Undefined {
			m["undefined"] = true
		}
		if withRunIDs && c.RunID != "" {
			m["run_id"] = c.RunID
		}
		if c.Error != "" {
			m["error"] = c.Error
		}
		cases[i] = m
	}

	return canon.MarshalCanonical(map[string]any{
		"suite":  r.Suite,
		"pass":   r.Pass,
		"passed": r.Passed,
		"failed": r.Failed,
		"cases":  cases,
	})
}

// RunWithGolden runs suite and compares its snapshot with
// testdata/golden/{suite.Name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, suite *Suite) (*Result, error) {
	t.Helper()

	result, err := Run(suite)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, suite.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result with its golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := Snapshot(result, true)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
