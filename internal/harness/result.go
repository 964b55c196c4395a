package harness

// CaseResult is the outcome of one case.
type CaseResult struct {
	Seq       int64   `json:"seq"`
	Name      string  `json:"name"`
	Pass      bool    `json:"pass"`
	Expect    float64 `json:"expect"`
	Score     float64 `json:"score"`
	Undefined bool    `json:"undefined,omitempty"`
	RunID     string  `json:"run_id,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// Result is the outcome of a suite.
type Result struct {
	Suite  string       `json:"suite"`
	Pass   bool         `json:"pass"`
	Cases  []CaseResult `json:"cases"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
}

// NewResult creates an empty passing result.
func NewResult(suite string) *Result {
	return &Result{
		Suite: suite,
		Pass:  true,
		Cases: []CaseResult{},
	}
}

// Add appends a case result and updates the totals.
func (r *Result) Add(c CaseResult) {
	r.Cases = append(r.Cases, c)
	if c.Pass {
		r.Passed++
		return
	}
	r.Failed++
	r.Pass = false
}
