// Package harness runs regression suites of scoring cases.
//
// A suite pins expected scores for (submission, target) pairs so changes to
// parsing or scoring show up as failing cases.
//
// # Suite Format
//
//	name: baseline
//	description: "Reference submissions for the public target"
//	cases:
//	  - name: perfect
//	    submission: data/sub_perfect.csv
//	    target: data/target.csv
//	    expect: 1.0
//	  - name: duplicates_deduped
//	    submission: data/sub_dups.csv
//	    target: data/target.csv
//	    expect: 0.5
//	    tolerance: 1.0e-6
//	    dedupe: true
//
// Paths are relative to the suite file. Suites are decoded strictly (unknown
// fields are errors) and checked against the CUE schema in suite.cue before
// any case runs.
//
// # Deterministic Runs
//
// Every case is recorded in a store with a fixed run token and a logical
// clock, so the run IDs and sequence numbers in a Result are identical across
// runs and can be compared with golden files:
//
//	go test ./internal/harness -update
package harness
