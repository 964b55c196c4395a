package score

import "github.com/roach88/resiou/internal/table"

// Join left-joins target to preds on (id, residue_id).
//
// Every target row is kept. A target row matching k prediction rows appears
// k times, in prediction order; an unmatched row appears once with
// Prediction 0. Target rows with a null key never match. Keys compare as
// exact strings. The second return value counts prediction rows that matched
// no target pair.
func Join(target []table.TargetRecord, preds []table.PredictionRow) ([]table.JoinedRow, int) {
	index := make(map[table.Key][]int, len(preds))
	for i, p := range preds {
		k := p.Key()
		index[k] = append(index[k], i)
	}

	used := make(map[table.Key]bool, len(index))
	joined := make([]table.JoinedRow, 0, len(target))
	for _, t := range target {
		k := t.Key()
		var matches []int
		if !t.Missing {
			matches = index[k]
		}
		if len(matches) == 0 {
			joined = append(joined, table.JoinedRow{TargetRecord: t})
			continue
		}
		used[k] = true
		for _, i := range matches {
			joined = append(joined, table.JoinedRow{
				TargetRecord: t,
				Prediction:   preds[i].Prediction,
				Matched:      true,
			})
		}
	}

	unmatched := 0
	for k, rows := range index {
		if !used[k] {
			unmatched += len(rows)
		}
	}

	return joined, unmatched
}
