package score

import "fmt"

// Confusion holds binary confusion counts over the positive class.
type Confusion struct {
	TP, FP, FN, TN int
}

// Count tallies confusion counts for two aligned binary vectors.
// Any nonzero value is a positive.
func Count(yTrue, yPred []int) (Confusion, error) {
	if len(yTrue) != len(yPred) {
		return Confusion{}, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(yTrue), len(yPred))
	}

	var c Confusion
	for i := range yTrue {
		t, p := yTrue[i] != 0, yPred[i] != 0
		switch {
		case t && p:
			c.TP++
		case p:
			c.FP++
		case t:
			c.FN++
		default:
			c.TN++
		}
	}
	return c, nil
}

// Jaccard returns tp / (tp + fp + fn). When the union is empty the score is
// 0 and undefined is true.
func (c Confusion) Jaccard() (score float64, undefined bool) {
	union := c.TP + c.FP + c.FN
	if union == 0 {
		return 0, true
	}
	return float64(c.TP) / float64(union), false
}

// Jaccard computes the binary Jaccard score of two aligned label vectors.
func Jaccard(yTrue, yPred []int) (float64, bool, error) {
	c, err := Count(yTrue, yPred)
	if err != nil {
		return 0, false, err
	}
	s, undefined := c.Jaccard()
	return s, undefined, nil
}
