package score

import (
	"strconv"
	"strings"
)

// Format renders a score like a Python float repr: the shortest decimal
// that round-trips, with ".0" on integral values
// ("1.0", "0.5", "0.3333333333333333", "1e-05").
func Format(s float64) string {
	out := strconv.FormatFloat(s, 'g', -1, 64)
	if !strings.ContainsAny(out, ".eEn") {
		out += ".0"
	}
	return out
}
