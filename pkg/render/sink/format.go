package sink

import (
	"math"
	"strconv"
)

// num formats a coordinate in millimetres with at most six decimals.
func num(v float64) string {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
