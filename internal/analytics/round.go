package analytics

import "math"

// round2 rounds to two decimal places, the precision every reported percentage and volume uses.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
