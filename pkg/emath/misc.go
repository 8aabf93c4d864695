package emath

import(
	"math"
	"sort"
)

// Some functions that only operate on basic types, that are useful

func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

func Clip(f, min, max float64) float64 {
	if f < min { return min }
	if f > max { return max }
	return f
}

// Median returns the middle value of `vals`, or the mean of the two
// middle values when there is an even number of them. It does not
// reorder `vals`. NaN for an empty slice.
func Median(vals []float64) float64 {
	n := len(vals)
	if n == 0 {
		return math.NaN()
	}

	sorted := make([]float64, n)
	copy(sorted, vals)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2.0
}
