package mathutil

import "math"

// Quantile returns the q-th quantile (0 <= q <= 1) of an ascending slice using
// linear interpolation between closest ranks, the same definition numpy and
// pandas use by default. Empty input yields NaN.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 || q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := pos - float64(lo)

	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// RoundHalfEven rounds x to the given number of decimals, ties to even.
func RoundHalfEven(x float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.RoundToEven(x*p) / p
}
