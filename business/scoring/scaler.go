package scoring

import (
	"sort"

	"adRecoDashboard/pkg/mathutil"
)

// robustScale centers values on their median and divides by the
// interquartile range. A zero IQR maps every value to 0.
func robustScale(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	median := mathutil.Quantile(sorted, 0.5)
	iqr := mathutil.Quantile(sorted, 0.75) - mathutil.Quantile(sorted, 0.25)
	if iqr == 0 {
		return out
	}

	for i, v := range values {
		out[i] = (v - median) / iqr
	}
	return out
}
