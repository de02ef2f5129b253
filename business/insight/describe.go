package insight

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"adRecoDashboard/domain"
	"adRecoDashboard/pkg/mathutil"
)

// Describe computes count, mean, sample std, min, quartiles and max of every
// column, ignoring NaN values.
func Describe(columns []domain.NumericColumn) []domain.ColumnSummary {
	out := make([]domain.ColumnSummary, len(columns))
	for i, col := range columns {
		out[i] = describeColumn(col)
	}
	return out
}

func describeColumn(col domain.NumericColumn) domain.ColumnSummary {
	values := dropNaN(col.Values)
	sum := domain.ColumnSummary{Column: col.Name, Count: len(values)}
	if len(values) == 0 {
		return sum
	}

	sort.Float64s(values)

	sum.Mean = defined(stat.Mean(values, nil))
	if len(values) > 1 {
		sum.Std = defined(stat.StdDev(values, nil))
	}
	sum.Min = defined(floats.Min(values))
	sum.Q25 = defined(mathutil.Quantile(values, 0.25))
	sum.Median = defined(mathutil.Quantile(values, 0.5))
	sum.Q75 = defined(mathutil.Quantile(values, 0.75))
	sum.Max = defined(floats.Max(values))
	return sum
}

// Correlation returns the Pearson correlation of every column pair over
// the rows where both values are present.
func Correlation(columns []domain.NumericColumn) domain.CorrelationMatrix {
	m := domain.CorrelationMatrix{
		Columns: make([]string, len(columns)),
		Values:  make([][]*float64, len(columns)),
	}
	for i, col := range columns {
		m.Columns[i] = col.Name
		m.Values[i] = make([]*float64, len(columns))
	}

	for i := range columns {
		for j := i; j < len(columns); j++ {
			r := pairwiseCorrelation(columns[i].Values, columns[j].Values)
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pairwiseCorrelation(a, b []float64) *float64 {
	n := min(len(a), len(b))
	x := make([]float64, 0, n)
	y := make([]float64, 0, n)
	for k := 0; k < n; k++ {
		if math.IsNaN(a[k]) || math.IsNaN(b[k]) {
			continue
		}
		x = append(x, a[k])
		y = append(y, b[k])
	}
	if len(x) < 2 {
		return nil
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return nil
	}

	return defined(stat.Correlation(x, y, nil))
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func defined(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
