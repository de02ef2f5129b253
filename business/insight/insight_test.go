//go:build !integration

package insight

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adRecoDashboard/domain"
)

func intPtr(v int) *int { return &v }

func TestKPI(t *testing.T) {
	records := []domain.PlacementRecord{
		{CPA: 1000, CVR: 0.02, ConversionCount: 3},
		{CPA: 3000, CVR: 0.04, ConversionCount: 5},
	}

	got := KPI(records)
	assert.False(t, got.Empty)
	assert.Equal(t, 2, got.Rows)
	assert.InDelta(t, 2000, got.AvgCPA, 1e-9)
	assert.InDelta(t, 3.0, got.AvgCVRPercent, 1e-9)
	assert.InDelta(t, 4.0, got.AvgConversionCount, 1e-9)

	assert.Equal(t, domain.ClusterKPI{Empty: true}, KPI(nil))
}

func TestMonthToQuarter(t *testing.T) {
	tests := map[string]string{
		"1월":  "1Q",
		"3월":  "1Q",
		"4월":  "2Q",
		"12월": "4Q",
		"7":   "3Q",
		"2Q":  "2Q",
		"13월": "13월",
		"":    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, MonthToQuarter(in), "month %q", in)
	}
}

func TestDistribution(t *testing.T) {
	rows := []domain.ClusterMappingRow{
		{Industry: "게임", OSType: "Android", Month: "1월", ClusterID: intPtr(2)},
		{Industry: "음식", OSType: "Web", Month: "2월", ClusterID: intPtr(2)},
		{Industry: "음식", OSType: "android", Month: "7월", ClusterID: intPtr(2)},
		{Industry: " 게임 ", OSType: " Web ", Month: "10월", ClusterID: intPtr(2)},
		{Industry: "법", OSType: "iOS", Month: "1월", ClusterID: intPtr(5)},
		{Industry: "법", OSType: "iOS", Month: "1월", ClusterID: nil},
	}

	got := Distribution(rows, 2)
	want := []domain.DistributionBucket{
		{Category: CategoryIndustry, Label: "게임", Count: 2},
		{Category: CategoryIndustry, Label: "음식", Count: 2},
		{Category: CategoryOS, Label: "android", Count: 2},
		{Category: CategoryOS, Label: "web", Count: 2},
		{Category: CategoryQuarter, Label: "1Q", Count: 2},
		{Category: CategoryQuarter, Label: "3Q", Count: 1},
		{Category: CategoryQuarter, Label: "4Q", Count: 1},
	}
	assert.Equal(t, want, got)

	assert.Empty(t, Distribution(rows, 42))
}

func TestDescribe(t *testing.T) {
	cols := []domain.NumericColumn{
		{Name: "CVR", Values: []float64{1, 2, 3, 4, math.NaN()}},
		{Name: "single", Values: []float64{7}},
		{Name: "blank", Values: []float64{math.NaN()}},
	}

	got := Describe(cols)
	require.Len(t, got, 3)

	cvr := got[0]
	assert.Equal(t, "CVR", cvr.Column)
	assert.Equal(t, 4, cvr.Count)
	require.NotNil(t, cvr.Mean)
	assert.InDelta(t, 2.5, *cvr.Mean, 1e-12)
	require.NotNil(t, cvr.Std)
	assert.InDelta(t, math.Sqrt(5.0/3.0), *cvr.Std, 1e-12)
	assert.InDelta(t, 1, *cvr.Min, 1e-12)
	assert.InDelta(t, 1.75, *cvr.Q25, 1e-12)
	assert.InDelta(t, 2.5, *cvr.Median, 1e-12)
	assert.InDelta(t, 3.25, *cvr.Q75, 1e-12)
	assert.InDelta(t, 4, *cvr.Max, 1e-12)

	single := got[1]
	assert.Equal(t, 1, single.Count)
	assert.Nil(t, single.Std)
	require.NotNil(t, single.Median)
	assert.Equal(t, 7.0, *single.Median)

	blank := got[2]
	assert.Zero(t, blank.Count)
	assert.Nil(t, blank.Mean)
	assert.Nil(t, blank.Max)
}

func TestCorrelation(t *testing.T) {
	cols := []domain.NumericColumn{
		{Name: "a", Values: []float64{1, 2, 3, 4, math.NaN()}},
		{Name: "b", Values: []float64{2, 4, 6, 8, 100}},
		{Name: "c", Values: []float64{4, 3, 2, 1, 0}},
		{Name: "flat", Values: []float64{5, 5, 5, 5, 5}},
	}

	m := Correlation(cols)
	assert.Equal(t, []string{"a", "b", "c", "flat"}, m.Columns)

	require.NotNil(t, m.Values[0][0])
	assert.InDelta(t, 1.0, *m.Values[0][0], 1e-12)
	require.NotNil(t, m.Values[0][1])
	assert.InDelta(t, 1.0, *m.Values[0][1], 1e-12)
	assert.Equal(t, m.Values[0][1], m.Values[1][0])
	require.NotNil(t, m.Values[0][2])
	assert.InDelta(t, -1.0, *m.Values[0][2], 1e-12)

	for i := range cols {
		assert.Nil(t, m.Values[3][i])
		assert.Nil(t, m.Values[i][3])
	}
}

func TestKPI_SkipsBlankCells(t *testing.T) {
	records := []domain.PlacementRecord{
		{CPA: 1000, CVR: math.NaN(), ConversionCount: math.NaN()},
		{CPA: math.NaN(), CVR: 0.04, ConversionCount: math.NaN()},
	}

	got := KPI(records)
	assert.InDelta(t, 1000, got.AvgCPA, 1e-9)
	assert.InDelta(t, 4.0, got.AvgCVRPercent, 1e-9)
	assert.Zero(t, got.AvgConversionCount)
}
