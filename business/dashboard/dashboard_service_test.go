//go:build !integration

package dashboard

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adRecoDashboard/business/scoring"
	"adRecoDashboard/domain"
)

func intPtr(v int) *int { return &v }

type fakeLoader struct {
	rows     []domain.ClusterMappingRow
	datasets map[int]domain.ClusterDataset
	models   map[int]scoring.PredictorPair
}

func (f *fakeLoader) Mapping(ctx context.Context) ([]domain.ClusterMappingRow, error) {
	return f.rows, nil
}

func (f *fakeLoader) Dataset(ctx context.Context, clusterID int) (domain.ClusterDataset, error) {
	ds, ok := f.datasets[clusterID]
	if !ok {
		return domain.ClusterDataset{}, &domain.MissingDataFileError{Resource: "ive_cluster.csv"}
	}
	return ds, nil
}

func (f *fakeLoader) Models(ctx context.Context, clusterID int) (scoring.PredictorPair, error) {
	pair, ok := f.models[clusterID]
	if !ok {
		return scoring.PredictorPair{}, &domain.MissingDataFileError{Resource: "ive_model_cluster.yaml"}
	}
	return pair, nil
}

func constant(v float64) scoring.Predictor {
	return scoring.PredictorFunc(func(rows []domain.PlacementConfiguration) ([]float64, error) {
		out := make([]float64, len(rows))
		for i := range out {
			out[i] = math.Log1p(v)
		}
		return out, nil
	})
}

func byMedia(values map[string]float64) scoring.Predictor {
	return scoring.PredictorFunc(func(rows []domain.PlacementConfiguration) ([]float64, error) {
		out := make([]float64, len(rows))
		for i, r := range rows {
			out[i] = math.Log1p(values[r.MediaID])
		}
		return out, nil
	})
}

func records(media string, n int) []domain.PlacementRecord {
	out := make([]domain.PlacementRecord, n)
	for i := range out {
		out[i] = domain.PlacementRecord{AdShape: "배너", MediaID: media, StartHour: "09", CVR: 0.05, CPA: 500, ConversionCount: 2}
	}
	return out
}

func newFixture() *fakeLoader {
	var three []domain.PlacementRecord
	three = append(three, records("a", 20)...)
	three = append(three, records("b", 20)...)
	three = append(three, records("c", 20)...)

	return &fakeLoader{
		rows: []domain.ClusterMappingRow{
			{Industry: "음식", OSType: "Web", Month: "1Q", ClusterID: intPtr(3)},
			{Industry: "게임", OSType: "Android", Month: "2Q", ClusterID: intPtr(5)},
			{Industry: "금융/보험", OSType: "iOS", Month: "3Q", ClusterID: intPtr(8)},
		},
		datasets: map[int]domain.ClusterDataset{
			3: {ClusterID: 3, Records: records("101", 25), Columns: []domain.NumericColumn{{Name: "CVR", Values: []float64{0.05, 0.05}}}},
			5: {ClusterID: 5, Records: three},
			8: {ClusterID: 8, Records: records("101", 5)},
		},
		models: map[int]scoring.PredictorPair{
			3: {CVR: constant(0.05), CPA: constant(500)},
			5: {
				CVR: byMedia(map[string]float64{"a": 0.10, "b": 0.05, "c": 0.02}),
				CPA: byMedia(map[string]float64{"a": 100, "b": 200, "c": 400}),
			},
			8: {CVR: constant(0.05), CPA: constant(500)},
		},
	}
}

func TestDashboardService_ResolveCluster(t *testing.T) {
	svc := NewDashboardService(newFixture())

	id, err := svc.ResolveCluster(context.Background(), domain.Selection{Industry: "음식", OSType: "web", Quarter: "1Q"})
	require.NoError(t, err)
	assert.Equal(t, 3, id)

	_, err = svc.ResolveCluster(context.Background(), domain.Selection{Industry: "법", OSType: "iOS", Quarter: "4Q"})
	assert.ErrorIs(t, err, domain.ErrResolutionNotFound)
}

func TestDashboardService_RecommendSingleSurvivor(t *testing.T) {
	svc := NewDashboardService(newFixture())

	report, err := svc.Recommend(context.Background(), domain.DefaultSelection())
	require.NoError(t, err)

	assert.Equal(t, 3, report.ClusterID)
	require.Len(t, report.Top3, 1)
	assert.Equal(t, 1.0, report.Top3[0].Score)
	require.Len(t, report.Budget, 1)
	assert.Equal(t, 100.0, report.Budget[0].SharePercent)
	assert.Empty(t, report.BudgetError)
}

func TestDashboardService_RecommendDegenerateBudget(t *testing.T) {
	svc := NewDashboardService(newFixture())

	report, err := svc.Recommend(context.Background(), domain.Selection{Industry: "게임", OSType: "Android", Quarter: "2Q"})
	require.NoError(t, err)

	require.Len(t, report.Top3, 3)
	assert.Equal(t, "a", report.Top3[0].MediaID)
	assert.Empty(t, report.Budget)
	assert.NotEmpty(t, report.BudgetError)
}

func TestDashboardService_RecommendErrors(t *testing.T) {
	f := newFixture()
	f.rows = append(f.rows, domain.ClusterMappingRow{Industry: "교육/학습", OSType: "Web", Month: "4Q", ClusterID: intPtr(11)})
	svc := NewDashboardService(f)
	ctx := context.Background()

	_, err := svc.Recommend(ctx, domain.Selection{Industry: "금융/보험", OSType: "iOS", Quarter: "3Q"})
	assert.ErrorIs(t, err, domain.ErrEmptyCandidateSet)

	_, err = svc.Recommend(ctx, domain.Selection{Industry: "교육/학습", OSType: "Web", Quarter: "4Q"})
	assert.ErrorIs(t, err, domain.ErrMissingDataFile)

	_, err = svc.Recommend(ctx, domain.Selection{Industry: "법", OSType: "iOS", Quarter: "4Q"})
	assert.ErrorIs(t, err, domain.ErrResolutionNotFound)
}

func TestDashboardService_Overview(t *testing.T) {
	svc := NewDashboardService(newFixture())

	ov, err := svc.Overview(context.Background(), domain.DefaultSelection())
	require.NoError(t, err)

	assert.Equal(t, 3, ov.ClusterID)
	assert.Equal(t, 25, ov.KPI.Rows)
	assert.InDelta(t, 5.0, ov.KPI.AvgCVRPercent, 1e-9)
	assert.Equal(t, []domain.DistributionBucket{
		{Category: "industry", Label: "음식", Count: 1},
		{Category: "os", Label: "web", Count: 1},
		{Category: "quarter", Label: "1Q", Count: 1},
	}, ov.Distribution)
	require.Len(t, ov.Describe, 1)
	assert.Equal(t, []string{"CVR"}, ov.Correlation.Columns)
}

func TestDashboardService_Explain(t *testing.T) {
	svc := NewDashboardService(newFixture())

	traces, err := svc.Explain(context.Background(), domain.Selection{Industry: "금융/보험", OSType: "iOS", Quarter: "3Q"})
	require.NoError(t, err)
	require.Len(t, traces, 1)
	assert.False(t, traces[0].Eligible)
	assert.Equal(t, 5, traces[0].SupportCount)
}

func TestDashboardService_Options(t *testing.T) {
	opts := NewDashboardService(newFixture()).Options()
	assert.Contains(t, opts.Industries, "음식")
	assert.Equal(t, domain.DefaultSelection(), opts.Default)
}
