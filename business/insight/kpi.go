package insight

import (
	"gonum.org/v1/gonum/stat"

	"adRecoDashboard/domain"
)

// KPI summarizes a cluster's historical records: mean CPA, mean CVR as a
// percentage and mean conversion count. Blank cells are skipped.
func KPI(records []domain.PlacementRecord) domain.ClusterKPI {
	if len(records) == 0 {
		return domain.ClusterKPI{Empty: true}
	}

	cpa := make([]float64, len(records))
	cvr := make([]float64, len(records))
	turns := make([]float64, len(records))
	for i, r := range records {
		cpa[i] = r.CPA
		cvr[i] = r.CVR
		turns[i] = r.ConversionCount
	}

	return domain.ClusterKPI{
		AvgCPA:             mean(cpa),
		AvgCVRPercent:      mean(cvr) * 100,
		AvgConversionCount: mean(turns),
		Rows:               len(records),
	}
}

func mean(values []float64) float64 {
	values = dropNaN(values)
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
