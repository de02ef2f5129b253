package domain

type ClusterKPI struct {
	AvgCPA             float64 `json:"avg_cpa"`
	AvgCVRPercent      float64 `json:"avg_cvr_percent"`
	AvgConversionCount float64 `json:"avg_time_turn"`
	Rows               int     `json:"rows"`
	Empty              bool    `json:"empty"`
}

type DistributionBucket struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
}

// ColumnSummary mirrors a describe() row; nil marks an undefined statistic.
type ColumnSummary struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	Q25    *float64 `json:"25%"`
	Median *float64 `json:"50%"`
	Q75    *float64 `json:"75%"`
	Max    *float64 `json:"max"`
}

type CorrelationMatrix struct {
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
}

type ClusterOverview struct {
	Selection    Selection            `json:"selection"`
	ClusterID    int                  `json:"cluster_id"`
	KPI          ClusterKPI           `json:"kpi"`
	Distribution []DistributionBucket `json:"distribution"`
	Describe     []ColumnSummary      `json:"describe"`
	Correlation  CorrelationMatrix    `json:"correlation"`
}
