package domain

// PlacementRecord is one historical ad-serving observation of a cluster.
type PlacementRecord struct {
	AdShape         string  `json:"ads_shape"`
	MediaID         string  `json:"mda_idx"`
	StartHour       string  `json:"ads_time"`
	CVR             float64 `json:"cvr"`
	CPA             float64 `json:"cpa"`
	ConversionCount float64 `json:"rpt_time_turn"`
}

func (r PlacementRecord) Configuration() PlacementConfiguration {
	return PlacementConfiguration{
		AdShape:   r.AdShape,
		MediaID:   r.MediaID,
		StartHour: r.StartHour,
	}
}

// NumericColumn holds one numeric column of a cluster file, NaN for blanks.
type NumericColumn struct {
	Name   string    `json:"name"`
	Values []float64 `json:"-"`
}

type ClusterDataset struct {
	ClusterID int               `json:"cluster_id"`
	Records   []PlacementRecord `json:"records"`
	Columns   []NumericColumn   `json:"columns"`
}

type PlacementConfiguration struct {
	AdShape   string `json:"ads_shape"`
	MediaID   string `json:"mda_idx"`
	StartHour string `json:"ads_time"`
}

type ScoredConfiguration struct {
	PlacementConfiguration
	Rank          int     `json:"rank"`
	PredictedCVR  float64 `json:"pred_cvr"`
	PredictedCPA  float64 `json:"pred_cpa"`
	SupportCount  int     `json:"data_count"`
	CVRNormalized float64 `json:"cvr_scaled"`
	CPANormalized float64 `json:"cpa_scaled"`
	Score         float64 `json:"score"`
}

type BudgetAllocation struct {
	PlacementConfiguration
	Rank         int     `json:"rank"`
	SharePercent float64 `json:"share_percent"`
}

type ScoringResult struct {
	Top3  []ScoredConfiguration `json:"top3"`
	Top10 []ScoredConfiguration `json:"top10"`
}

// CandidateTrace explains how one distinct configuration went through scoring.
type CandidateTrace struct {
	PlacementConfiguration
	PredictedCVR    float64  `json:"pred_cvr"`
	PredictedCPA    float64  `json:"pred_cpa"`
	RawPredictedCVR float64  `json:"raw_pred_cvr"`
	RawPredictedCPA float64  `json:"raw_pred_cpa"`
	SupportCount    int      `json:"data_count"`
	Eligible        bool     `json:"eligible"`
	CVRNormalized   *float64 `json:"cvr_scaled"`
	CPANormalized   *float64 `json:"cpa_scaled"`
	Score           *float64 `json:"score"`
	Rank            int      `json:"rank,omitempty"`
}

type RecommendationReport struct {
	Selection   Selection             `json:"selection"`
	ClusterID   int                   `json:"cluster_id"`
	Top3        []ScoredConfiguration `json:"top3"`
	Top10       []ScoredConfiguration `json:"top10"`
	Budget      []BudgetAllocation    `json:"budget"`
	BudgetError string                `json:"budget_error,omitempty"`
}
