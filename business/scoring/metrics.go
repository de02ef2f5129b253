package scoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ScoringRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_runs_total",
			Help: "Count of scoring runs by outcome (ok, empty, error).",
		},
		[]string{"outcome"},
	)

	CandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_candidates_total",
			Help: "Count of candidate configurations by stage (enumerated, filtered).",
		},
		[]string{"stage"},
	)
)

func init() {
	prometheus.MustRegister(ScoringRunsTotal, CandidatesTotal)
}
