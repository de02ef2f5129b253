package scoring

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"adRecoDashboard/domain"
)

// Score ranks every well-supported configuration in records by predicted
// CVR (higher is better) and predicted CPA (lower is better).
func Score(ctx context.Context, records []domain.PlacementRecord, pair PredictorPair) (domain.ScoringResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScoringResult{}, fmt.Errorf("context error: %w", err)
	}

	cands, err := buildCandidates(records, pair)
	if err != nil {
		observeOutcome(err)
		return domain.ScoringResult{}, err
	}

	eligible := make([]candidate, 0, len(cands))
	for _, c := range cands {
		if isEligible(c) {
			eligible = append(eligible, c)
		}
	}
	CandidatesTotal.WithLabelValues("filtered").Add(float64(len(cands) - len(eligible)))

	if len(eligible) == 0 {
		observeOutcome(domain.ErrEmptyCandidateSet)
		return domain.ScoringResult{}, domain.ErrEmptyCandidateSet
	}

	ranked := rank(scoreEligible(eligible))

	result := domain.ScoringResult{
		Top3:  cloneScored(ranked[:min(primaryCount, len(ranked))]),
		Top10: cloneScored(ranked[:min(extendedCount, len(ranked))]),
	}
	observeOutcome(nil)

	return result, nil
}

// scoreEligible normalizes predictions over the eligible set and combines
// them into a single score, preserving input order.
func scoreEligible(eligible []candidate) []domain.ScoredConfiguration {
	cvr := make([]float64, len(eligible))
	cpa := make([]float64, len(eligible))
	for i, c := range eligible {
		cvr[i] = c.predictedCVR
		cpa[i] = c.predictedCPA
	}
	cvrN := robustScale(cvr)
	cpaN := robustScale(cpa)

	out := make([]domain.ScoredConfiguration, len(eligible))
	for i, c := range eligible {
		out[i] = domain.ScoredConfiguration{
			PlacementConfiguration: c.config,
			PredictedCVR:           c.predictedCVR,
			PredictedCPA:           c.predictedCPA,
			SupportCount:           c.support,
			CVRNormalized:          cvrN[i],
			CPANormalized:          cpaN[i],
			Score:                  cvrN[i] + (1 - cpaN[i]),
		}
	}
	return out
}

// rank sorts by score descending, keeping enumeration order on ties, and
// assigns 1-based ranks.
func rank(scored []domain.ScoredConfiguration) []domain.ScoredConfiguration {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

func cloneScored(in []domain.ScoredConfiguration) []domain.ScoredConfiguration {
	out := make([]domain.ScoredConfiguration, len(in))
	copy(out, in)
	return out
}

func observeOutcome(err error) {
	switch {
	case err == nil:
		ScoringRunsTotal.WithLabelValues("ok").Inc()
	case errors.Is(err, domain.ErrEmptyCandidateSet):
		ScoringRunsTotal.WithLabelValues("empty").Inc()
	default:
		ScoringRunsTotal.WithLabelValues("error").Inc()
	}
}
