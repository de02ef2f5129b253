package scoring

import (
	"context"
	"fmt"

	"adRecoDashboard/domain"
)

// Explain runs the scoring pipeline and reports every candidate in
// enumeration order, including those dropped by the support filter.
// Eligible candidates carry their normalized values, score and rank.
func Explain(ctx context.Context, records []domain.PlacementRecord, pair PredictorPair) ([]domain.CandidateTrace, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	cands, err := buildCandidates(records, pair)
	if err != nil {
		return nil, err
	}

	eligible := make([]candidate, 0, len(cands))
	for _, c := range cands {
		if isEligible(c) {
			eligible = append(eligible, c)
		}
	}

	scoredByKey := make(map[domain.PlacementConfiguration]domain.ScoredConfiguration, len(eligible))
	if len(eligible) > 0 {
		for _, s := range rank(scoreEligible(eligible)) {
			scoredByKey[s.PlacementConfiguration] = s
		}
	}

	traces := make([]domain.CandidateTrace, 0, len(cands))
	for _, c := range cands {
		tr := domain.CandidateTrace{
			PlacementConfiguration: c.config,
			PredictedCVR:           c.predictedCVR,
			PredictedCPA:           c.predictedCPA,
			RawPredictedCVR:        c.rawCVR,
			RawPredictedCPA:        c.rawCPA,
			SupportCount:           c.support,
			Eligible:               isEligible(c),
		}
		if s, ok := scoredByKey[c.config]; ok {
			cvrN, cpaN, score := s.CVRNormalized, s.CPANormalized, s.Score
			tr.CVRNormalized = &cvrN
			tr.CPANormalized = &cpaN
			tr.Score = &score
			tr.Rank = s.Rank
		}
		traces = append(traces, tr)
	}

	return traces, nil
}
