package scoring

import (
	"fmt"
	"math"

	"adRecoDashboard/domain"
	"adRecoDashboard/pkg/mathutil"
)

// Allocate splits a budget across the given configurations proportionally to
// their scores, as percentages rounded to one decimal.
func Allocate(top []domain.ScoredConfiguration) ([]domain.BudgetAllocation, error) {
	if len(top) == 0 {
		return nil, domain.ErrEmptyCandidateSet
	}

	total := 0.0
	for _, c := range top {
		if c.Score < 0 || math.IsNaN(c.Score) || math.IsInf(c.Score, 0) {
			return nil, fmt.Errorf("%w: rank %d has score %v", domain.ErrDegenerateAllocation, c.Rank, c.Score)
		}
		total += c.Score
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: scores sum to %v", domain.ErrDegenerateAllocation, total)
	}

	out := make([]domain.BudgetAllocation, len(top))
	for i, c := range top {
		out[i] = domain.BudgetAllocation{
			PlacementConfiguration: c.PlacementConfiguration,
			Rank:                   c.Rank,
			SharePercent:           mathutil.RoundHalfEven(c.Score/total*100, 1),
		}
	}
	return out, nil
}
