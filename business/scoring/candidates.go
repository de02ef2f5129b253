package scoring

import (
	"adRecoDashboard/domain"
)

// MinSupport is the number of historical rows a configuration needs before
// it may be recommended.
const MinSupport = 20

const (
	primaryCount  = 3
	extendedCount = 10
)

type candidate struct {
	config       domain.PlacementConfiguration
	rawCVR       float64
	rawCPA       float64
	predictedCVR float64
	predictedCPA float64
	support      int
}

// enumerateCandidates returns the distinct configurations in first-occurrence
// order together with how many records share each one.
func enumerateCandidates(records []domain.PlacementRecord) ([]domain.PlacementConfiguration, map[domain.PlacementConfiguration]int) {
	support := make(map[domain.PlacementConfiguration]int, len(records))
	configs := make([]domain.PlacementConfiguration, 0, len(records))

	for _, r := range records {
		key := r.Configuration()
		if _, seen := support[key]; !seen {
			configs = append(configs, key)
		}
		support[key]++
	}

	return configs, support
}

// buildCandidates enumerates and predicts every candidate configuration.
func buildCandidates(records []domain.PlacementRecord, pair PredictorPair) ([]candidate, error) {
	if err := pair.validate(); err != nil {
		return nil, err
	}

	configs, support := enumerateCandidates(records)
	if len(configs) == 0 {
		return nil, domain.ErrEmptyCandidateSet
	}

	rawCVR, cvr, err := predictOriginalScale("CVR", pair.CVR, configs)
	if err != nil {
		return nil, err
	}
	rawCPA, cpa, err := predictOriginalScale("CPA", pair.CPA, configs)
	if err != nil {
		return nil, err
	}

	out := make([]candidate, len(configs))
	for i, cfg := range configs {
		out[i] = candidate{
			config:       cfg,
			rawCVR:       rawCVR[i],
			rawCPA:       rawCPA[i],
			predictedCVR: cvr[i],
			predictedCPA: cpa[i],
			support:      support[cfg],
		}
	}
	CandidatesTotal.WithLabelValues("enumerated").Add(float64(len(out)))

	return out, nil
}

func isEligible(c candidate) bool {
	return c.support >= MinSupport
}
