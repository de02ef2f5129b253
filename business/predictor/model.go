package predictor

import (
	"fmt"

	"adRecoDashboard/business/scoring"
	"adRecoDashboard/domain"
)

// Feature names as they appear in cluster files and model documents.
const (
	FeatureAdShape   = "ads_shape"
	FeatureMediaID   = "mda_idx"
	FeatureStartHour = "ads_time"
)

var knownFeatures = []string{FeatureAdShape, FeatureMediaID, FeatureStartHour}

// FeatureEffects holds the additive contribution of each level of one
// categorical feature.
type FeatureEffects struct {
	Levels  map[string]float64 `yaml:"levels" json:"levels"`
	Default *float64           `yaml:"default,omitempty" json:"default,omitempty"`
}

// AdditiveModel predicts intercept + Σ effect(feature level) in log1p units.
type AdditiveModel struct {
	Intercept float64                   `yaml:"intercept" json:"intercept"`
	Features  map[string]FeatureEffects `yaml:"features" json:"features"`
}

var _ scoring.Predictor = (*AdditiveModel)(nil)

func (m *AdditiveModel) Predict(rows []domain.PlacementConfiguration) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, r := range rows {
		v := m.Intercept
		for _, f := range knownFeatures {
			effects, ok := m.Features[f]
			if !ok {
				continue
			}
			e, err := effects.effect(f, featureValue(r, f))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			v += e
		}
		out[i] = v
	}
	return out, nil
}

func (e FeatureEffects) effect(feature, level string) (float64, error) {
	if v, ok := e.Levels[level]; ok {
		return v, nil
	}
	if e.Default != nil {
		return *e.Default, nil
	}
	return 0, fmt.Errorf("unknown %s level %q", feature, level)
}

func (m *AdditiveModel) validate() error {
	for name := range m.Features {
		if featureIndex(name) < 0 {
			return fmt.Errorf("unsupported feature %q", name)
		}
	}
	return nil
}

func featureValue(r domain.PlacementConfiguration, feature string) string {
	switch feature {
	case FeatureAdShape:
		return r.AdShape
	case FeatureMediaID:
		return r.MediaID
	default:
		return r.StartHour
	}
}

func featureIndex(name string) int {
	for i, f := range knownFeatures {
		if f == name {
			return i
		}
	}
	return -1
}
