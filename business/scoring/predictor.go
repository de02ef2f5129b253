package scoring

import (
	"errors"
	"fmt"
	"math"

	"adRecoDashboard/domain"
)

// Predictor maps placement configurations to predictions in log1p units,
// one value per input row.
type Predictor interface {
	Predict(rows []domain.PlacementConfiguration) ([]float64, error)
}

// PredictorFunc adapts a plain function to Predictor.
type PredictorFunc func(rows []domain.PlacementConfiguration) ([]float64, error)

func (f PredictorFunc) Predict(rows []domain.PlacementConfiguration) ([]float64, error) {
	return f(rows)
}

// PredictorPair holds the two regressors trained for one cluster.
type PredictorPair struct {
	CVR Predictor
	CPA Predictor
}

var errPredictorMissing = errors.New("predictor pair is incomplete")

func (p PredictorPair) validate() error {
	if p.CVR == nil {
		return fmt.Errorf("%w: CVR", errPredictorMissing)
	}
	if p.CPA == nil {
		return fmt.Errorf("%w: CPA", errPredictorMissing)
	}
	return nil
}

// predictOriginalScale runs a predictor over configs and maps the output back
// from log1p space.
func predictOriginalScale(name string, p Predictor, configs []domain.PlacementConfiguration) (raw, values []float64, err error) {
	raw, err = p.Predict(configs)
	if err != nil {
		return nil, nil, fmt.Errorf("predict %s: %w", name, err)
	}
	if len(raw) != len(configs) {
		return nil, nil, fmt.Errorf("predict %s: got %d predictions for %d rows", name, len(raw), len(configs))
	}

	values = make([]float64, len(raw))
	for i, v := range raw {
		values[i] = math.Expm1(v)
	}
	return raw, values, nil
}
