package predictor

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"adRecoDashboard/business/scoring"
)

// Keys of the two models in a serialized pair.
const (
	KeyCVR = "CVR"
	KeyCPA = "CPA"
)

var ErrIncompletePair = errors.New("model document must define both CVR and CPA")

// Decode reads a YAML (or JSON) model document holding the CVR and CPA
// models for one cluster.
func Decode(r io.Reader) (scoring.PredictorPair, error) {
	var doc map[string]*AdditiveModel
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return scoring.PredictorPair{}, ErrIncompletePair
		}
		return scoring.PredictorPair{}, fmt.Errorf("decode model document: %w", err)
	}

	cvr, cpa := doc[KeyCVR], doc[KeyCPA]
	if cvr == nil || cpa == nil {
		return scoring.PredictorPair{}, ErrIncompletePair
	}
	if err := cvr.validate(); err != nil {
		return scoring.PredictorPair{}, fmt.Errorf("%s model: %w", KeyCVR, err)
	}
	if err := cpa.validate(); err != nil {
		return scoring.PredictorPair{}, fmt.Errorf("%s model: %w", KeyCPA, err)
	}

	return scoring.PredictorPair{CVR: cvr, CPA: cpa}, nil
}

// Encode writes a pair of additive models in the format Decode reads.
func Encode(w io.Writer, cvr, cpa *AdditiveModel) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]*AdditiveModel{KeyCVR: cvr, KeyCPA: cpa}); err != nil {
		return fmt.Errorf("encode model document: %w", err)
	}
	return enc.Close()
}
