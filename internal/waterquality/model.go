// Package waterquality decides whether a water sample is safe, combining
// a hard biological-contamination rule with an externally trained
// statistical classifier.
package waterquality

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/srishhttii05/resolvex/internal/domain"
)

// FeatureCount is the size of the fixed predictor input tuple.
const FeatureCount = 5

// Features is the predictor input in fixed order:
// ph, hardness, tds, conductivity, turbidity.
type Features [FeatureCount]float64

// modelFile is the on-disk representation of the fitted model and its
// feature scaler, exported together at training time.
type modelFile struct {
	ModelVersion string                `json:"model_version"`
	Mean         [FeatureCount]float64 `json:"scaler_mean"`
	Scale        [FeatureCount]float64 `json:"scaler_scale"`
	Coefficients [FeatureCount]float64 `json:"coefficients"`
	Intercept    float64               `json:"intercept"`
	Threshold    float64               `json:"threshold"`
}

// LogisticModel is a logistic-regression predictor over standard-scaled
// features. It owns the scaler fitted alongside the model, so callers
// always hand it raw sample values. Read-only after load; safe for
// concurrent use.
type LogisticModel struct {
	version      string
	mean         [FeatureCount]float64
	scale        [FeatureCount]float64
	coefficients [FeatureCount]float64
	intercept    float64
	threshold    float64
}

// LoadModel reads the fitted model and scaler from a JSON file.
// Failure here is fatal for the water operation: the service starts
// without it rather than failing per-request.
func LoadModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read water model %s: %w", path, err)
	}

	var mf modelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse water model %s: %w", path, err)
	}

	for i, s := range mf.Scale {
		if s == 0 {
			return nil, fmt.Errorf("water model %s: scaler scale[%d] is zero", path, i)
		}
	}

	threshold := mf.Threshold
	if threshold == 0 {
		threshold = 0.5
	}

	return &LogisticModel{
		version:      mf.ModelVersion,
		mean:         mf.Mean,
		scale:        mf.Scale,
		coefficients: mf.Coefficients,
		intercept:    mf.Intercept,
		threshold:    threshold,
	}, nil
}

// Version returns the model version string from the export.
func (m *LogisticModel) Version() string {
	return m.version
}

// Predict applies the fitted scaler and logistic form to raw features.
// Samples at or above the probability threshold are classified good.
func (m *LogisticModel) Predict(ctx context.Context, features Features) (domain.WaterStatus, error) {
	z := m.intercept
	for i, v := range features {
		scaled := (v - m.mean[i]) / m.scale[i]
		z += m.coefficients[i] * scaled
	}
	probability := 1.0 / (1.0 + math.Exp(-z))
	if probability >= m.threshold {
		return domain.WaterGood, nil
	}
	return domain.WaterPoor, nil
}
