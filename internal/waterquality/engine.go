package waterquality

import (
	"context"
	"fmt"

	"github.com/srishhttii05/resolvex/internal/domain"
	"github.com/srishhttii05/resolvex/internal/logging"
)

// Recommendation texts. Good yields exactly one message; Poor yields
// exactly three, in this order.
var (
	goodRecommendations = []string{
		"Water quality is within safe limits. Continue routine monitoring.",
	}
	poorRecommendations = []string{
		"This water is unsafe for consumption.",
		"Notify your local water authority immediately.",
		"Boil water for at least one minute before any use.",
	}
)

// Predictor is the externally trained statistical classifier capability.
// The implementation owns any feature scaling fitted at training time;
// the engine hands it raw sample values in the fixed feature order.
type Predictor interface {
	Predict(ctx context.Context, features Features) (domain.WaterStatus, error)
}

// Engine applies the hard safety rule and otherwise delegates to the
// injected predictor.
type Engine struct {
	predictor Predictor
	logger    logging.Logger
}

// NewEngine creates a water quality decision engine.
func NewEngine(predictor Predictor, logger logging.Logger) *Engine {
	return &Engine{predictor: predictor, logger: logger}
}

// Assess decides the verdict for one sample. Biological contamination
// overrides any statistical inference: when coliform is present or high
// the predictor is never consulted. A predictor failure propagates as an
// error; it is never mapped to a verdict.
func (e *Engine) Assess(ctx context.Context, sample domain.WaterSample) (domain.WaterQualityVerdict, error) {
	if sample.Coliform.Detected() {
		e.logger.Info("water sample failed coliform hard rule",
			"coliform", string(sample.Coliform),
		)
		return verdictFor(domain.WaterPoor), nil
	}

	status, err := e.predictor.Predict(ctx, FeaturesFromSample(sample))
	if err != nil {
		return domain.WaterQualityVerdict{}, fmt.Errorf("water prediction failed: %w", err)
	}
	if status != domain.WaterGood {
		status = domain.WaterPoor
	}

	e.logger.Debug("water sample assessed",
		"status", string(status),
		"ph", sample.PH,
		"turbidity", sample.Turbidity,
	)
	return verdictFor(status), nil
}

// FeaturesFromSample extracts the predictor input tuple in the fixed
// order the model was fitted with: ph, hardness, tds, conductivity,
// turbidity.
func FeaturesFromSample(sample domain.WaterSample) Features {
	return Features{
		sample.PH,
		sample.Hardness,
		sample.TDS,
		sample.Conductivity,
		sample.Turbidity,
	}
}

// verdictFor maps a status to its verdict with the fixed recommendation set.
func verdictFor(status domain.WaterStatus) domain.WaterQualityVerdict {
	recommendations := poorRecommendations
	if status == domain.WaterGood {
		recommendations = goodRecommendations
	}
	out := make([]string, len(recommendations))
	copy(out, recommendations)
	return domain.WaterQualityVerdict{
		Status:          status,
		Recommendations: out,
	}
}
