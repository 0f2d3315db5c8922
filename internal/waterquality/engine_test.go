package waterquality

import (
	"context"
	"errors"
	"testing"

	"github.com/srishhttii05/resolvex/internal/domain"
	"github.com/srishhttii05/resolvex/internal/logging"
)

type mockPredictor struct {
	status domain.WaterStatus
	err    error
	calls  int
	last   Features
}

func (m *mockPredictor) Predict(_ context.Context, features Features) (domain.WaterStatus, error) {
	m.calls++
	m.last = features
	return m.status, m.err
}

var cleanSample = domain.WaterSample{
	PH:           7.2,
	Turbidity:    0.5,
	TDS:          250,
	Conductivity: 380,
	Hardness:     120,
	Coliform:     domain.ColiformAbsent,
}

func TestAssess_ColiformOverridesPredictor(t *testing.T) {
	for _, level := range []domain.ColiformLevel{domain.ColiformPresent, domain.ColiformHigh} {
		t.Run(string(level), func(t *testing.T) {
			predictor := &mockPredictor{status: domain.WaterGood}
			engine := NewEngine(predictor, logging.Nop())

			sample := cleanSample
			sample.Coliform = level

			verdict, err := engine.Assess(context.Background(), sample)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if verdict.Status != domain.WaterPoor {
				t.Errorf("status = %q, want poor", verdict.Status)
			}
			if predictor.calls != 0 {
				t.Errorf("predictor invoked %d times, want 0", predictor.calls)
			}
		})
	}
}

func TestAssess_GoodSample(t *testing.T) {
	predictor := &mockPredictor{status: domain.WaterGood}
	engine := NewEngine(predictor, logging.Nop())

	verdict, err := engine.Assess(context.Background(), cleanSample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Status != domain.WaterGood {
		t.Errorf("status = %q, want good", verdict.Status)
	}
	if len(verdict.Recommendations) != 1 {
		t.Fatalf("recommendations = %d, want exactly 1", len(verdict.Recommendations))
	}
	if verdict.Recommendations[0] != goodRecommendations[0] {
		t.Errorf("recommendation = %q, want %q", verdict.Recommendations[0], goodRecommendations[0])
	}
}

func TestAssess_PoorSampleRecommendationOrder(t *testing.T) {
	predictor := &mockPredictor{status: domain.WaterPoor}
	engine := NewEngine(predictor, logging.Nop())

	verdict, err := engine.Assess(context.Background(), cleanSample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Status != domain.WaterPoor {
		t.Errorf("status = %q, want poor", verdict.Status)
	}
	if len(verdict.Recommendations) != 3 {
		t.Fatalf("recommendations = %d, want exactly 3", len(verdict.Recommendations))
	}
	for i, want := range poorRecommendations {
		if verdict.Recommendations[i] != want {
			t.Errorf("recommendation[%d] = %q, want %q", i, verdict.Recommendations[i], want)
		}
	}
}

func TestAssess_PredictorErrorPropagates(t *testing.T) {
	cause := errors.New("model file corrupt")
	predictor := &mockPredictor{err: cause}
	engine := NewEngine(predictor, logging.Nop())

	_, err := engine.Assess(context.Background(), cleanSample)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, cause) {
		t.Errorf("error = %v, want wrapped %v", err, cause)
	}
}

func TestAssess_FeatureOrder(t *testing.T) {
	predictor := &mockPredictor{status: domain.WaterGood}
	engine := NewEngine(predictor, logging.Nop())

	if _, err := engine.Assess(context.Background(), cleanSample); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Features{7.2, 120, 250, 380, 0.5}
	if predictor.last != want {
		t.Errorf("features = %v, want %v (ph, hardness, tds, conductivity, turbidity)", predictor.last, want)
	}
}

func TestVerdictFor_CopiesRecommendations(t *testing.T) {
	verdict := verdictFor(domain.WaterPoor)
	verdict.Recommendations[0] = "mutated"

	if poorRecommendations[0] == "mutated" {
		t.Error("verdict mutation leaked into the shared recommendation table")
	}
}
