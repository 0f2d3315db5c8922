package waterquality

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srishhttii05/resolvex/internal/domain"
)

func writeModelFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadModel(t *testing.T) {
	path := writeModelFile(t, `{
		"model_version": "test-v1",
		"scaler_mean": [7.0, 200.0, 300.0, 400.0, 4.0],
		"scaler_scale": [1.0, 50.0, 100.0, 100.0, 1.0],
		"coefficients": [0.5, -0.1, -0.3, -0.2, -0.4],
		"intercept": 0.7,
		"threshold": 0.5
	}`)

	model, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, "test-v1", model.Version())
}

func TestLoadModel_Errors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"malformed json", `{not json`},
		{"zero scale", `{
			"scaler_mean": [0, 0, 0, 0, 0],
			"scaler_scale": [1, 1, 0, 1, 1],
			"coefficients": [0, 0, 0, 0, 0],
			"intercept": 0
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeModelFile(t, tt.contents)
			_, err := LoadModel(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadModel_MissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadModel_ThresholdDefault(t *testing.T) {
	path := writeModelFile(t, `{
		"scaler_mean": [0, 0, 0, 0, 0],
		"scaler_scale": [1, 1, 1, 1, 1],
		"coefficients": [0, 0, 0, 0, 0],
		"intercept": 0
	}`)

	model, err := LoadModel(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, model.threshold, 1e-9)
}

func TestPredict_AppliesScalerAndThreshold(t *testing.T) {
	// Identity scaler, single positive coefficient on ph: sigmoid is
	// above 0.5 exactly when ph is positive.
	path := writeModelFile(t, `{
		"scaler_mean": [0, 0, 0, 0, 0],
		"scaler_scale": [1, 1, 1, 1, 1],
		"coefficients": [1, 0, 0, 0, 0],
		"intercept": 0,
		"threshold": 0.5
	}`)

	model, err := LoadModel(path)
	require.NoError(t, err)

	tests := []struct {
		name     string
		features Features
		want     domain.WaterStatus
	}{
		{"positive signal", Features{2, 0, 0, 0, 0}, domain.WaterGood},
		{"negative signal", Features{-2, 0, 0, 0, 0}, domain.WaterPoor},
		{"zero sits on threshold", Features{0, 0, 0, 0, 0}, domain.WaterGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.Predict(context.Background(), tt.features)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPredict_ScalerShiftsDecision(t *testing.T) {
	// Mean 10 on ph: a raw ph of 5 scales to -5 and classifies poor
	// even though the raw value is positive.
	path := writeModelFile(t, `{
		"scaler_mean": [10, 0, 0, 0, 0],
		"scaler_scale": [1, 1, 1, 1, 1],
		"coefficients": [1, 0, 0, 0, 0],
		"intercept": 0,
		"threshold": 0.5
	}`)

	model, err := LoadModel(path)
	require.NoError(t, err)

	got, err := model.Predict(context.Background(), Features{5, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, domain.WaterPoor, got)
}

func TestLoadModel_ShippedArtifact(t *testing.T) {
	model, err := LoadModel(filepath.Join("..", "..", "model", "water_model.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, model.Version())
}
