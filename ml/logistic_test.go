package ml

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogisticRegression(t *testing.T) {
	lr, err := NewLogisticRegression(speedSchema(), LogisticParams{
		Intercept:    2,
		Coefficients: []float64{-1, 0.5, -0.03},
	})
	require.NoError(t, err)
	ctx := context.Background()

	// z = 2 + 0.5 - 0.03*50 = 1.0
	p, err := lr.PredictProbability(ctx, speedRow("PLA", 50))
	require.NoError(t, err)
	assert.InDelta(t, 0.7310585786, p, 1e-9)

	label, err := lr.Predict(ctx, speedRow("PLA", 50))
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	// z = 2 - 1 - 0.03*200 = -5
	label, err = lr.Predict(ctx, speedRow("ABS", 200))
	require.NoError(t, err)
	assert.Equal(t, 0, label)
}

func TestLogisticRegressionCoefficientCount(t *testing.T) {
	_, err := NewLogisticRegression(speedSchema(), LogisticParams{Coefficients: []float64{1}})
	assert.Error(t, err)

	_, err = NewLogisticRegression(speedSchema(), LogisticParams{
		Coefficients: []float64{1, 1, 1},
		Threshold:    1.5,
	})
	assert.Error(t, err)
}
