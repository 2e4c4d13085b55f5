package ml

import (
	"context"
	"fmt"
	"math"
)

type LogisticParams struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	// Threshold on the positive-class probability; zero means 0.5.
	Threshold float64 `json:"threshold,omitempty"`
}

// LogisticRegression scores the encoded vector with a linear model and a
// sigmoid link.
type LogisticRegression struct {
	schema Schema
	params LogisticParams
}

func NewLogisticRegression(schema Schema, params LogisticParams) (*LogisticRegression, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	if len(params.Coefficients) != schema.Width() {
		return nil, fmt.Errorf("logistic regression has %d coefficients, schema encodes %d",
			len(params.Coefficients), schema.Width())
	}
	if params.Threshold == 0 {
		params.Threshold = 0.5
	}
	if params.Threshold <= 0 || params.Threshold >= 1 {
		return nil, fmt.Errorf("threshold %v out of (0, 1)", params.Threshold)
	}
	return &LogisticRegression{schema: schema, params: params}, nil
}

func (lr *LogisticRegression) Schema() Schema {
	return lr.schema
}

func (lr *LogisticRegression) Predict(ctx context.Context, row Row) (int, error) {
	p, err := lr.PredictProbability(ctx, row)
	if err != nil {
		return 0, err
	}
	if p >= lr.params.Threshold {
		return 1, nil
	}
	return 0, nil
}

func (lr *LogisticRegression) PredictProbability(ctx context.Context, row Row) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	features, err := lr.schema.Encode(row)
	if err != nil {
		return 0, err
	}
	z := lr.params.Intercept
	for i, x := range features {
		z += lr.params.Coefficients[i] * x
	}
	return sigmoid(z), nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
