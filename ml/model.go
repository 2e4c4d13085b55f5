package ml

import "context"

// Classifier is the capability the predictor consumes from a trained model.
// Implementations are read-only after load and safe for concurrent use.
type Classifier interface {
	Predict(ctx context.Context, row Row) (int, error)
	PredictProbability(ctx context.Context, row Row) (float64, error)
}

// Described is implemented by classifiers that know the schema they were
// trained with.
type Described interface {
	Schema() Schema
}
