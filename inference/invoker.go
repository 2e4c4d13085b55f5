// Package inference runs the model on a submitted form and turns the answer,
// or whatever went wrong, into something the page can show.
package inference

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"printpredict/form"
	"printpredict/ml"
)

// Outcome is either a Verdict or a Failure.
type Outcome interface {
	outcome()
}

// Verdict is a successful prediction.
type Verdict struct {
	Success     bool
	Probability float64
}

// Percent formats the positive-class probability, e.g. "73.42%".
func (v Verdict) Percent() string {
	return FormatProbability(v.Probability)
}

// Failure carries the text of an error raised while predicting.
type Failure struct {
	Message string
}

func (Verdict) outcome() {}
func (Failure) outcome() {}

func FormatProbability(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}

type Invoker struct {
	model  ml.Classifier
	logger *zap.Logger
}

func NewInvoker(model ml.Classifier, logger *zap.Logger) *Invoker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invoker{model: model, logger: logger}
}

// Invoke predicts for the current values of s. It never panics and never
// returns an error; failures come back as Failure and leave s usable.
func (iv *Invoker) Invoke(ctx context.Context, s *form.Session) Outcome {
	s.Begin()
	start := time.Now()
	out := iv.run(ctx, s)
	switch o := out.(type) {
	case Verdict:
		s.Finish(true)
		iv.logger.Info("prediction",
			zap.String("session", s.ID),
			zap.Bool("success", o.Success),
			zap.Float64("probability", o.Probability),
			zap.Duration("took", time.Since(start)))
	case Failure:
		s.Finish(false)
		iv.logger.Warn("prediction failed", zap.String("session", s.ID), zap.String("error", o.Message))
	}
	return out
}

func (iv *Invoker) run(ctx context.Context, s *form.Session) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Failure{Message: fmt.Sprint(r)}
		}
	}()

	if iv.model == nil {
		return Failure{Message: "no model loaded"}
	}
	record, err := s.Record()
	if err != nil {
		return Failure{Message: err.Error()}
	}
	row := record.Row()

	label, err := iv.model.Predict(ctx, row)
	if err != nil {
		return Failure{Message: err.Error()}
	}
	p, err := iv.model.PredictProbability(ctx, row)
	if err != nil {
		return Failure{Message: err.Error()}
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return Failure{Message: fmt.Sprintf("model returned probability %v outside [0, 1]", p)}
	}
	switch label {
	case 1:
		return Verdict{Success: true, Probability: p}
	case 0:
		return Verdict{Success: false, Probability: p}
	}
	return Failure{Message: fmt.Sprintf("model returned class label %d, expected 0 or 1", label)}
}
