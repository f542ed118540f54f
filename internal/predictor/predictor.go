package predictor

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Probability tolerance used when checking classifier output.
const Epsilon = 1e-6

// ErrContract is returned when a classifier answers outside its contract:
// wrong arity, a malformed probability pair or a label that is not the argmax.
var ErrContract = errors.New("classifier contract violation")

type ProvideFn func(context.Context) (*Predictor, error)

type Vector interface {
	Point(idx int) float64
	Dimensions() int
	Points() []float64
}

// Classifier is a trained binary model. The positional meaning of x is the
// schema column order the model was trained with.
type Classifier interface {
	Predict(x []float64) (int, error)
	PredictProba(x []float64) ([]float64, error)
	NumFeatures() int
}

// Predictor calls a Classifier and checks every answer. It holds no mutable
// state and is safe for concurrent use when the classifier is.
type Predictor struct {
	clf Classifier
}

func New(clf Classifier) *Predictor {
	return &Predictor{clf: clf}
}

func (p *Predictor) NumFeatures() int {
	return p.clf.NumFeatures()
}

func (p *Predictor) Predict(vec Vector) (*Result, error) {
	if vec.Dimensions() != p.clf.NumFeatures() {
		return nil, fmt.Errorf("%w: vector has %d dimensions, model expects %d",
			ErrContract, vec.Dimensions(), p.clf.NumFeatures())
	}

	x := vec.Points()
	label, err := p.clf.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("classifier predict: %w", err)
	}
	proba, err := p.clf.PredictProba(x)
	if err != nil {
		return nil, fmt.Errorf("classifier predict proba: %w", err)
	}

	if len(proba) != 2 {
		return nil, fmt.Errorf("%w: got %d probabilities, expected 2", ErrContract, len(proba))
	}
	for i, v := range proba {
		if math.IsNaN(v) || v < -Epsilon || v > 1+Epsilon {
			return nil, fmt.Errorf("%w: probability[%d] = %v", ErrContract, i, v)
		}
	}
	if math.Abs(proba[0]+proba[1]-1) > Epsilon {
		return nil, fmt.Errorf("%w: probabilities sum to %v", ErrContract, proba[0]+proba[1])
	}
	if label != int(Stays) && label != int(Leaves) {
		return nil, fmt.Errorf("%w: label %d", ErrContract, label)
	}
	if proba[label] < proba[1-label]-Epsilon {
		return nil, fmt.Errorf("%w: label %d is not the most probable class %v", ErrContract, label, proba)
	}

	return &Result{
		Label:         Label(label),
		Probabilities: [2]float64{proba[0], proba[1]},
	}, nil
}
