package logistic

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

const Type = "logistic"

var ErrMalformed = errors.New("malformed logistic model")

// Model is a fitted binary logistic regression: p(leaves) = sigmoid(w·x + b).
type Model struct {
	NFeatures int       `json:"n_features"`
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

func Decode(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode logistic model: %w", err)
	}
	if m.NFeatures <= 0 || len(m.Coef) != m.NFeatures {
		return nil, fmt.Errorf("%w: %d coefficients for %d features", ErrMalformed, len(m.Coef), m.NFeatures)
	}
	return &m, nil
}

func (m *Model) NumFeatures() int {
	return m.NFeatures
}

func (m *Model) PredictProba(x []float64) ([]float64, error) {
	if len(x) != m.NFeatures {
		return nil, fmt.Errorf("got %d features, expected %d", len(x), m.NFeatures)
	}
	z := m.Intercept
	for i, w := range m.Coef {
		z += w * x[i]
	}
	p1 := sigmoid(z)
	return []float64{1 - p1, p1}, nil
}

// Predict returns the more probable class; an exact tie goes to 0.
func (m *Model) Predict(x []float64) (int, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return 0, err
	}
	if proba[1] > proba[0] {
		return 1, nil
	}
	return 0, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
