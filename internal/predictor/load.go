package predictor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-sod/attrition/internal/artifact"
	"github.com/go-sod/attrition/internal/logging"
	"github.com/go-sod/attrition/internal/predictor/forest"
	"github.com/go-sod/attrition/internal/predictor/logistic"
)

// LoadError is returned when the model artifact is missing, unreadable or
// not a usable classifier.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("model load %s: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type header struct {
	Type string `json:"type"`
}

// DecodeFor decodes a model artifact of the given algorithm type.
func DecodeFor(alg AlgType, data []byte) (Classifier, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decode model header: %w", err)
	}
	switch alg {
	case AlgTypeForest:
		if h.Type != forest.Type {
			return nil, fmt.Errorf("artifact type %q does not match predictor type %s", h.Type, alg)
		}
		return forest.Decode(data)
	case AlgTypeLogistic:
		if h.Type != logistic.Type {
			return nil, fmt.Errorf("artifact type %q does not match predictor type %s", h.Type, alg)
		}
		return logistic.Decode(data)
	default:
		return nil, fmt.Errorf("unknown predictor type: %s", alg)
	}
}

// Load reads and decodes the model artifact.
func Load(ctx context.Context, src artifact.Source, cfg *Config) (*Predictor, error) {
	logger := logging.FromContext(ctx)
	data, err := src.Load(ctx, cfg.ModelName)
	if err != nil {
		return nil, &LoadError{Name: cfg.ModelName, Err: err}
	}
	clf, err := DecodeFor(cfg.PredictorType(), data)
	if err != nil {
		return nil, &LoadError{Name: cfg.ModelName, Err: err}
	}
	logger.Infof("loaded %s model %s with %d features", cfg.PredictorType(), cfg.ModelName, clf.NumFeatures())
	return New(clf), nil
}
