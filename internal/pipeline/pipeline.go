package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-sod/attrition/internal/feature"
	"github.com/go-sod/attrition/internal/logging"
	"github.com/go-sod/attrition/internal/metrics"
	"github.com/go-sod/attrition/internal/predictor"
	"github.com/go-sod/attrition/internal/record"
	"github.com/go-sod/attrition/internal/schema"
	"github.com/google/uuid"
)

type ProvideFn func(ctx context.Context) (*Service, error)

// Prediction is the outcome of one request.
type Prediction struct {
	ID        uuid.UUID
	Result    predictor.Result
	CreatedAt time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service runs validate → encode → align → predict for each record. The
// registry and predictor are shared read-only by every request.
type Service struct {
	registry  *schema.Registry
	predictor *predictor.Predictor
	now       func() time.Time
}

// New checks that the model and schema agree on the vector arity.
func New(registry *schema.Registry, p *predictor.Predictor, opts ...Option) (*Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("schema registry is not loaded")
	}
	if p == nil {
		return nil, fmt.Errorf("predictor is not loaded")
	}
	if p.NumFeatures() != registry.Len() {
		return nil, fmt.Errorf("model expects %d features, schema has %d columns", p.NumFeatures(), registry.Len())
	}
	s := &Service{
		registry:  registry,
		predictor: p,
		now:       time.Now,
	}
	for _, f := range opts {
		f(s)
	}
	return s, nil
}

func (s *Service) Columns() []string {
	return s.registry.Columns()
}

// Encode validates the record and returns its encoded feature map.
func (s *Service) Encode(e record.Employee) (feature.Map, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return feature.Encode(e.Fields())
}

// Vector returns the aligned feature vector for the record.
func (s *Service) Vector(e record.Employee) (feature.Vector, error) {
	m, err := s.Encode(e)
	if err != nil {
		return nil, err
	}
	return feature.Align(m, s.registry.Columns()), nil
}

// Predict returns a full prediction for the record or an error; there are no
// partial results.
func (s *Service) Predict(ctx context.Context, e record.Employee) (*Prediction, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	m, err := s.Encode(e)
	if err != nil {
		metrics.RecordFailure(ctx, Kind(err))
		return nil, err
	}
	if dropped := feature.Dropped(m, s.registry.Columns()); len(dropped) > 0 {
		logger.Warnf("encoded columns not in schema were dropped: %v", dropped)
		metrics.RecordDropped(ctx, len(dropped))
	}
	vec := feature.Align(m, s.registry.Columns())

	result, err := s.predictor.Predict(vec)
	if err != nil {
		metrics.RecordFailure(ctx, Kind(err))
		return nil, fmt.Errorf("predict: %w", err)
	}

	p := &Prediction{
		ID:        uuid.New(),
		Result:    *result,
		CreatedAt: s.now(),
	}
	metrics.RecordPrediction(ctx, result.Label.String(), time.Since(start))
	logger.Debugf("prediction %s: %s p=%v", p.ID, result.Label, result.Probabilities)
	return p, nil
}

// Kind classifies a pipeline error for metrics and transport status mapping.
func Kind(err error) string {
	var (
		unknownErr *record.UnknownFieldError
		domainErr  *record.DomainViolationError
	)
	switch {
	case errors.As(err, &unknownErr):
		return "unknown_field"
	case errors.As(err, &domainErr):
		return "domain_violation"
	case errors.Is(err, predictor.ErrContract):
		return "contract"
	default:
		return "internal"
	}
}

// IsInvalidInput reports whether err was caused by the caller's record.
func IsInvalidInput(err error) bool {
	k := Kind(err)
	return k == "unknown_field" || k == "domain_violation"
}
