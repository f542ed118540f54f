package pipeline

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-sod/attrition/internal/artifact"
	"github.com/go-sod/attrition/internal/predictor"
	"github.com/go-sod/attrition/internal/record"
	"github.com/go-sod/attrition/internal/schema"
)

func newService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	src := artifact.NewFileSource("../../testdata")
	reg, err := schema.Load(ctx, src, "model_columns.json")
	if err != nil {
		t.Fatalf("schema load got: %v, expected: nil", err)
	}
	p, err := predictor.Load(ctx, src, &predictor.Config{Type: predictor.AlgTypeForest, ModelName: "model_rf.json"})
	if err != nil {
		t.Fatalf("model load got: %v, expected: nil", err)
	}
	s, err := New(reg, p)
	if err != nil {
		t.Fatalf("new service got: %v, expected: nil", err)
	}
	return s
}

func scenario(overTime record.OverTime, income int) record.Employee {
	e := record.Employee{
		Age:                     35,
		DailyRate:               750,
		DistanceFromHome:        10,
		EnvironmentSatisfaction: 3,
		JobInvolvement:          3,
		JobLevel:                2,
		JobSatisfaction:         3,
		MonthlyIncome:           income,
		NumCompaniesWorked:      2,
		OverTime:                overTime,
		PercentSalaryHike:       15,
		TotalWorkingYears:       10,
		YearsAtCompany:          5,
		YearsInCurrentRole:      4,
		YearsSinceLastPromotion: 2,
		YearsWithCurrManager:    4,
	}
	return e
}

func TestService_Predict(t *testing.T) {
	t.Parallel()
	s := newService(t)
	tests := []struct {
		name          string
		record        record.Employee
		expectedLabel predictor.Label
		expectedProba [2]float64
	}{
		{
			name:          "scenario_no_overtime",
			record:        scenario(record.OverTimeNo, 6500),
			expectedLabel: predictor.Stays,
			expectedProba: [2]float64{0.825, 0.175},
		},
		{
			name:          "overtime_low_income",
			record:        scenario(record.OverTimeYes, 2000),
			expectedLabel: predictor.Leaves,
			expectedProba: [2]float64{0.35, 0.65},
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			p, err := s.Predict(context.Background(), test.record)
			if err != nil {
				t.Fatalf("predict got: %v, expected: nil", err)
			}
			if p.Result.Label != test.expectedLabel {
				t.Errorf("label got: %v, expected: %v", p.Result.Label, test.expectedLabel)
			}
			for i := range p.Result.Probabilities {
				if math.Abs(p.Result.Probabilities[i]-test.expectedProba[i]) > 1e-9 {
					t.Errorf("proba[%d] got: %v, expected: %v", i, p.Result.Probabilities[i], test.expectedProba[i])
				}
			}
		})
	}
}

func TestService_Deterministic(t *testing.T) {
	t.Parallel()
	s := newService(t)
	rec := scenario(record.OverTimeYes, 6500)
	first, err := s.Predict(context.Background(), rec)
	if err != nil {
		t.Fatalf("predict got: %v, expected: nil", err)
	}
	for i := 0; i < 20; i++ {
		next, err := s.Predict(context.Background(), rec)
		if err != nil {
			t.Fatalf("predict got: %v, expected: nil", err)
		}
		if next.Result != first.Result {
			t.Fatalf("run %d result got: %+v, expected: %+v", i, next.Result, first.Result)
		}
	}
}

func TestService_Vector(t *testing.T) {
	t.Parallel()
	s := newService(t)
	tests := []struct {
		name     string
		overTime record.OverTime
		expected float64
	}{
		{name: "baseline_no", overTime: record.OverTimeNo, expected: 0},
		{name: "yes", overTime: record.OverTimeYes, expected: 1},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			vec, err := s.Vector(scenario(test.overTime, 6500))
			if err != nil {
				t.Fatalf("vector got: %v, expected: nil", err)
			}
			if vec.Dimensions() != len(s.Columns()) {
				t.Fatalf("vector length got: %d, expected: %d", vec.Dimensions(), len(s.Columns()))
			}
			if got := vec.Point(15); got != test.expected {
				t.Errorf("OverTime_Yes got: %v, expected: %v", got, test.expected)
			}
			if got := vec.Point(7); got != 6500 {
				t.Errorf("MonthlyIncome got: %v, expected: 6500", got)
			}
		})
	}
}

func TestService_RejectsInvalidRecord(t *testing.T) {
	t.Parallel()
	s := newService(t)
	rec := scenario(record.OverTimeNo, 6500)
	rec.Age = 99
	_, err := s.Predict(context.Background(), rec)
	var domainErr *record.DomainViolationError
	if !errors.As(err, &domainErr) {
		t.Fatalf("predict got: %v, expected: *record.DomainViolationError", err)
	}
	if !IsInvalidInput(err) {
		t.Errorf("IsInvalidInput got: false, expected: true")
	}
}

func TestNew_ArityMismatch(t *testing.T) {
	t.Parallel()
	reg, err := schema.New([]string{"Age", "OverTime_Yes"})
	if err != nil {
		t.Fatalf("schema new got: %v, expected: nil", err)
	}
	clf, err := predictor.DecodeFor(predictor.AlgTypeLogistic, []byte(`{"type":"logistic","n_features":3,"coef":[1,1,1]}`))
	if err != nil {
		t.Fatalf("decode got: %v, expected: nil", err)
	}
	if _, err := New(reg, predictor.New(clf)); err == nil {
		t.Errorf("new with mismatched arity got: nil, expected: error")
	}
}

func TestService_UnexposedColumnsDefaultToZero(t *testing.T) {
	t.Parallel()
	reg, err := schema.New([]string{"Age", "Department_Sales", "OverTime_Yes"})
	if err != nil {
		t.Fatalf("schema new got: %v, expected: nil", err)
	}
	clf, err := predictor.DecodeFor(predictor.AlgTypeLogistic,
		[]byte(`{"type":"logistic","n_features":3,"coef":[0,5,2],"intercept":-1}`))
	if err != nil {
		t.Fatalf("decode got: %v, expected: nil", err)
	}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s, err := New(reg, predictor.New(clf), WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("new got: %v, expected: nil", err)
	}
	vec, err := s.Vector(scenario(record.OverTimeYes, 6500))
	if err != nil {
		t.Fatalf("vector got: %v, expected: nil", err)
	}
	if vec.Point(1) != 0 {
		t.Errorf("Department_Sales got: %v, expected: 0", vec.Point(1))
	}
	p, err := s.Predict(context.Background(), scenario(record.OverTimeYes, 6500))
	if err != nil {
		t.Fatalf("predict got: %v, expected: nil", err)
	}
	if p.Result.Label != predictor.Leaves || !p.CreatedAt.Equal(now) {
		t.Errorf("prediction got: %+v, expected label leaves at %v", p, now)
	}
}
