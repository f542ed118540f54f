package record

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDefault_Validate(t *testing.T) {
	t.Parallel()
	if err := Default().Validate(); err != nil {
		t.Errorf("default record validate got: %v, expected: nil", err)
	}
}

func TestEmployee_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		mutate    func(e *Employee)
		wantField string
	}{
		{name: "age_below_range", mutate: func(e *Employee) { e.Age = 17 }, wantField: FieldAge},
		{name: "age_upper_bound", mutate: func(e *Employee) { e.Age = 60 }},
		{name: "job_level_not_in_set", mutate: func(e *Employee) { e.JobLevel = 6 }, wantField: FieldJobLevel},
		{name: "satisfaction_zero", mutate: func(e *Employee) { e.JobSatisfaction = 0 }, wantField: FieldJobSatisfaction},
		{name: "income_above_range", mutate: func(e *Employee) { e.MonthlyIncome = 20001 }, wantField: FieldMonthlyIncome},
		{name: "overtime_unknown_label", mutate: func(e *Employee) { e.OverTime = "Maybe" }, wantField: FieldOverTime},
		{name: "overtime_no", mutate: func(e *Employee) { e.OverTime = OverTimeNo }},
		{name: "promotion_lower_bound", mutate: func(e *Employee) { e.YearsSinceLastPromotion = 0 }},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			e := Default()
			test.mutate(&e)
			err := e.Validate()
			if test.wantField == "" {
				if err != nil {
					t.Errorf("validate got: %v, expected: nil", err)
				}
				return
			}
			var domainErr *DomainViolationError
			if !errors.As(err, &domainErr) {
				t.Fatalf("validate got: %v, expected: *DomainViolationError", err)
			}
			if domainErr.Field != test.wantField {
				t.Errorf("violating field got: %s, expected: %s", domainErr.Field, test.wantField)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		values      map[string]interface{}
		expectedErr interface{}
		check       func(e Employee) bool
	}{
		{
			name:   "overlay_on_defaults",
			values: map[string]interface{}{"Age": float64(42), "OverTime": "No"},
			check: func(e Employee) bool {
				return e.Age == 42 && e.OverTime == OverTimeNo && e.MonthlyIncome == 6500
			},
		},
		{
			name:   "json_number",
			values: map[string]interface{}{"DailyRate": json.Number("1200")},
			check:  func(e Employee) bool { return e.DailyRate == 1200 },
		},
		{
			name:        "unknown_field",
			values:      map[string]interface{}{"Department": "Sales"},
			expectedErr: &UnknownFieldError{},
		},
		{
			name:        "fractional_integer",
			values:      map[string]interface{}{"Age": 30.5},
			expectedErr: &DomainViolationError{},
		},
		{
			name:        "wrong_type_for_category",
			values:      map[string]interface{}{"OverTime": true},
			expectedErr: &DomainViolationError{},
		},
		{
			name:        "out_of_domain",
			values:      map[string]interface{}{"DistanceFromHome": 0},
			expectedErr: &DomainViolationError{},
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			e, err := Decode(test.values)
			switch test.expectedErr.(type) {
			case *UnknownFieldError:
				var target *UnknownFieldError
				if !errors.As(err, &target) {
					t.Errorf("decode got: %v, expected: *UnknownFieldError", err)
				}
				return
			case *DomainViolationError:
				var target *DomainViolationError
				if !errors.As(err, &target) {
					t.Errorf("decode got: %v, expected: *DomainViolationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode got: %v, expected: nil", err)
			}
			if !test.check(e) {
				t.Errorf("decoded record %+v does not match expectation", e)
			}
		})
	}
}

func TestEmployee_Fields(t *testing.T) {
	t.Parallel()
	fields := Default().Fields()
	if len(fields) != len(Specs) {
		t.Fatalf("fields length got: %d, expected: %d", len(fields), len(Specs))
	}
	for i, f := range fields {
		if f.Name != Specs[i].Name {
			t.Errorf("fields[%d] got: %s, expected: %s", i, f.Name, Specs[i].Name)
		}
	}
}
