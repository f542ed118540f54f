package record

import (
	"encoding/json"
	"fmt"
	"math"
)

const (
	FieldAge                     = "Age"
	FieldDailyRate               = "DailyRate"
	FieldDistanceFromHome        = "DistanceFromHome"
	FieldEnvironmentSatisfaction = "EnvironmentSatisfaction"
	FieldJobInvolvement          = "JobInvolvement"
	FieldJobLevel                = "JobLevel"
	FieldJobSatisfaction         = "JobSatisfaction"
	FieldMonthlyIncome           = "MonthlyIncome"
	FieldNumCompaniesWorked      = "NumCompaniesWorked"
	FieldOverTime                = "OverTime"
	FieldPercentSalaryHike       = "PercentSalaryHike"
	FieldTotalWorkingYears       = "TotalWorkingYears"
	FieldYearsAtCompany          = "YearsAtCompany"
	FieldYearsInCurrentRole      = "YearsInCurrentRole"
	FieldYearsSinceLastPromotion = "YearsSinceLastPromotion"
	FieldYearsWithCurrManager    = "YearsWithCurrManager"
)

type OverTime string

const (
	OverTimeYes OverTime = "Yes"
	OverTimeNo  OverTime = "No"
)

// Employee is the raw input record collected for a single prediction.
type Employee struct {
	Age                     int      `json:"Age" toml:"Age"`
	DailyRate               int      `json:"DailyRate" toml:"DailyRate"`
	DistanceFromHome        int      `json:"DistanceFromHome" toml:"DistanceFromHome"`
	EnvironmentSatisfaction int      `json:"EnvironmentSatisfaction" toml:"EnvironmentSatisfaction"`
	JobInvolvement          int      `json:"JobInvolvement" toml:"JobInvolvement"`
	JobLevel                int      `json:"JobLevel" toml:"JobLevel"`
	JobSatisfaction         int      `json:"JobSatisfaction" toml:"JobSatisfaction"`
	MonthlyIncome           int      `json:"MonthlyIncome" toml:"MonthlyIncome"`
	NumCompaniesWorked      int      `json:"NumCompaniesWorked" toml:"NumCompaniesWorked"`
	OverTime                OverTime `json:"OverTime" toml:"OverTime"`
	PercentSalaryHike       int      `json:"PercentSalaryHike" toml:"PercentSalaryHike"`
	TotalWorkingYears       int      `json:"TotalWorkingYears" toml:"TotalWorkingYears"`
	YearsAtCompany          int      `json:"YearsAtCompany" toml:"YearsAtCompany"`
	YearsInCurrentRole      int      `json:"YearsInCurrentRole" toml:"YearsInCurrentRole"`
	YearsSinceLastPromotion int      `json:"YearsSinceLastPromotion" toml:"YearsSinceLastPromotion"`
	YearsWithCurrManager    int      `json:"YearsWithCurrManager" toml:"YearsWithCurrManager"`
}

// Default returns the record the input form starts from.
func Default() Employee {
	return Employee{
		Age:                     35,
		DailyRate:               750,
		DistanceFromHome:        10,
		EnvironmentSatisfaction: 1,
		JobInvolvement:          1,
		JobLevel:                1,
		JobSatisfaction:         1,
		MonthlyIncome:           6500,
		NumCompaniesWorked:      2,
		OverTime:                OverTimeYes,
		PercentSalaryHike:       15,
		TotalWorkingYears:       10,
		YearsAtCompany:          5,
		YearsInCurrentRole:      4,
		YearsSinceLastPromotion: 2,
		YearsWithCurrManager:    4,
	}
}

// Field is one named raw value. Numeric fields carry Value, categorical
// fields carry Category.
type Field struct {
	Name     string
	Value    float64
	Category string
}

func numeric(name string, v int) Field {
	return Field{Name: name, Value: float64(v)}
}

// Fields returns the record as an ordered list of named values.
func (e Employee) Fields() []Field {
	return []Field{
		numeric(FieldAge, e.Age),
		numeric(FieldDailyRate, e.DailyRate),
		numeric(FieldDistanceFromHome, e.DistanceFromHome),
		numeric(FieldEnvironmentSatisfaction, e.EnvironmentSatisfaction),
		numeric(FieldJobInvolvement, e.JobInvolvement),
		numeric(FieldJobLevel, e.JobLevel),
		numeric(FieldJobSatisfaction, e.JobSatisfaction),
		numeric(FieldMonthlyIncome, e.MonthlyIncome),
		numeric(FieldNumCompaniesWorked, e.NumCompaniesWorked),
		{Name: FieldOverTime, Category: string(e.OverTime)},
		numeric(FieldPercentSalaryHike, e.PercentSalaryHike),
		numeric(FieldTotalWorkingYears, e.TotalWorkingYears),
		numeric(FieldYearsAtCompany, e.YearsAtCompany),
		numeric(FieldYearsInCurrentRole, e.YearsInCurrentRole),
		numeric(FieldYearsSinceLastPromotion, e.YearsSinceLastPromotion),
		numeric(FieldYearsWithCurrManager, e.YearsWithCurrManager),
	}
}

// Validate checks every field against its declared domain and returns the
// first violation.
func (e Employee) Validate() error {
	for _, f := range e.Fields() {
		s, ok := SpecFor(f.Name)
		if !ok {
			return &UnknownFieldError{Field: f.Name}
		}
		if err := s.check(f); err != nil {
			return err
		}
	}
	return nil
}

func (e *Employee) intField(name string) *int {
	switch name {
	case FieldAge:
		return &e.Age
	case FieldDailyRate:
		return &e.DailyRate
	case FieldDistanceFromHome:
		return &e.DistanceFromHome
	case FieldEnvironmentSatisfaction:
		return &e.EnvironmentSatisfaction
	case FieldJobInvolvement:
		return &e.JobInvolvement
	case FieldJobLevel:
		return &e.JobLevel
	case FieldJobSatisfaction:
		return &e.JobSatisfaction
	case FieldMonthlyIncome:
		return &e.MonthlyIncome
	case FieldNumCompaniesWorked:
		return &e.NumCompaniesWorked
	case FieldPercentSalaryHike:
		return &e.PercentSalaryHike
	case FieldTotalWorkingYears:
		return &e.TotalWorkingYears
	case FieldYearsAtCompany:
		return &e.YearsAtCompany
	case FieldYearsInCurrentRole:
		return &e.YearsInCurrentRole
	case FieldYearsSinceLastPromotion:
		return &e.YearsSinceLastPromotion
	case FieldYearsWithCurrManager:
		return &e.YearsWithCurrManager
	}
	return nil
}

// Decode overlays the given values on the default record and validates the
// result. Keys that are not record fields fail with *UnknownFieldError,
// values of the wrong type or outside their domain with
// *DomainViolationError.
func Decode(values map[string]interface{}) (Employee, error) {
	e := Default()
	for name, raw := range values {
		s, ok := SpecFor(name)
		if !ok {
			return Employee{}, &UnknownFieldError{Field: name}
		}
		if s.Kind == KindCategorical {
			str, ok := raw.(string)
			if !ok {
				return Employee{}, &DomainViolationError{Field: name, Value: raw, Domain: s.Domain()}
			}
			e.OverTime = OverTime(str)
			continue
		}
		v, err := toInt(raw)
		if err != nil {
			return Employee{}, &DomainViolationError{Field: name, Value: raw, Domain: s.Domain()}
		}
		*e.intField(name) = v
	}
	if err := e.Validate(); err != nil {
		return Employee{}, err
	}
	return e, nil
}

func toInt(raw interface{}) (int, error) {
	var f float64
	switch v := raw.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float32:
		f = float64(v)
	case float64:
		f = v
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, err
		}
		f = n
	default:
		return 0, fmt.Errorf("unsupported value type %T", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("value %v is not an integer", f)
	}
	return int(f), nil
}
