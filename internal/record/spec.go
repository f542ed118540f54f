package record

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindNumeric Kind = iota
	KindCategorical
)

// Spec declares the domain of one raw field. Numeric fields are bounded by
// Min and Max inclusive, or restricted to Allowed when it is not empty.
// Categorical fields take one of Categories; Baseline is the reference level
// that produces no indicator column.
type Spec struct {
	Name       string
	Kind       Kind
	Min        int
	Max        int
	Allowed    []int
	Categories []string
	Baseline   string
}

func (s Spec) Domain() string {
	switch {
	case s.Kind == KindCategorical:
		return "{" + strings.Join(s.Categories, ",") + "}"
	case len(s.Allowed) > 0:
		vals := make([]string, len(s.Allowed))
		for i, v := range s.Allowed {
			vals[i] = strconv.Itoa(v)
		}
		return "{" + strings.Join(vals, ",") + "}"
	default:
		return fmt.Sprintf("[%d,%d]", s.Min, s.Max)
	}
}

func (s Spec) containsInt(v int) bool {
	if len(s.Allowed) > 0 {
		for _, a := range s.Allowed {
			if a == v {
				return true
			}
		}
		return false
	}
	return v >= s.Min && v <= s.Max
}

func (s Spec) containsCategory(v string) bool {
	for _, c := range s.Categories {
		if c == v {
			return true
		}
	}
	return false
}

func (s Spec) check(f Field) error {
	if s.Kind == KindCategorical {
		if !s.containsCategory(f.Category) {
			return &DomainViolationError{Field: s.Name, Value: f.Category, Domain: s.Domain()}
		}
		return nil
	}
	if !s.containsInt(int(f.Value)) || float64(int(f.Value)) != f.Value {
		return &DomainViolationError{Field: s.Name, Value: f.Value, Domain: s.Domain()}
	}
	return nil
}

var (
	quarterScale = []int{1, 2, 3, 4}
	jobLevels    = []int{1, 2, 3, 4, 5}
)

// Specs is the declared domain table, in record order.
var Specs = []Spec{
	{Name: FieldAge, Min: 18, Max: 60},
	{Name: FieldDailyRate, Min: 100, Max: 1500},
	{Name: FieldDistanceFromHome, Min: 1, Max: 30},
	{Name: FieldEnvironmentSatisfaction, Allowed: quarterScale},
	{Name: FieldJobInvolvement, Allowed: quarterScale},
	{Name: FieldJobLevel, Allowed: jobLevels},
	{Name: FieldJobSatisfaction, Allowed: quarterScale},
	{Name: FieldMonthlyIncome, Min: 1000, Max: 20000},
	{Name: FieldNumCompaniesWorked, Min: 0, Max: 9},
	{
		Name:       FieldOverTime,
		Kind:       KindCategorical,
		Categories: []string{string(OverTimeYes), string(OverTimeNo)},
		Baseline:   string(OverTimeNo),
	},
	{Name: FieldPercentSalaryHike, Min: 11, Max: 25},
	{Name: FieldTotalWorkingYears, Min: 0, Max: 40},
	{Name: FieldYearsAtCompany, Min: 0, Max: 40},
	{Name: FieldYearsInCurrentRole, Min: 0, Max: 18},
	{Name: FieldYearsSinceLastPromotion, Min: 0, Max: 15},
	{Name: FieldYearsWithCurrManager, Min: 0, Max: 17},
}

var specIndex = func() map[string]Spec {
	m := make(map[string]Spec, len(Specs))
	for _, s := range Specs {
		m[s.Name] = s
	}
	return m
}()

// SpecFor returns the declared domain of the named field.
func SpecFor(name string) (Spec, bool) {
	s, ok := specIndex[name]
	return s, ok
}
