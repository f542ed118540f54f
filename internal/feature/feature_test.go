package feature

import (
	"errors"
	"sort"
	"testing"

	"github.com/go-sod/attrition/internal/record"
)

var testColumns = []string{
	"Age", "DailyRate", "DistanceFromHome", "EnvironmentSatisfaction", "JobInvolvement",
	"JobLevel", "JobSatisfaction", "MonthlyIncome", "NumCompaniesWorked", "PercentSalaryHike",
	"TotalWorkingYears", "YearsAtCompany", "YearsInCurrentRole", "YearsSinceLastPromotion",
	"YearsWithCurrManager", "OverTime_Yes", "Department_Sales", "MaritalStatus_Single",
}

func scenarioRecord(overTime record.OverTime) record.Employee {
	return record.Employee{
		Age:                     35,
		DailyRate:               750,
		DistanceFromHome:        10,
		EnvironmentSatisfaction: 3,
		JobInvolvement:          3,
		JobLevel:                2,
		JobSatisfaction:         3,
		MonthlyIncome:           6500,
		NumCompaniesWorked:      2,
		OverTime:                overTime,
		PercentSalaryHike:       15,
		TotalWorkingYears:       10,
		YearsAtCompany:          5,
		YearsInCurrentRole:      4,
		YearsSinceLastPromotion: 2,
		YearsWithCurrManager:    4,
	}
}

func indexOf(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}

func TestEncode_OverTime(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		overTime   record.OverTime
		present    bool
		alignedVal float64
	}{
		{name: "baseline_no", overTime: record.OverTimeNo, present: false, alignedVal: 0},
		{name: "indicator_yes", overTime: record.OverTimeYes, present: true, alignedVal: 1},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			m, err := Encode(scenarioRecord(test.overTime).Fields())
			if err != nil {
				t.Fatalf("encode got: %v, expected: nil", err)
			}
			v, ok := m["OverTime_Yes"]
			if ok != test.present {
				t.Fatalf("OverTime_Yes present got: %v, expected: %v", ok, test.present)
			}
			if ok && v != 1 {
				t.Errorf("OverTime_Yes got: %v, expected: 1", v)
			}
			if _, ok := m["OverTime_No"]; ok {
				t.Errorf("baseline column OverTime_No must never be emitted")
			}
			if _, ok := m["OverTime"]; ok {
				t.Errorf("raw categorical column OverTime must never be emitted")
			}
			vec := Align(m, testColumns)
			if got := vec[indexOf(testColumns, "OverTime_Yes")]; got != test.alignedVal {
				t.Errorf("aligned OverTime_Yes got: %v, expected: %v", got, test.alignedVal)
			}
			if got := vec[indexOf(testColumns, "MonthlyIncome")]; got != 6500 {
				t.Errorf("aligned MonthlyIncome got: %v, expected: 6500", got)
			}
		})
	}
}

func TestEncode_NumericPassThrough(t *testing.T) {
	t.Parallel()
	rec := scenarioRecord(record.OverTimeNo)
	m, err := Encode(rec.Fields())
	if err != nil {
		t.Fatalf("encode got: %v, expected: nil", err)
	}
	if len(m) != 15 {
		t.Errorf("encoded columns got: %d, expected: 15", len(m))
	}
	for _, f := range rec.Fields() {
		if f.Name == record.FieldOverTime {
			continue
		}
		if m[f.Name] != f.Value {
			t.Errorf("column %s got: %v, expected: %v", f.Name, m[f.Name], f.Value)
		}
	}
}

func TestEncode_UnknownField(t *testing.T) {
	t.Parallel()
	_, err := Encode([]record.Field{{Name: "Department", Category: "Sales"}})
	var target *record.UnknownFieldError
	if !errors.As(err, &target) {
		t.Fatalf("encode got: %v, expected: *record.UnknownFieldError", err)
	}
	if target.Field != "Department" {
		t.Errorf("unknown field got: %s, expected: Department", target.Field)
	}
}

func TestAlign_Shape(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		m       Map
		columns []string
	}{
		{name: "empty_schema", m: Map{"Age": 1}, columns: nil},
		{name: "full_record", m: Map{"Age": 30, "OverTime_Yes": 1}, columns: testColumns},
		{name: "empty_map", m: Map{}, columns: testColumns},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			vec := Align(test.m, test.columns)
			if vec.Dimensions() != len(test.columns) {
				t.Errorf("vector length got: %d, expected: %d", vec.Dimensions(), len(test.columns))
			}
		})
	}
}

func TestAlign_FillDefault(t *testing.T) {
	t.Parallel()
	vec := Align(Map{}, testColumns)
	for i, v := range vec {
		if v != 0 {
			t.Errorf("vec[%d] got: %v, expected: 0", i, v)
		}
	}
}

func TestAlign_DropsUnknownColumns(t *testing.T) {
	t.Parallel()
	base := Map{"Age": 40, "OverTime_Yes": 1}
	withExtra := Map{"Age": 40, "OverTime_Yes": 1, "OverTime_Sometimes": 7}
	a, b := Align(base, testColumns), Align(withExtra, testColumns)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("vec[%d] got: %v, expected: %v", i, b[i], a[i])
		}
	}
	dropped := Dropped(withExtra, testColumns)
	if len(dropped) != 1 || dropped[0] != "OverTime_Sometimes" {
		t.Errorf("dropped got: %v, expected: [OverTime_Sometimes]", dropped)
	}
}

func TestAlign_OrderFidelity(t *testing.T) {
	t.Parallel()
	m, err := Encode(scenarioRecord(record.OverTimeYes).Fields())
	if err != nil {
		t.Fatalf("encode got: %v, expected: nil", err)
	}
	reversed := make([]string, len(testColumns))
	for i, c := range testColumns {
		reversed[len(testColumns)-1-i] = c
	}
	a, b := Align(m, testColumns), Align(m, reversed)
	for i := range a {
		if a[i] != b[len(b)-1-i] {
			t.Errorf("column %s got: %v, expected: %v", testColumns[i], b[len(b)-1-i], a[i])
		}
	}
	as, bs := append([]float64(nil), a...), append([]float64(nil), b...)
	sort.Float64s(as)
	sort.Float64s(bs)
	for i := range as {
		if as[i] != bs[i] {
			t.Fatalf("value multiset differs at %d: %v != %v", i, as[i], bs[i])
		}
	}
}

func TestAlign_Deterministic(t *testing.T) {
	t.Parallel()
	m, _ := Encode(scenarioRecord(record.OverTimeNo).Fields())
	first := Align(m, testColumns)
	for n := 0; n < 10; n++ {
		next := Align(m, testColumns)
		for i := range first {
			if first[i] != next[i] {
				t.Fatalf("run %d vec[%d] got: %v, expected: %v", n, i, next[i], first[i])
			}
		}
	}
}
