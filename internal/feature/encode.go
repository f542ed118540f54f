package feature

import (
	"github.com/go-sod/attrition/internal/record"
)

// Map holds the feature columns derived from one record. It covers only the
// columns the encoder can derive and may be a strict subset of the schema.
type Map map[string]float64

// IndicatorColumn names the one-hot column for a category of a field.
func IndicatorColumn(field, category string) string {
	return field + "_" + category
}

// Encode converts raw fields into feature columns. Numeric fields keep their
// name and value. A categorical field emits a single indicator column set to 1
// for its value, unless the value is the field's baseline, in which case it
// emits nothing.
func Encode(fields []record.Field) (Map, error) {
	m := make(Map, len(fields))
	for _, f := range fields {
		spec, ok := record.SpecFor(f.Name)
		if !ok {
			return nil, &record.UnknownFieldError{Field: f.Name}
		}
		if spec.Kind == record.KindNumeric {
			m[f.Name] = f.Value
			continue
		}
		if f.Category == spec.Baseline {
			continue
		}
		m[IndicatorColumn(f.Name, f.Category)] = 1
	}
	return m, nil
}
