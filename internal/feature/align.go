package feature

import "sort"

// FillValue is used for every schema column the encoded map does not cover.
const FillValue = 0.0

// Vector is a dense feature vector in schema column order.
type Vector []float64

func (v Vector) Point(idx int) float64 {
	return v[idx]
}

func (v Vector) Dimensions() int {
	return len(v)
}

func (v Vector) Points() []float64 {
	return v
}

// Align lays the encoded map out in the order of columns. Columns absent from
// m take FillValue; keys of m that are not columns are dropped.
func Align(m Map, columns []string) Vector {
	vec := make(Vector, len(columns))
	for i, col := range columns {
		if v, ok := m[col]; ok {
			vec[i] = v
			continue
		}
		vec[i] = FillValue
	}
	return vec
}

// Dropped returns the keys of m that Align discards for the given columns.
func Dropped(m Map, columns []string) []string {
	known := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		known[col] = struct{}{}
	}
	var dropped []string
	for k := range m {
		if _, ok := known[k]; !ok {
			dropped = append(dropped, k)
		}
	}
	sort.Strings(dropped)
	return dropped
}
