package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sod/attrition/internal/artifact"
	"github.com/go-sod/attrition/internal/logging"
)

// LoadError is returned when the schema artifact is missing, unreadable or
// does not describe a usable column list.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("schema load %s: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

var (
	ErrEmpty     = errors.New("column list is empty")
	ErrDuplicate = errors.New("duplicate column")
	ErrBlank     = errors.New("blank column name")
)

// Registry is the frozen, ordered list of feature columns the model was
// trained on. It is never modified after New returns.
type Registry struct {
	columns []string
	index   map[string]int
}

// New validates columns and builds a registry over a private copy of them.
func New(columns []string) (*Registry, error) {
	if len(columns) == 0 {
		return nil, ErrEmpty
	}
	r := &Registry{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if strings.TrimSpace(col) == "" {
			return nil, fmt.Errorf("position %d: %w", i, ErrBlank)
		}
		if _, ok := r.index[col]; ok {
			return nil, fmt.Errorf("%s: %w", col, ErrDuplicate)
		}
		r.index[col] = i
		r.columns[i] = col
	}
	return r, nil
}

// Load reads the schema artifact, a JSON array of column names.
func Load(ctx context.Context, src artifact.Source, name string) (*Registry, error) {
	logger := logging.FromContext(ctx)
	data, err := src.Load(ctx, name)
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	var columns []string
	if err := json.Unmarshal(data, &columns); err != nil {
		return nil, &LoadError{Name: name, Err: fmt.Errorf("decode column list: %w", err)}
	}
	r, err := New(columns)
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	logger.Infof("loaded schema %s with %d columns", name, r.Len())
	return r, nil
}

// Columns returns the columns in training order. The slice is shared and
// must not be modified.
func (r *Registry) Columns() []string {
	return r.columns[:len(r.columns):len(r.columns)]
}

func (r *Registry) Len() int {
	return len(r.columns)
}

// Index returns the position of the named column.
func (r *Registry) Index(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}
