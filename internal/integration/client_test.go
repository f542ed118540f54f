package integration

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-sod/attrition/internal/artifact"
	"github.com/go-sod/attrition/internal/httputil"
	"github.com/go-sod/attrition/internal/predict"
	"github.com/go-sod/attrition/internal/predictor"
	"github.com/go-sod/attrition/internal/server"
	"github.com/go-sod/attrition/internal/setup"
)

func newTestServer(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()
	provide, err := setup.ProvidePipelineFor(
		&predictor.Config{Type: predictor.AlgTypeForest, ModelName: "model_rf.json", SchemaName: "model_columns.json"},
		func(context.Context) (artifact.Source, error) {
			return artifact.NewFileSource("../../testdata"), nil
		},
	)
	if err != nil {
		t.Fatalf("provide for got: %v, expected: nil", err)
	}
	svc, err := provide(ctx)
	if err != nil {
		t.Fatalf("provide pipeline got: %v, expected: nil", err)
	}
	handler, err := predict.NewHandler(&predict.Config{MaxDataItemsLen: 10, MaxConcurrency: 2}, svc)
	if err != nil {
		t.Fatalf("new handler got: %v, expected: nil", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/predict", handler)
	mux.Handle("/schema", predict.HandleSchema(svc))
	mux.Handle("/health", server.HandleHealth(ctx))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewClient(strings.TrimPrefix(srv.URL, "http://"), httputil.HTTPClientConfig{})
}

func TestClient_Predict(t *testing.T) {
	t.Parallel()
	client := newTestServer(t)
	tests := []struct {
		name        string
		fields      map[string]interface{}
		class       string
		probability float64
	}{
		{
			name:        "form_defaults",
			fields:      map[string]interface{}{},
			class:       "stays",
			probability: 0.575,
		},
		{
			name:        "overtime_low_income",
			fields:      map[string]interface{}{"OverTime": "Yes", "MonthlyIncome": 2000},
			class:       "leaves",
			probability: 0.65,
		},
		{
			name:        "no_overtime_low_income",
			fields:      map[string]interface{}{"OverTime": "No", "MonthlyIncome": 2000},
			class:       "stays",
			probability: 0.6,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			item, err := client.Predict(context.Background(), test.fields)
			if err != nil {
				t.Fatalf("predict got: %v, expected: nil", err)
			}
			if item.Class != test.class {
				t.Errorf("class got: %s, expected: %s", item.Class, test.class)
			}
			if math.Abs(item.Probability-test.probability) > 1e-9 {
				t.Errorf("probability got: %v, expected: %v", item.Probability, test.probability)
			}
			if item.ID == "" {
				t.Errorf("id got: empty, expected: uuid")
			}
		})
	}
}

func TestClient_PredictInvalid(t *testing.T) {
	t.Parallel()
	client := newTestServer(t)
	tests := []struct {
		name   string
		fields map[string]interface{}
		kind   string
	}{
		{name: "unknown_field", fields: map[string]interface{}{"Salary": 1}, kind: "unknown_field"},
		{name: "out_of_range", fields: map[string]interface{}{"Age": 17}, kind: "domain_violation"},
		{name: "bad_category", fields: map[string]interface{}{"OverTime": "Maybe"}, kind: "domain_violation"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := client.Predict(context.Background(), test.fields)
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("predict got: %v, expected: *StatusError", err)
			}
			if statusErr.Code != http.StatusBadRequest {
				t.Errorf("status got: %d, expected: %d", statusErr.Code, http.StatusBadRequest)
			}
			if statusErr.Body.Kind != test.kind {
				t.Errorf("kind got: %s, expected: %s", statusErr.Body.Kind, test.kind)
			}
		})
	}
}

func TestClient_SchemaAndHealth(t *testing.T) {
	t.Parallel()
	client := newTestServer(t)
	columns, err := client.Schema(context.Background())
	if err != nil {
		t.Fatalf("schema got: %v, expected: nil", err)
	}
	if len(columns) != 16 || columns[15] != "OverTime_Yes" {
		t.Errorf("columns got: %v, expected: 16 columns ending in OverTime_Yes", columns)
	}
	resp, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("health got: %v, expected: nil", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status got: %d, expected: %d", resp.StatusCode, http.StatusOK)
	}
}
