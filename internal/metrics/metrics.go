package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const Namespace = "attrition"

var (
	PredictLatencyMs = stats.Float64("predict/latency", "pipeline latency per record", stats.UnitMilliseconds)
	Predictions      = stats.Int64("predict/count", "completed predictions", stats.UnitDimensionless)
	Failures         = stats.Int64("predict/errors", "rejected or failed predictions", stats.UnitDimensionless)
	DroppedColumns   = stats.Int64("align/dropped_columns", "encoded columns absent from the schema", stats.UnitDimensionless)
)

var (
	KeyLabel = tag.MustNewKey("label")
	KeyKind  = tag.MustNewKey("kind")
)

var Views = []*view.View{
	{
		Name:        "predict_latency_ms",
		Measure:     PredictLatencyMs,
		Description: "Distribution of pipeline latency",
		Aggregation: view.Distribution(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50),
	},
	{
		Name:        "predictions_total",
		Measure:     Predictions,
		Description: "Completed predictions by label",
		TagKeys:     []tag.Key{KeyLabel},
		Aggregation: view.Count(),
	},
	{
		Name:        "prediction_errors_total",
		Measure:     Failures,
		Description: "Failed predictions by error kind",
		TagKeys:     []tag.Key{KeyKind},
		Aggregation: view.Count(),
	},
	{
		Name:        "dropped_columns_total",
		Measure:     DroppedColumns,
		Description: "Encoded columns dropped during alignment",
		Aggregation: view.Sum(),
	},
}

// Register registers the views and returns the prometheus exporter that
// serves them.
func Register() (http.Handler, error) {
	if err := view.Register(Views...); err != nil {
		return nil, fmt.Errorf("register views: %w", err)
	}
	exporter, err := prometheus.NewExporter(prometheus.Options{Namespace: Namespace})
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	return exporter, nil
}

func RecordPrediction(ctx context.Context, label string, elapsed time.Duration) {
	_ = stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(KeyLabel, label)}, Predictions.M(1))
	stats.Record(ctx, PredictLatencyMs.M(float64(elapsed)/float64(time.Millisecond)))
}

func RecordFailure(ctx context.Context, kind string) {
	_ = stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(KeyKind, kind)}, Failures.M(1))
}

func RecordDropped(ctx context.Context, n int) {
	if n > 0 {
		stats.Record(ctx, DroppedColumns.M(int64(n)))
	}
}
