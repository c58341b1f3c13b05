package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricOperationsTotal   = "intensity.operations.total"
	metricOperationDuration = "intensity.operation.duration.seconds"
	metricChangePoints      = "intensity.change_points"

	attrOp     = "op"
	attrStatus = "status"

	// StatusOK marks an operation that completed.
	StatusOK = "ok"
	// StatusError marks an operation rejected by validation.
	StatusError = "error"
)

// durationBucketBoundaries covers 1µs to 1s; store operations are in-memory
// and scale with the number of change points.
var durationBucketBoundaries = []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3, 0.01, 0.1, 1}

// StoreMetrics holds the OTel instruments recorded for intensity store operations.
type StoreMetrics struct {
	operationsTotal   metric.Int64Counter
	operationDuration metric.Float64Histogram
	changePoints      metric.Int64Gauge
}

// NewStoreMetrics creates store metric instruments from the given meter.
func NewStoreMetrics(mt metric.Meter) (*StoreMetrics, error) {
	opsTotal, err := mt.Int64Counter(metricOperationsTotal,
		metric.WithDescription("Total store operations by op and status"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricOperationsTotal, err)
	}

	opDuration, err := mt.Float64Histogram(metricOperationDuration,
		metric.WithDescription("Store operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricOperationDuration, err)
	}

	points, err := mt.Int64Gauge(metricChangePoints,
		metric.WithDescription("Number of change points held after the last operation"),
		metric.WithUnit("{point}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricChangePoints, err)
	}

	return &StoreMetrics{
		operationsTotal:   opsTotal,
		operationDuration: opDuration,
		changePoints:      points,
	}, nil
}

// RecordOperation records one completed store operation.
// Safe to call on a nil receiver (no-op).
func (sm *StoreMetrics) RecordOperation(ctx context.Context, op, status string, duration time.Duration, points int) {
	if sm == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	sm.operationsTotal.Add(ctx, 1, attrs)
	sm.operationDuration.Record(ctx, duration.Seconds(), attrs)
	sm.changePoints.Record(ctx, int64(points))
}
