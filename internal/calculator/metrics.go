package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metric instruments, replaced by InitMetrics. The no-op defaults keep the
// handlers usable when no meter provider was installed.
var (
	opsCounter     metric.Int64Counter     = noop.Int64Counter{}
	opsHistogram   metric.Float64Histogram = noop.Float64Histogram{}
	errorCounter   metric.Int64Counter     = noop.Int64Counter{}
	invalidCounter metric.Int64Counter     = noop.Int64Counter{}
	resultGauge    metric.Int64Gauge       = noop.Int64Gauge{}
)

// InitMetrics registers custom OTel metric instruments for the calculator domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	opsCounter, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Total number of calculator operations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Duration of calculator operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of calculator errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	invalidCounter, err = meter.Int64Counter("calculator.invalid_digits.total",
		metric.WithDescription("Operands rejected because a digit is outside the base alphabet"),
		metric.WithUnit("{operand}"),
	)
	if err != nil {
		return fmt.Errorf("creating invalid digits counter: %w", err)
	}

	resultGauge, err = meter.Int64Gauge("calculator.last_result",
		metric.WithDescription("Decimal value of the last calculator result"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	return nil
}
