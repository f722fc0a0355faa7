package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

func installMeter(ctx context.Context, cfg Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("observability: metric exporter: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.Interval))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res))
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric names.
const (
	MetricFetchTotal    = "testimonials.fetch.total"
	MetricFetchDuration = "testimonials.fetch.duration"
	MetricFetchRecords  = "testimonials.fetch.records"
)

// FetchMetrics holds the instruments recorded for each testimonial page fetch.
type FetchMetrics struct {
	fetchTotal    metric.Int64Counter
	fetchDuration metric.Float64Histogram
	fetchRecords  metric.Int64Counter
}

// NewFetchMetrics creates fetch instruments on the given meter.
func NewFetchMetrics(meter metric.Meter) (*FetchMetrics, error) {
	fetchTotal, err := meter.Int64Counter(MetricFetchTotal,
		metric.WithDescription("Total number of testimonial page fetches by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricFetchTotal, err)
	}

	fetchDuration, err := meter.Float64Histogram(MetricFetchDuration,
		metric.WithDescription("Duration of testimonial page fetches in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricFetchDuration, err)
	}

	fetchRecords, err := meter.Int64Counter(MetricFetchRecords,
		metric.WithDescription("Total number of testimonial records received"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricFetchRecords, err)
	}

	return &FetchMetrics{
		fetchTotal:    fetchTotal,
		fetchDuration: fetchDuration,
		fetchRecords:  fetchRecords,
	}, nil
}

// RecordFetch records one page fetch. status is "ok", "malformed" or an
// error code.
func (m *FetchMetrics) RecordFetch(ctx context.Context, status string, records int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.fetchTotal.Add(ctx, 1, attrs)
	m.fetchDuration.Record(ctx, duration.Seconds(), attrs)
	if records > 0 {
		m.fetchRecords.Add(ctx, int64(records))
	}
}
