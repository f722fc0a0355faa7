package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/synapseiq/site/logger"
)

// InstrumentationName names the tracer and meter used across the module.
const InstrumentationName = "github.com/synapseiq/site"

// Service identifies the process in exported telemetry.
type Service struct {
	Name        string
	Version     string
	Environment string
}

func (s Service) resource() (*resource.Resource, error) {
	return resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(s.Name),
		semconv.ServiceVersion(s.Version),
		attribute.String("environment", s.Environment),
	))
}

// Setup installs OTLP/HTTP trace and metric providers as the otel globals
// and returns a shutdown that flushes both. With cfg.Enabled unset nothing
// is installed and shutdown does nothing.
func Setup(ctx context.Context, cfg Config, svc Service) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	cfg.ApplyDefaults()

	res, err := svc.resource()
	if err != nil {
		return nil, fmt.Errorf("observability: resource: %w", err)
	}
	tp, err := installTracer(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	mp, err := installMeter(ctx, cfg, res)
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx))
	}

	logger.Info("telemetry export enabled", logger.Fields(
		"service", svc.Name,
		"endpoint", cfg.Endpoint,
		"sample_rate", cfg.SampleRate,
		"interval", cfg.Interval.String(),
	))
	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
