package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/synapseiq/site/bootstrap"
	"github.com/synapseiq/site/config"
	apperrors "github.com/synapseiq/site/errors"
	"github.com/synapseiq/site/httpclient"
	"github.com/synapseiq/site/logger"
	"github.com/synapseiq/site/observability"
	"github.com/synapseiq/site/testimonial"
	"github.com/synapseiq/site/version"
)

// runtime is the wired application shared by the API-backed commands.
type runtime struct {
	app    *bootstrap.App[*config.SiteConfig]
	api    *httpclient.Component
	source *apiSource
}

func loadConfig(opts *rootOptions) (*config.SiteConfig, error) {
	var loaderOpts []config.LoaderOption
	if opts.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(opts.configFile))
	}
	if opts.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(opts.envFile))
	}
	cfg, err := config.LoadSiteConfig(serviceName, loaderOpts...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.baseURL != "" {
		cfg.API.BaseURL = opts.baseURL
	}
	if cfg.Version == "dev" {
		cfg.Version = version.Get().Short()
	}
	return cfg, nil
}

// newRuntime loads config, starts telemetry and registers the API client.
func newRuntime(ctx context.Context, opts *rootOptions) (*runtime, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return nil, err
	}
	logger.RegisterDefaults("feed", "testimonial")

	shutdown, err := observability.Setup(ctx, cfg.Observability, observability.Service{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	})
	if err != nil {
		return nil, err
	}
	app.OnStop(bootstrap.Hook(shutdown))

	metrics, err := observability.NewFetchMetrics(observability.Meter(observability.InstrumentationName))
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	api := httpclient.NewComponent(cfg.HTTPClientConfig())
	if err := app.RegisterComponent(api); err != nil {
		return nil, err
	}

	return &runtime{
		app: app,
		api: api,
		source: &apiSource{
			api:  api,
			opts: []testimonial.HTTPSourceOption{testimonial.WithMetrics(metrics)},
		},
	}, nil
}

// admin returns a write client. It fails until the API component has
// started.
func (rt *runtime) admin() (*testimonial.Admin, error) {
	a := rt.api.Adapter()
	if a == nil {
		return nil, apperrors.ServiceUnavailable("testimonials API")
	}
	return testimonial.NewAdmin(a), nil
}

// apiSource builds the HTTP source on first use, after the API component
// has created its adapter.
type apiSource struct {
	api  *httpclient.Component
	opts []testimonial.HTTPSourceOption

	mu  sync.Mutex
	src *testimonial.HTTPSource
}

func (s *apiSource) Fetch(ctx context.Context, q testimonial.Query) (testimonial.Page, error) {
	src, err := s.get()
	if err != nil {
		return testimonial.Page{}, err
	}
	return src.Fetch(ctx, q)
}

func (s *apiSource) get() (*testimonial.HTTPSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.src == nil {
		a := s.api.Adapter()
		if a == nil {
			return nil, apperrors.ServiceUnavailable("testimonials API")
		}
		s.src = testimonial.NewHTTPSource(a, s.opts...)
	}
	return s.src, nil
}
