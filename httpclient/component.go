package httpclient

import (
	"context"

	"github.com/synapseiq/site/component"
)

// Component registers the testimonials API adapter with the bootstrap
// registry. The adapter does not exist until Start.
type Component struct {
	cfg     Config
	opts    []Option
	adapter *Adapter
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{cfg: cfg, opts: opts}
}

func (c *Component) Name() string {
	if c.cfg.Name != "" {
		return c.cfg.Name
	}
	return "http"
}

func (c *Component) Start(context.Context) error {
	a, err := New(c.cfg, c.opts...)
	if err != nil {
		return err
	}
	c.adapter = a
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	if c.adapter == nil {
		return nil
	}
	return c.adapter.Close(ctx)
}

// Health is unhealthy before Start and while the circuit breaker is open.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if c.adapter == nil || !c.adapter.IsAvailable(ctx) {
		h.Status = component.StatusUnhealthy
	}
	return h
}

func (c *Component) Describe() component.Description {
	return component.Description{Name: c.Name(), Type: "http-adapter", Details: c.cfg.BaseURL}
}

// Adapter is nil before Start.
func (c *Component) Adapter() *Adapter { return c.adapter }
