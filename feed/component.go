package feed

import (
	"context"

	"github.com/synapseiq/site/component"
)

// Name implements component.Component.
func (f *Feed) Name() string { return componentName }

// Start runs the initial load. A failed load is kept in the feed state and
// does not fail startup.
func (f *Feed) Start(ctx context.Context) error {
	err := f.InitialLoad(ctx)
	if f.State() == StateClosed {
		return err
	}
	return nil
}

// Stop closes the feed.
func (f *Feed) Stop(_ context.Context) error {
	return f.Close()
}

// Health reports degraded while the last operation has failed.
func (f *Feed) Health(_ context.Context) component.Health {
	h := component.Health{Name: componentName, Status: component.StatusHealthy}
	snap := f.Snapshot()
	switch snap.State {
	case StateClosed:
		h.Status, h.Message = component.StatusUnhealthy, "closed"
	case StateErrored:
		h.Status, h.Message = component.StatusDegraded, snap.Err.Error()
	}
	return h
}

// Describe implements component.Describable.
func (f *Feed) Describe() component.Description {
	return component.Description{
		Name:    componentName,
		Type:    "feed",
		Details: "fallback=" + f.opts.Fallback.String(),
	}
}
