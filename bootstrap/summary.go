package bootstrap

import (
	"context"
	"time"

	"github.com/synapseiq/site/component"
	"github.com/synapseiq/site/logger"
)

// ComponentInfo describes one registered component after startup.
type ComponentInfo struct {
	Name    string
	Type    string
	Details string
	Status  component.HealthStatus
}

// Summary lists the registered components with their health.
func (a *App[C]) Summary(ctx context.Context) []ComponentInfo {
	health := make(map[string]component.Health)
	for _, h := range a.Components.HealthAll(ctx) {
		health[h.Name] = h
	}

	var out []ComponentInfo
	for _, c := range a.Components.All() {
		info := ComponentInfo{Name: c.Name(), Status: health[c.Name()].Status}
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			info.Type, info.Details = desc.Type, desc.Details
		}
		out = append(out, info)
	}
	return out
}

func (a *App[C]) logSummary(ctx context.Context, took time.Duration) {
	for _, info := range a.Summary(ctx) {
		a.Logger.Debug("component ready", logger.Fields(
			logger.FieldComponent, info.Name,
			"type", info.Type,
			"details", info.Details,
			logger.FieldStatus, string(info.Status),
		))
	}
	a.Logger.Info("application started", logger.Fields(
		"name", a.Name,
		"version", a.Version,
		logger.FieldDuration, took.Milliseconds(),
	))
}
