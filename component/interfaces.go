package component

import "context"

// HealthStatus is the coarse health of a component.
type HealthStatus string

const (
	StatusHealthy HealthStatus = "healthy"
	// StatusDegraded means the component works but its last operation
	// failed, e.g. a feed holding an error that Retry can clear.
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// Health is a component's self-reported state.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is anything the registry starts and stops: the API adapter,
// the feed, the fixture server in tests.
type Component interface {
	// Name must be unique within a Registry.
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Description is the summary printed at startup.
type Description struct {
	Name    string
	Type    string
	Details string
}

// Describable components add a Description to startup logs.
type Describable interface {
	Describe() Description
}
