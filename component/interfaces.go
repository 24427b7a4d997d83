package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name" yaml:"name"`
	Status  HealthStatus `json:"status" yaml:"status"`
	Message string       `json:"message,omitempty" yaml:"message,omitempty"`
}

// Component represents a lifecycle-managed piece of client infrastructure
// (a transport, a credential store).
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string

	// Start initializes and starts the component.
	Start(ctx context.Context) error

	// Stop shuts down the component and releases resources.
	Stop(ctx context.Context) error

	// Health returns the current health status of the component.
	Health(ctx context.Context) Health
}

// Description holds summary information for a component.
type Description struct {
	// Name is the human-readable display name.
	// If empty, the component's Name() is used.
	Name string `json:"name" yaml:"name"`
	// Type categorizes the component: "http-transport", "credentials", ...
	Type string `json:"type" yaml:"type"`
	// Details is a human-readable one-liner, e.g. "timeout=30s tls".
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
}

// Describable is optionally implemented by Components to report what they
// are and how they are configured.
type Describable interface {
	Describe() Description
}
