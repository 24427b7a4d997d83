package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/devportal/adminapi"
	"github.com/kbukum/devportal/component"
	"github.com/kbukum/devportal/jira"
	"github.com/kbukum/devportal/servicedata"
)

// componentStatus is one entry of the status report.
type componentStatus struct {
	component.Description
	Status  component.HealthStatus `json:"status"`
	Message string                 `json:"message,omitempty"`
}

func newComponentStatus(d component.Description, h component.Health) componentStatus {
	return componentStatus{Description: d, Status: h.Status, Message: h.Message}
}

func (c *cli) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the configured transports and the keyring with their health",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			clients := []string{adminapi.ClientName, jira.ClientName, servicedata.ClientName}
			return c.run(cmd.Context(), clients, func(ctx context.Context, rt *session) (any, error) {
				return rt.status(ctx), nil
			})
		},
	}
}

// status describes every registered component, then the keyring, opening
// it first.
func (rt *session) status(ctx context.Context) []componentStatus {
	descriptions := rt.components.Describe()
	health := rt.components.HealthAll(ctx)

	statuses := make([]componentStatus, 0, len(descriptions)+1)
	for i, d := range descriptions {
		statuses = append(statuses, newComponentStatus(d, health[i]))
	}

	ring := component.Health{Name: rt.keyring.Name(), Status: component.StatusUnhealthy}
	if err := rt.keyring.Initialize(ctx); err != nil {
		ring.Message = err.Error()
	} else {
		ring = rt.keyring.Health(ctx)
	}
	return append(statuses, newComponentStatus(rt.keyring.Describe(), ring))
}
