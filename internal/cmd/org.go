package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/devportal/servicedata"
	"github.com/kbukum/devportal/validation"
)

func (c *cli) newOrgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "Query organizations on the service-data API",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "services <organization-fiscal-code>",
		Short: "List the services of an organization",
		Args:  exactArgs(1, "organization-fiscal-code"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkArgs(validation.New().OrganizationFiscalCode("organization-fiscal-code", args[0])); err != nil {
				return err
			}
			return c.run(cmd.Context(), []string{servicedata.ClientName}, func(ctx context.Context, rt *session) (any, error) {
				client, err := rt.serviceData(ctx)
				if err != nil {
					return nil, err
				}
				return valueOf(ctx, client.GetOrganizationServices(args[0]))
			})
		},
	})
	return cmd
}
