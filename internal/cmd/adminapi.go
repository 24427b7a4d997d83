package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/devportal/adminapi"
	"github.com/kbukum/devportal/validation"
)

var adminClients = []string{adminapi.ClientName}

func (c *cli) newServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage services on the administrative API",
	}

	get := &cobra.Command{
		Use:   "get <service-id>",
		Short: "Get a service",
		Args:  exactArgs(1, "service-id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context(), adminClients, func(ctx context.Context, rt *session) (any, error) {
				client, err := rt.adminAPI(ctx)
				if err != nil {
					return nil, err
				}
				return valueOf(ctx, client.GetService(args[0]))
			})
		},
	}

	var createFile string
	create := &cobra.Command{
		Use:   "create --file <service.yml>",
		Short: "Create a service from a YAML or JSON document",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var service adminapi.Service
			if err := readDocument(cmd.InOrStdin(), createFile, &service); err != nil {
				return err
			}
			return c.run(cmd.Context(), adminClients, func(ctx context.Context, rt *session) (any, error) {
				client, err := rt.adminAPI(ctx)
				if err != nil {
					return nil, err
				}
				return valueOf(ctx, client.CreateService(service))
			})
		},
	}
	create.Flags().StringVarP(&createFile, "file", "f", "", "Service document ('-' for stdin)")

	var updateFile string
	update := &cobra.Command{
		Use:   "update <service-id> --file <service.yml>",
		Short: "Replace a service with a YAML or JSON document",
		Args:  exactArgs(1, "service-id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var service adminapi.Service
			if err := readDocument(cmd.InOrStdin(), updateFile, &service); err != nil {
				return err
			}
			return c.run(cmd.Context(), adminClients, func(ctx context.Context, rt *session) (any, error) {
				client, err := rt.adminAPI(ctx)
				if err != nil {
					return nil, err
				}
				return valueOf(ctx, client.UpdateService(args[0], service))
			})
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "", "Service document ('-' for stdin)")

	cmd.AddCommand(get, create, update)
	return cmd
}

func (c *cli) newMessageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Send messages to citizens",
	}

	var (
		file    string
		message adminapi.NewMessage
		email   string
	)
	send := &cobra.Command{
		Use:   "send <fiscal-code>",
		Short: "Send a message to the citizen with the given fiscal code",
		Long:  "Send a message built from --subject/--markdown or read from --file.",
		Args:  exactArgs(1, "fiscal-code"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkArgs(validation.New().FiscalCode("fiscal-code", args[0])); err != nil {
				return err
			}
			if file != "" {
				if err := readDocument(cmd.InOrStdin(), file, &message); err != nil {
					return err
				}
			}
			if email != "" {
				message.DefaultAddresses = &adminapi.DefaultAddresses{Email: email}
			}
			return c.run(cmd.Context(), adminClients, func(ctx context.Context, rt *session) (any, error) {
				client, err := rt.adminAPI(ctx)
				if err != nil {
					return nil, err
				}
				return valueOf(ctx, client.SendMessage(args[0], message))
			})
		},
	}
	f := send.Flags()
	f.StringVarP(&file, "file", "f", "", "Message document ('-' for stdin)")
	f.StringVar(&message.Content.Subject, "subject", "", "Message subject (10-120 characters)")
	f.StringVar(&message.Content.Markdown, "markdown", "", "Message body in markdown (80-10000 characters)")
	f.StringVar(&message.Content.DueDate, "due-date", "", "Due date (RFC 3339)")
	f.IntVar(&message.TimeToLive, "ttl", 0, "Time to live in seconds (3600-604800)")
	f.StringVar(&email, "email", "", "Fallback e-mail address")

	cmd.AddCommand(send)
	return cmd
}

func (c *cli) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Read and write citizen profiles",
	}

	get := &cobra.Command{
		Use:   "get <fiscal-code>",
		Short: "Get the profile of a citizen",
		Args:  exactArgs(1, "fiscal-code"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkArgs(validation.New().FiscalCode("fiscal-code", args[0])); err != nil {
				return err
			}
			return c.run(cmd.Context(), adminClients, func(ctx context.Context, rt *session) (any, error) {
				client, err := rt.adminAPI(ctx)
				if err != nil {
					return nil, err
				}
				return valueOf(ctx, client.GetProfile(args[0]))
			})
		},
	}

	var file string
	set := &cobra.Command{
		Use:   "set <fiscal-code> --file <profile.yml>",
		Short: "Create or update the profile of a citizen",
		Args:  exactArgs(1, "fiscal-code"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkArgs(validation.New().FiscalCode("fiscal-code", args[0])); err != nil {
				return err
			}
			var profile adminapi.ExtendedProfile
			if err := readDocument(cmd.InOrStdin(), file, &profile); err != nil {
				return err
			}
			return c.run(cmd.Context(), adminClients, func(ctx context.Context, rt *session) (any, error) {
				client, err := rt.adminAPI(ctx)
				if err != nil {
					return nil, err
				}
				return valueOf(ctx, client.CreateOrUpdateProfile(args[0], profile))
			})
		},
	}
	set.Flags().StringVarP(&file, "file", "f", "", "Profile document ('-' for stdin)")

	cmd.AddCommand(get, set)
	return cmd
}
