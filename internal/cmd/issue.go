package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/devportal/jira"
	"github.com/kbukum/devportal/validation"
)

var jiraClients = []string{jira.ClientName}

// withJira runs fn with a Jira client built from the loaded configuration.
func (c *cli) withJira(cmd *cobra.Command, fn func(ctx context.Context, client *jira.Client) (any, error)) error {
	return c.run(cmd.Context(), jiraClients, func(ctx context.Context, rt *session) (any, error) {
		client, err := rt.jiraClient(ctx)
		if err != nil {
			return nil, err
		}
		return fn(ctx, client)
	})
}

func (c *cli) newIssueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "issue",
		Aliases: []string{"issues"},
		Short:   "Manage service review issues on the Jira board",
	}
	cmd.AddCommand(
		c.newIssueCreateCmd(),
		c.newIssueDeleteCmd(),
		c.newIssueCommentCmd(),
		c.newIssueTransitionCmd(),
		c.newIssueSearchCmd(),
	)
	return cmd
}

func (c *cli) newIssueCreateCmd() *cobra.Command {
	var (
		title       string
		description string
		serviceID   string
		labels      []string
	)
	cmd := &cobra.Command{
		Use:   "create --service <service-id> --title <title> --description <text>",
		Short: "Open a review task for a service",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := validation.New().
				Required("--service", serviceID).
				Required("--title", title).
				MaxLength("--title", title, maxSummaryLength)
			if err := checkArgs(v); err != nil {
				return err
			}
			return c.withJira(cmd, func(ctx context.Context, client *jira.Client) (any, error) {
				return valueOf(ctx, client.CreateIssue(title, description, serviceID, labels...))
			})
		},
	}
	cmd.Flags().StringVar(&serviceID, "service", "", "Service id")
	cmd.Flags().StringVar(&title, "title", "", "Issue summary")
	cmd.Flags().StringVar(&description, "description", "", "Issue description")
	cmd.Flags().StringSliceVar(&labels, "label", nil, "Additional label (repeatable)")
	return cmd
}

func (c *cli) newIssueDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <issue-id>",
		Short: "Delete an issue",
		Args:  exactArgs(1, "issue-id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withJira(cmd, func(ctx context.Context, client *jira.Client) (any, error) {
				return client.DeleteIssue(args[0]).Run(ctx).Unwrap()
			})
		},
	}
}

func (c *cli) newIssueCommentCmd() *cobra.Command {
	var body string
	cmd := &cobra.Command{
		Use:   "comment <issue-id> --body <text>",
		Short: "Comment on an issue",
		Args:  exactArgs(1, "issue-id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkArgs(validation.New().Required("--body", body)); err != nil {
				return err
			}
			return c.withJira(cmd, func(ctx context.Context, client *jira.Client) (any, error) {
				return valueOf(ctx, client.CreateIssueComment(args[0], body))
			})
		},
	}
	cmd.Flags().StringVar(&body, "body", "", "Comment text")
	return cmd
}

func (c *cli) newIssueTransitionCmd() *cobra.Command {
	var (
		transitionID string
		comment      string
	)
	cmd := &cobra.Command{
		Use:   "transition <issue-id> --to <transition-id>",
		Short: "Move an issue through a workflow transition",
		Args:  exactArgs(1, "issue-id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkArgs(validation.New().Required("--to", transitionID)); err != nil {
				return err
			}
			return c.withJira(cmd, func(ctx context.Context, client *jira.Client) (any, error) {
				return client.ApplyIssueTransition(args[0], transitionID, comment).Run(ctx).Unwrap()
			})
		},
	}
	cmd.Flags().StringVar(&transitionID, "to", "", "Transition id")
	cmd.Flags().StringVar(&comment, "comment", "", "Comment added with the transition")
	return cmd
}

func (c *cli) newIssueSearchCmd() *cobra.Command {
	var (
		serviceID string
		status    string
	)
	cmd := &cobra.Command{
		Use:   "search --service <service-id> [--status <status>]",
		Short: "List the issues of a service",
		Long:  "Without --status, list the open review issues of the service. With --status, list the issues in that status, deactivation requests included.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkArgs(validation.New().Required("--service", serviceID)); err != nil {
				return err
			}
			return c.withJira(cmd, func(ctx context.Context, client *jira.Client) (any, error) {
				if status != "" {
					return valueOf(ctx, client.GetServiceIssuesByStatus(serviceID, status))
				}
				return valueOf(ctx, client.SearchServiceIssues(serviceID))
			})
		},
	}
	cmd.Flags().StringVar(&serviceID, "service", "", "Service id")
	cmd.Flags().StringVar(&status, "status", "", "Issue status, e.g. DONE")
	return cmd
}
