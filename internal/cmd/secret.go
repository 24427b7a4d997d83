package cmd

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/devportal/credentials"
)

var secretNames = []string{
	credentials.AdminSubscriptionKey,
	credentials.JiraToken,
	credentials.ServiceDataAPIKey,
}

type secretStatus struct {
	Name   string `json:"name"`
	Stored bool   `json:"stored"`
}

func checkSecretName(name string) error {
	if !slices.Contains(secretNames, name) {
		return usageError{fmt.Errorf("unknown secret %q (use one of %s)", name, strings.Join(secretNames, ", "))}
	}
	return nil
}

func (c *cli) newSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "secret",
		Aliases: []string{"secrets"},
		Short:   "Store API credentials in the OS keyring",
	}

	var value string
	set := &cobra.Command{
		Use:   "set <name> [--value <secret>]",
		Short: "Store a secret; without --value it is read from stdin",
		Args:  exactArgs(1, "name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := checkSecretName(name); err != nil {
				return err
			}
			if value == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read secret from stdin: %w", err)
				}
				value = strings.TrimSpace(line)
			}
			if value == "" {
				return usageError{fmt.Errorf("secret %s is empty", name)}
			}
			return c.run(cmd.Context(), nil, func(ctx context.Context, rt *session) (any, error) {
				if err := rt.keyring.Set(ctx, name, value); err != nil {
					return nil, err
				}
				return secretStatus{Name: name, Stored: true}, nil
			})
		},
	}
	set.Flags().StringVar(&value, "value", "", "Secret value")

	remove := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a secret",
		Args:  exactArgs(1, "name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := checkSecretName(name); err != nil {
				return err
			}
			return c.run(cmd.Context(), nil, func(ctx context.Context, rt *session) (any, error) {
				if err := rt.keyring.Remove(ctx, name); err != nil {
					return nil, err
				}
				return secretStatus{Name: name, Stored: false}, nil
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show which secrets are stored",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context(), nil, func(ctx context.Context, rt *session) (any, error) {
				keys, err := rt.keyring.Keys(ctx)
				if err != nil {
					return nil, err
				}
				statuses := make([]secretStatus, 0, len(secretNames))
				for _, name := range secretNames {
					statuses = append(statuses, secretStatus{Name: name, Stored: slices.Contains(keys, name)})
				}
				return statuses, nil
			})
		},
	}

	cmd.AddCommand(set, remove, list)
	return cmd
}
