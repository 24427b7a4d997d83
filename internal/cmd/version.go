package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/devportal/version"
)

func (c *cli) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print version information",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printer().Print(version.Get())
		},
	}
}
