// Package cmd implements the devportal command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/devportal/credentials"
	"github.com/kbukum/devportal/errors"
	"github.com/kbukum/devportal/internal/outfmt"
)

// cli holds the global flags and IO streams of one execution.
type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configFile string
	envFile    string
	output     string
	query      string
	debug      bool

	format outfmt.Format

	// openKeyring builds the keyring provider; tests substitute an in-memory one.
	openKeyring func(credentials.KeyringConfig) *credentials.Keyring
}

func newCLI(in io.Reader, out, errOut io.Writer) *cli {
	return &cli{
		in:          in,
		out:         out,
		errOut:      errOut,
		output:      defaultOutput(),
		openKeyring: credentials.NewKeyring,
	}
}

func defaultOutput() string {
	if value := strings.TrimSpace(os.Getenv("DEVPORTAL_OUTPUT")); value != "" {
		return value
	}
	return "json"
}

// Execute runs the root command. Failures are reported on stderr before
// they are returned; ExitCode maps them to a process exit code.
func Execute(ctx context.Context, args []string) error {
	return newCLI(os.Stdin, os.Stdout, os.Stderr).execute(ctx, args)
}

func (c *cli) execute(ctx context.Context, args []string) error {
	root := c.newRootCmd()
	root.SetArgs(args)
	root.SetIn(c.in)
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	err := root.ExecuteContext(ctx)
	if err != nil {
		c.reportError(err)
	}
	return err
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "devportal",
		Short:         "Operate the developer portal back-office services",
		Long:          "devportal calls the administrative API, the Jira board and the service-data API on behalf of a developer portal operator.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outfmt.Parse(c.output)
			if err != nil {
				return usageError{err}
			}
			c.format = format
			return nil
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&c.configFile, "config", "", "Config file (default: ./devportal.yml or <user config dir>/devportal/config.yml)")
	pf.StringVar(&c.envFile, "env-file", "", "Env file loaded before reading DEVPORTAL_* variables")
	pf.StringVarP(&c.output, "output", "o", c.output, "Output format: json|yaml (env DEVPORTAL_OUTPUT)")
	pf.StringVarP(&c.query, "query", "q", "", "jq expression applied to the output")
	pf.BoolVar(&c.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		c.newServiceCmd(),
		c.newMessageCmd(),
		c.newProfileCmd(),
		c.newIssueCmd(),
		c.newOrgCmd(),
		c.newSecretCmd(),
		c.newStatusCmd(),
		c.newVersionCmd(),
	)
	return root
}

func (c *cli) printer() *outfmt.Printer {
	return &outfmt.Printer{Out: c.out, Format: c.format, Query: c.query}
}

// reportError writes failures from the services as problem documents and
// anything else as a plain message.
func (c *cli) reportError(err error) {
	if errors.IsAppError(err) {
		_ = outfmt.WriteProblem(c.errOut, c.format, err)
		return
	}
	_, _ = fmt.Fprintf(c.errOut, "Error: %v\n", err)
}

// usageError marks a malformed invocation.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int, names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError{fmt.Errorf("%s requires exactly %d argument(s) (%s), got %d", cmd.CommandPath(), n, strings.Join(names, ", "), len(args))}
		}
		return nil
	}
}
