package terminal

import (
	"io"
	"os"

	"github.com/de-tools/library-reports/pkg/runtime/terminal/commands"
	"github.com/de-tools/library-reports/pkg/runtime/terminal/export"

	"github.com/de-tools/library-reports/pkg/services/reports"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry  *reports.Registry
	connect   commands.ConnectFunc
	reporters map[string]commands.Reporter
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry *reports.Registry
	Connect  commands.ConnectFunc
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Registry == nil {
		opts.Registry = reports.DefaultRegistry()
	}

	cli := &CLI{
		registry: opts.Registry,
		connect:  opts.Connect,
		reporters: map[string]commands.Reporter{
			"table": export.NewReporter(opts.Output),
			"plain": NewReporter(opts.Output),
		},
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Root() *cobra.Command {
	return cli.rootCmd
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "reports",
		Short:        "Library report browser",
		SilenceUsage: true,
	}

	cmd.AddCommand(commands.NewListCmd(cli.registry))
	cmd.AddCommand(commands.NewShowCmd(cli.registry, cli.connect, cli.reporters))

	return cmd
}
