// Package commands implements the CLI commands for the freshen build tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/freshen/internal/app"
	"go.trai.ch/freshen/internal/build"
	"go.trai.ch/freshen/internal/core/domain"
	"go.trai.ch/freshen/internal/core/ports"
)

// Application is the behavior the CLI drives.
type Application interface {
	Build(ctx context.Context, opts app.RunOptions) error
	Exec(ctx context.Context, req domain.BuildRequest, opts domain.Options) error
	Clean(ctx context.Context, opts app.RunOptions) error
	History(ctx context.Context) ([]domain.StepRecord, error)
}

// CLI represents the command line interface for freshen.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "freshen",
		Short:         "Rebuild only what is out of date",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	flags := rootCmd.PersistentFlags()
	flags.Bool("no-execute", false, "Print stale commands instead of running them")
	flags.BoolP("force", "f", false, "Treat every step as out of date")
	flags.BoolP("verbose", "v", false, "Log every staleness decision")
	flags.BoolP("debug", "d", false, "Log timestamps and internal diagnostics")
	flags.StringP("config", "c", "", "Path to the manifest (default: discover freshen.yaml, freshen.yml or freshen.toml)")
	flags.Duration("timeout", 0, "Kill any command that runs longer than this")

	// Declared after the persistent flags so --version gets no shorthand and
	// -v stays with --verbose.
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug && c.logger != nil {
			c.logger.SetLevel(domain.LogLevelDebug)
		}
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newExecCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newLogCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error writers for the root command.
func (c *CLI) SetOutput(out, errOut io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(errOut)
}

// options builds the executor configuration from the global flags.
func options(cmd *cobra.Command) domain.Options {
	opts := domain.DefaultOptions()
	flags := cmd.Flags()
	noExecute, _ := flags.GetBool("no-execute")
	opts.Execute = !noExecute
	opts.Force, _ = flags.GetBool("force")
	opts.Verbose, _ = flags.GetBool("verbose")
	opts.Debug, _ = flags.GetBool("debug")
	opts.Timeout, _ = flags.GetDuration("timeout")
	return opts
}

func runOptions(cmd *cobra.Command) app.RunOptions {
	configPath, _ := cmd.Flags().GetString("config")
	return app.RunOptions{
		ConfigPath: configPath,
		Options:    options(cmd),
	}
}
