// Package commands implements the intensity CLI subcommands.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/intensity/pkg/observability"
	"github.com/Sumatoshi-tech/intensity/pkg/version"
)

const binaryName = "intensity"

// InitFunc initializes observability providers for a command.
type InitFunc func(observability.Config) (observability.Providers, error)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	verbose    bool
	quiet      bool
	noColor    bool
}

// NewRootCommand creates the intensity root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	return newRootCommandWithDeps(observability.Init)
}

func newRootCommandWithDeps(initObs InitFunc) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   binaryName,
		Short: "Intensity - piecewise-constant range updates over the integer line",
		Long: `Intensity maintains a step function over integer coordinates and applies
additive (add) and absolute (set) range updates to it.

Commands:
  run       Execute a YAML or JSON script of store operations
  demo      Execute the built-in reference scenario
  validate  Check a script against the script schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is ./intensity.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress output")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newRunCommand(opts, initObs))
	rootCmd.AddCommand(newDemoCommand(opts, initObs))
	rootCmd.AddCommand(newValidateCommand(opts, initObs))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String(binaryName))
		},
	}
}
