// Package commands provides the CLI commands for the verigraph tool.
package commands

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "verigraph",
	Short: "verigraph - Verification-path extraction for annotated functions",
	Long: `verigraph translates annotated source functions (pre!/post!/invariant!)
into control flow graphs and enumerates the verification paths between
annotation points, producing graph descriptions for deductive-verification
tooling.

Commands:
  graph       Build and simplify the CFG of an annotated file
  paths       Enumerate verification paths and write one graph per path
  export      Dump the simplified graph in a machine-readable format
  publish     Load the simplified graph into Neo4j
  registry    Show the loaded contract registry
  init        Initialize verigraph configuration interactively

Use "verigraph [command] --help" for more information about a command.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return RootCmd.Execute()
}
