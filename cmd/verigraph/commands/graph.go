package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verigraph/verigraph/pkg/cfg"
)

var graphFlags pipelineFlags

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Build and simplify the control flow graph of an annotated file",
	Long: `Parses an annotated Rust file, translates every function into a control
flow graph with annotation nodes, removes the merge-point scaffolding, and
writes the result as a DOT digraph named after the input file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		conf, err := loadConfig()
		if err != nil {
			return err
		}
		graphFlags.resolve(conf)

		graph, err := buildSimplified(filePath, graphFlags)
		if err != nil {
			return err
		}

		out, err := writeArtifact(graphFlags.outputDir, baseName(filePath)+".dot", cfg.DOT(graph))
		if err != nil {
			return err
		}

		fmt.Printf("Graph written to %s (%d nodes, %d edges)\n", out, graph.NodeCount(), len(graph.Edges()))
		return nil
	},
}

func init() {
	addPipelineFlags(graphCmd, &graphFlags)
	RootCmd.AddCommand(graphCmd)
}
