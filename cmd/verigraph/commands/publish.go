package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verigraph/verigraph/internal/store"
	"github.com/verigraph/verigraph/pkg/cfg"
)

var (
	publishFlags pipelineFlags
	publishURI   string
	publishUser  string
	publishPass  string
	publishClean bool
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish <file>",
	Short: "Load the simplified graph into Neo4j",
	Long: `Runs the pipeline and upserts the simplified graph's nodes and edges into
a Neo4j database for interactive exploration. Node keys are namespaced by
the input's base name, so republishing the same file is idempotent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		conf, err := loadConfig()
		if err != nil {
			return err
		}
		publishFlags.resolve(conf)
		if publishURI == "" {
			publishURI = conf.Neo4jURI
		}
		if publishUser == "" {
			publishUser = conf.Neo4jUser
		}
		if publishPass == "" {
			publishPass = conf.Neo4jPassword
		}

		graph, err := buildSimplified(filePath, publishFlags)
		if err != nil {
			return err
		}

		ctx := context.Background()
		loader, err := store.New(ctx, publishURI, publishUser, publishPass)
		if err != nil {
			return err
		}
		defer loader.Close()

		if publishClean {
			if err := loader.Clean(); err != nil {
				return fmt.Errorf("cleaning existing graph data: %w", err)
			}
		}
		if err := loader.EnsureIndexes(); err != nil {
			return fmt.Errorf("creating indexes: %w", err)
		}

		snapshot := cfg.NewExport(graph, baseName(filePath), nil)
		if err := loader.Publish(snapshot); err != nil {
			return fmt.Errorf("publishing graph: %w", err)
		}

		fmt.Printf("Published %d nodes and %d edges to %s\n", len(snapshot.Nodes), len(snapshot.Edges), publishURI)
		return nil
	},
}

func init() {
	addPipelineFlags(publishCmd, &publishFlags)
	publishCmd.Flags().StringVar(&publishURI, "uri", "", "Neo4j bolt URI (default from config)")
	publishCmd.Flags().StringVar(&publishUser, "user", "", "Neo4j username (default from config)")
	publishCmd.Flags().StringVar(&publishPass, "password", "", "Neo4j password (default from config)")
	publishCmd.Flags().BoolVar(&publishClean, "clean", false, "Remove previously published graph data first")
	RootCmd.AddCommand(publishCmd)
}
