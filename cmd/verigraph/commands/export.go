package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/verigraph/verigraph/pkg/cfg"
)

var (
	exportFlags  pipelineFlags
	exportFormat string
	exportOutput string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Dump the simplified graph in a machine-readable format",
	Long: `Runs the pipeline and emits the simplified graph together with its
enumerated verification paths as JSON (stdout) or msgpack (file), for
consumption by downstream verification-condition generators.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		conf, err := loadConfig()
		if err != nil {
			return err
		}
		exportFlags.resolve(conf)

		graph, err := buildSimplified(filePath, exportFlags)
		if err != nil {
			return err
		}

		snapshot := cfg.NewExport(graph, baseName(filePath), cfg.EnumeratePaths(graph))

		switch exportFormat {
		case "json":
			data, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		case "msgpack":
			if exportOutput == "" {
				return fmt.Errorf("--output is required for msgpack format")
			}
			data, err := msgpack.Marshal(snapshot)
			if err != nil {
				return fmt.Errorf("marshaling msgpack: %w", err)
			}
			if err := os.WriteFile(exportOutput, data, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", exportOutput, err)
			}
			fmt.Printf("Graph exported to %s\n", exportOutput)
			return nil
		default:
			return fmt.Errorf("unknown format: %s (use 'json' or 'msgpack')", exportFormat)
		}
	},
}

func init() {
	addPipelineFlags(exportCmd, &exportFlags)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format (json or msgpack)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Output file (required for msgpack)")
	RootCmd.AddCommand(exportCmd)
}
