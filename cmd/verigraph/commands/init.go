package commands

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/verigraph/verigraph/internal/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize verigraph configuration interactively",
	Long: `Guides you through setting up verigraph configuration step by step.
Creates a project config file with the registry location, output directory
and optional Neo4j connection settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func runInit() error {
	cfg := config.DefaultConfig()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Contract registry file").
				Description("JSON file mapping callables to their pre/postconditions").
				Placeholder("conditions.json").
				Value(&cfg.RegistryPath),
			huh.NewInput().
				Title("Output directory").
				Description("Directory for generated graph description files").
				Placeholder("graphs").
				Value(&cfg.OutputDir),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	var configureNeo4j bool
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Configure Neo4j for the publish command?").
				Affirmative("Yes").
				Negative("No, skip").
				Value(&configureNeo4j),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	if configureNeo4j {
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Neo4j bolt URI").
					Placeholder("bolt://localhost:7687").
					Value(&cfg.Neo4jURI),
				huh.NewInput().
					Title("Neo4j username").
					Placeholder("neo4j").
					Value(&cfg.Neo4jUser),
				huh.NewInput().
					Title("Neo4j password (optional, press Enter to skip)").
					Placeholder("optional").
					Value(&cfg.Neo4jPassword),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	path := ".verigraph/config.yaml"
	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Printf("Configuration written to %s\n", path)
	return nil
}

func init() {
	RootCmd.AddCommand(initCmd)
}
