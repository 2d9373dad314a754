package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verigraph/verigraph/pkg/contracts"
)

var (
	registryPath string
	registryJSON bool
)

// registryCmd represents the registry command
var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Show the loaded contract registry",
	Long: `Loads the contract registry and lists every registered callable with its
preconditions and postconditions, in file order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		path := registryPath
		if path == "" {
			path = conf.RegistryPath
		}

		reg, err := contracts.Load(path)
		if err != nil {
			return err
		}

		if registryJSON {
			data, err := json.MarshalIndent(reg.Methods(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("=== Contract registry: %s (%d entries) ===\n", path, reg.Len())
		for _, m := range reg.Methods() {
			fmt.Printf("  %s\n", m.Name)
			for _, pre := range m.Preconditions {
				fmt.Printf("    pre:  %s\n", pre)
			}
			for _, post := range m.Postconditions {
				fmt.Printf("    post: %s\n", post)
			}
		}
		return nil
	},
}

func init() {
	registryCmd.Flags().StringVar(&registryPath, "registry", "", "Contract registry JSON file (default from config)")
	registryCmd.Flags().BoolVarP(&registryJSON, "json", "j", false, "Output as JSON")
	RootCmd.AddCommand(registryCmd)
}
