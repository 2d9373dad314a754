package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verigraph/verigraph/internal/config"
	"github.com/verigraph/verigraph/internal/log"
	"github.com/verigraph/verigraph/pkg/cfg"
	"github.com/verigraph/verigraph/pkg/contracts"
)

// pipelineFlags are the flags shared by every command that runs the
// build-simplify pipeline over one input file.
type pipelineFlags struct {
	registryPath string
	outputDir    string
	function     string
}

func addPipelineFlags(cmd *cobra.Command, f *pipelineFlags) {
	cmd.Flags().StringVar(&f.registryPath, "registry", "", "Contract registry JSON file (default from config)")
	cmd.Flags().StringVarP(&f.outputDir, "out", "o", "", "Output directory for graph files (default from config)")
	cmd.Flags().StringVarP(&f.function, "function", "f", "", "Translate only the named function")
}

// resolve fills unset flags from the loaded configuration.
func (f *pipelineFlags) resolve(cfg *config.Config) {
	if f.registryPath == "" {
		f.registryPath = cfg.RegistryPath
	}
	if f.outputDir == "" {
		f.outputDir = cfg.OutputDir
	}
}

// loadRegistry loads the contract registry, degrading to an empty registry
// with a warning when the file is missing or malformed. Translation then
// proceeds with every call treated as a plain statement.
func loadRegistry(path string) *contracts.Registry {
	reg, err := contracts.Load(path)
	if err != nil {
		log.Default().Warn("failed to load contract registry, continuing without contracts", "error", err)
		return contracts.Empty()
	}
	log.Default().Debug("contract registry loaded", "path", path, "entries", reg.Len())
	return reg
}

// buildSimplified runs the front half of the pipeline: parse, translate,
// simplify. Input failures are fatal to the run.
func buildSimplified(filePath string, f pipelineFlags) (*cfg.Graph, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, expected a file: %s", filePath)
	}

	reg := loadRegistry(f.registryPath)

	var graph *cfg.Graph
	if f.function != "" {
		src, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("reading file %s: %w", filePath, err)
		}
		graph, err = cfg.BuildFunction(src, f.function, reg)
		if err != nil {
			return nil, fmt.Errorf("building CFG: %w", err)
		}
	} else {
		graph, err = cfg.BuildFile(filePath, reg)
		if err != nil {
			return nil, fmt.Errorf("building CFG: %w", err)
		}
	}

	if err := cfg.Simplify(graph); err != nil {
		return nil, fmt.Errorf("simplifying CFG: %w", err)
	}

	return graph, nil
}

// loadConfig loads the layered configuration and applies the verbose level.
func loadConfig() (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.Verbose {
		log.Default().SetLevel(log.DebugLevel)
	}
	return c, nil
}

// baseName returns the input's file name without its extension, used to name
// the whole-graph output file.
func baseName(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeArtifact writes one output file, creating the directory if absent.
// Output failures are fatal for the artifact and therefore for the run.
func writeArtifact(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
