package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for verigraph.
type Config struct {
	// RegistryPath is the JSON contract registry consulted at call sites.
	RegistryPath string `yaml:"registry_path" env:"VERIGRAPH_REGISTRY"`

	// OutputDir receives the generated graph description files.
	OutputDir string `yaml:"output_dir" env:"VERIGRAPH_OUTPUT_DIR"`

	// Neo4j connection settings for the publish command.
	Neo4jURI      string `yaml:"neo4j_uri" env:"VERIGRAPH_NEO4J_URI"`
	Neo4jUser     string `yaml:"neo4j_user" env:"VERIGRAPH_NEO4J_USER"`
	Neo4jPassword string `yaml:"neo4j_password" env:"VERIGRAPH_NEO4J_PASSWORD"`

	// Logging
	Verbose bool `yaml:"verbose" env:"VERIGRAPH_VERBOSE"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		RegistryPath: "conditions.json",
		OutputDir:    "graphs",
		Neo4jURI:     "bolt://localhost:7687",
		Neo4jUser:    "neo4j",
		Verbose:      false,
	}
}

// globalConfigFilePath returns the global config file path (~/.verigraph/config.yaml)
func globalConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".verigraph/config.yaml"
	}
	return filepath.Join(home, ".verigraph", "config.yaml")
}

// projectConfigFilePath returns the project-level config file path (./.verigraph/config.yaml)
func projectConfigFilePath() string {
	return ".verigraph/config.yaml"
}

// Load reads configuration with the following priority (highest to lowest):
// 1. Environment variables
// 2. Project-level config (./.verigraph/config.yaml)
// 3. Global config (~/.verigraph/config.yaml)
// 4. Defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	globalConfigPath := globalConfigFilePath()
	if data, err := os.ReadFile(globalConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", globalConfigPath, err)
		}
	}

	projectConfigPath := projectConfigFilePath()
	if data, err := os.ReadFile(projectConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", projectConfigPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific YAML file path.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified YAML file path.
// It creates parent directories if they don't exist.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VERIGRAPH_REGISTRY"); v != "" {
		cfg.RegistryPath = v
	}
	if v := os.Getenv("VERIGRAPH_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("VERIGRAPH_NEO4J_URI"); v != "" {
		cfg.Neo4jURI = v
	}
	if v := os.Getenv("VERIGRAPH_NEO4J_USER"); v != "" {
		cfg.Neo4jUser = v
	}
	if v := os.Getenv("VERIGRAPH_NEO4J_PASSWORD"); v != "" {
		cfg.Neo4jPassword = v
	}
	if v := os.Getenv("VERIGRAPH_VERBOSE"); v != "" {
		cfg.Verbose = v == "true" || v == "1" || v == "yes"
	}
}

// Validate checks that the configuration has valid required fields
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.RegistryPath == "" {
		return fmt.Errorf("registry_path must not be empty")
	}
	return nil
}
