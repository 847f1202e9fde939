// Package config provides configuration loading and management for
// voxelview. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"voxelview/pkg/shader"
	"voxelview/pkg/vertexstage"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Processing parameters
	Processing struct {
		// NumCores specifies how many CPU cores to use when running
		// a stage over a vertex buffer
		NumCores int `yaml:"numCores"`

		// SampleTransforms is the number of transform matrices sampled
		// by the verification sweep
		SampleTransforms int `yaml:"sampleTransforms"`

		// SampleVertices is the number of vertices sampled per
		// transform by the verification sweep
		SampleVertices int `yaml:"sampleVertices"`

		// Tolerance is the maximum allowed clip-space component
		// difference between the two stage variants
		Tolerance float32 `yaml:"tolerance"`
	} `yaml:"processing"`

	// Bindings holds the attribute/varying/uniform names substituted
	// into the modern-dialect vertex source
	Bindings shader.Bindings `yaml:"bindings"`

	// LegacyBindings holds the register and parameter names
	// substituted into the legacy-dialect vertex program
	LegacyBindings shader.Bindings `yaml:"legacyBindings"`

	// Output parameters
	Output struct {
		// ShaderDir is the directory generated shader sources are
		// written to
		ShaderDir string `yaml:"shaderDir"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default processing parameters
	cfg.Processing.NumCores = runtime.NumCPU() // Use all available cores by default
	cfg.Processing.SampleTransforms = 25
	cfg.Processing.SampleVertices = 200
	cfg.Processing.Tolerance = 1e-4

	// Set default binding names for both dialects
	cfg.Bindings = shader.DefaultBindings(vertexstage.DialectModern)
	cfg.LegacyBindings = shader.DefaultBindings(vertexstage.DialectLegacy)

	// Set default output parameters
	cfg.Output.ShaderDir = "generated_shaders"
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Surface bad binding names here rather than at generation time
	if err := cfg.Bindings.Validate(vertexstage.DialectModern); err != nil {
		return nil, fmt.Errorf("invalid bindings: %w", err)
	}
	if err := cfg.LegacyBindings.Validate(vertexstage.DialectLegacy); err != nil {
		return nil, fmt.Errorf("invalid legacy bindings: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
