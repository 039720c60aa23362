package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string

	// Simulator settings
	Simulator string // Simulator binary, relative to ProjectPath unless absolute
	ToolsArgs string // Flags appended to the tools environment variable

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Pipelined  bool
	NameFilter string
	Simulator  string
	ShowFails  bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:    DefaultProjectPath,
		Simulator:      DefaultSimulator,
		ToolsArgs:      DefaultToolsArgs,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
	}
}

// Load creates a config and applies environment and flag overrides.
// Flags win over environment values, environment over defaults.
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	// .env might not exist, that's okay - use environment variables
	_ = godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))

	if sim := os.Getenv(SimulatorEnvVar); sim != "" {
		cfg.Simulator = sim
	}
	if flags.Simulator != "" {
		cfg.Simulator = flags.Simulator
	}

	return cfg
}

// GetSimulatorPath returns the path to the simulator binary
func (c *Config) GetSimulatorPath() string {
	if filepath.IsAbs(c.Simulator) {
		return c.Simulator
	}
	return filepath.Join(c.ProjectPath, c.Simulator)
}

// SimulatorEnv returns the environment for simulator subprocesses: the
// parent environment with the tools variable appended. The configured
// extra flags are appended to any pre-existing value, space separated.
func (c *Config) SimulatorEnv() []string {
	existing := os.Getenv(ToolsEnvVar)
	return append(os.Environ(), fmt.Sprintf("%s=%s %s", ToolsEnvVar, existing, c.ToolsArgs))
}

// GetOutputPath returns the full path to the output JSON file (under project so run and fails use the same file).
// Resolves to an absolute path so run and fails always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
