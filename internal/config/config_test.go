package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.Simulator != DefaultSimulator {
		t.Errorf("expected Simulator %s, got %s", DefaultSimulator, cfg.Simulator)
	}

	if cfg.ToolsArgs != DefaultToolsArgs {
		t.Errorf("expected ToolsArgs %s, got %s", DefaultToolsArgs, cfg.ToolsArgs)
	}
}

func TestConfig_GetSimulatorPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "default relative to project",
			config: &Config{
				ProjectPath: "/project",
				Simulator:   "tools/logisim",
			},
			expected: filepath.Join("/project", "tools", "logisim"),
		},
		{
			name: "absolute simulator path",
			config: &Config{
				ProjectPath: "/project",
				Simulator:   "/usr/local/bin/logisim",
			},
			expected: "/usr/local/bin/logisim",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetSimulatorPath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestLoad_Precedence(t *testing.T) {
	t.Run("environment overrides default", func(t *testing.T) {
		t.Setenv(SimulatorEnvVar, "/env/simulator")
		cfg := Load(Flags{})
		if cfg.Simulator != "/env/simulator" {
			t.Errorf("expected simulator from environment, got %s", cfg.Simulator)
		}
	})

	t.Run("flag overrides environment", func(t *testing.T) {
		t.Setenv(SimulatorEnvVar, "/env/simulator")
		cfg := Load(Flags{Simulator: "/flag/simulator"})
		if cfg.Simulator != "/flag/simulator" {
			t.Errorf("expected simulator from flag, got %s", cfg.Simulator)
		}
	})
}

func TestConfig_SimulatorEnv(t *testing.T) {
	t.Run("appends quiet flags to empty variable", func(t *testing.T) {
		t.Setenv(ToolsEnvVar, "")
		cfg := New()

		env := cfg.SimulatorEnv()
		last := env[len(env)-1]
		expected := ToolsEnvVar + "= -q"
		if last != expected {
			t.Errorf("expected %q appended, got %q", expected, last)
		}
	})

	t.Run("preserves pre-existing flags", func(t *testing.T) {
		t.Setenv(ToolsEnvVar, "-v")
		cfg := New()

		env := cfg.SimulatorEnv()
		last := env[len(env)-1]
		expected := ToolsEnvVar + "=-v -q"
		if last != expected {
			t.Errorf("expected %q appended, got %q", expected, last)
		}
	})

	t.Run("keeps the rest of the environment", func(t *testing.T) {
		t.Setenv("CTP_CANARY", "1")
		cfg := New()

		found := false
		for _, kv := range cfg.SimulatorEnv() {
			if strings.HasPrefix(kv, "CTP_CANARY=") {
				found = true
				break
			}
		}
		if !found {
			t.Error("expected parent environment to be inherited")
		}
	})
}
