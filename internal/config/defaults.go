package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSimulator is the default simulator binary, relative to the project
	DefaultSimulator = "tools/logisim"
	// DefaultToolsArgs are the extra flags handed to the simulator through
	// the tools environment variable, forcing quiet batch behavior
	DefaultToolsArgs = "-q"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".ctp"
)

const (
	// SimulatorEnvVar overrides the simulator binary path
	SimulatorEnvVar = "CTP_SIMULATOR"
	// ToolsEnvVar carries extra CLI flags through to the simulator; the
	// runner appends to any pre-existing value rather than replacing it
	ToolsEnvVar = "CTP_TOOLS_ARGS"
)
